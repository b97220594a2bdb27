package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/ride2gather-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const accountColumns = `id, email, username, password_hash, bio, avatar_ref, country_code,
	primary_equipment_id, last_seen_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func scanAccount(row rowScanner) (model.Account, error) {
	var (
		account     model.Account
		equipmentID sql.NullInt64
	)
	err := row.Scan(
		&account.ID, &account.Email, &account.Username, &account.PasswordHash,
		&account.Bio, &account.AvatarRef, &account.CountryCode, &equipmentID,
		&account.LastSeenAt, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return model.Account{}, err
	}
	if equipmentID.Valid {
		id := equipmentID.Int64
		account.PrimaryEquipmentID = &id
	}
	return account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (email, username, password_hash, country_code)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + accountColumns

	created, err := scanAccount(r.db.QueryRowContext(ctx, query,
		account.Email, account.Username, account.PasswordHash, account.CountryCode,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Account{}, model.ErrAlreadyExists
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return created, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by username: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) FindByIdentity(ctx context.Context, email, username string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
			  WHERE email = $1 OR username = $2
			  ORDER BY id
			  LIMIT 1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, email, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to find account by identity: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, id int64, changes model.AccountProfileChanges) (model.Account, error) {
	if changes.Empty() {
		return r.GetByID(ctx, id)
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if changes.Bio != nil {
		args = append(args, *changes.Bio)
		sets = append(sets, fmt.Sprintf("bio = $%d", len(args)))
	}
	if changes.SetEquipment {
		if changes.EquipmentID != nil {
			args = append(args, *changes.EquipmentID)
		} else {
			args = append(args, nil)
		}
		sets = append(sets, fmt.Sprintf("primary_equipment_id = $%d", len(args)))
	}
	args = append(args, id)

	query := `UPDATE accounts SET ` + strings.Join(sets, ", ") + `, updated_at = NOW()
			  WHERE id = $` + fmt.Sprint(len(args)) + `
			  RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return model.Account{}, fmt.Errorf("failed to update account profile: %w", model.ErrInvalidReference)
		}
		return model.Account{}, fmt.Errorf("failed to update account profile: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) UpdateAvatar(ctx context.Context, id int64, avatarRef string) (model.Account, error) {
	query := `UPDATE accounts SET avatar_ref = $1, updated_at = NOW()
			  WHERE id = $2
			  RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, avatarRef, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to update account avatar: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY username ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]model.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}
