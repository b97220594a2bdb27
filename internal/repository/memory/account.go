package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/dtroode/ride2gather-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	s *Store
}

func NewAccountRepository(s *Store) *AccountRepository {
	return &AccountRepository{s: s}
}

func (r *AccountRepository) Create(_ context.Context, account model.Account) (model.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.accounts {
		if existing.Email == account.Email || existing.Username == account.Username {
			return model.Account{}, model.ErrAlreadyExists
		}
	}

	r.s.nextAccountID++
	now := r.s.now()
	account.ID = r.s.nextAccountID
	account.LastSeenAt = now
	account.CreatedAt = now
	account.UpdatedAt = now
	account.PrimaryEquipmentID = nil
	r.s.accounts[account.ID] = account

	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id int64) (model.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return copyAccount(account), nil
}

func (r *AccountRepository) GetByUsername(_ context.Context, username string) (model.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, account := range r.s.accounts {
		if account.Username == username {
			return copyAccount(account), nil
		}
	}
	return model.Account{}, model.ErrNotFound
}

func (r *AccountRepository) FindByIdentity(_ context.Context, email, username string) (model.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var (
		found model.Account
		ok    bool
	)
	for _, account := range r.s.accounts {
		if account.Email != email && account.Username != username {
			continue
		}
		if !ok || account.ID < found.ID {
			found, ok = account, true
		}
	}
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return copyAccount(found), nil
}

func (r *AccountRepository) UpdateProfile(_ context.Context, id int64, changes model.AccountProfileChanges) (model.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	if changes.Empty() {
		return copyAccount(account), nil
	}

	if changes.Bio != nil {
		account.Bio = *changes.Bio
	}
	if changes.SetEquipment {
		if changes.EquipmentID == nil {
			account.PrimaryEquipmentID = nil
		} else {
			if _, ok := r.s.equipment[*changes.EquipmentID]; !ok {
				return model.Account{}, fmt.Errorf("failed to set equipment %d: %w", *changes.EquipmentID, model.ErrInvalidReference)
			}
			equipmentID := *changes.EquipmentID
			account.PrimaryEquipmentID = &equipmentID
		}
	}
	account.UpdatedAt = r.s.now()
	r.s.accounts[id] = account

	return copyAccount(account), nil
}

func (r *AccountRepository) UpdateAvatar(_ context.Context, id int64, avatarRef string) (model.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	account.AvatarRef = avatarRef
	account.UpdatedAt = r.s.now()
	r.s.accounts[id] = account

	return copyAccount(account), nil
}

func (r *AccountRepository) List(_ context.Context) ([]model.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	accounts := make([]model.Account, 0, len(r.s.accounts))
	for _, account := range r.s.accounts {
		accounts = append(accounts, copyAccount(account))
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Username < accounts[j].Username
	})

	return accounts, nil
}

func copyAccount(account model.Account) model.Account {
	if account.PrimaryEquipmentID != nil {
		id := *account.PrimaryEquipmentID
		account.PrimaryEquipmentID = &id
	}
	return account
}
