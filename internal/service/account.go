package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/dtroode/ride2gather-server/internal/apierrors"
	"github.com/dtroode/ride2gather-server/internal/logger"
	"github.com/dtroode/ride2gather-server/internal/model"
	"github.com/dtroode/ride2gather-server/internal/password"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// Account is the account directory: registration, credential checks and lookups.
type Account struct {
	accounts  model.AccountStore
	equipment model.EquipmentStore
	hasher    model.PasswordHasher
	logger    *logger.Logger
}

func NewAccount(
	accounts model.AccountStore,
	equipment model.EquipmentStore,
	hasher model.PasswordHasher,
	logger *logger.Logger,
) *Account {
	return &Account{
		accounts:  accounts,
		equipment: equipment,
		hasher:    hasher,
		logger:    logger,
	}
}

func validateRegistration(params model.RegisterParams) error {
	if params.Email == "" || params.Username == "" || params.Password == "" {
		return apierrors.NewErrValidation("email, username, and password are required")
	}
	if utf8.RuneCountInString(params.Username) < minUsernameLength {
		return apierrors.NewErrValidation("username must be at least %d chars", minUsernameLength)
	}
	if utf8.RuneCountInString(params.Password) < minPasswordLength {
		return apierrors.NewErrValidation("password must be at least %d chars", minPasswordLength)
	}
	return nil
}

// Register creates an account with a unique email and username.
// The pre-check rejects known duplicates early; the store's unique
// constraints decide races between concurrent registrations.
func (a *Account) Register(ctx context.Context, params model.RegisterParams) (summary model.AccountSummary, err error) {
	ctx, span := startSpan(ctx, "Account.Register")
	defer func() { endSpan(span, err) }()

	a.logger.Debug("Account service: registering account",
		"email", params.Email,
		"username", params.Username)

	if err := validateRegistration(params); err != nil {
		return model.AccountSummary{}, err
	}

	_, err = a.accounts.FindByIdentity(ctx, params.Email, params.Username)
	switch {
	case err == nil:
		a.logger.Info("Account service: identity already taken",
			"email", params.Email,
			"username", params.Username)
		return model.AccountSummary{}, apierrors.NewErrIdentityTaken()
	case !errors.Is(err, model.ErrNotFound):
		a.logger.Error("Account service: failed to check existing identity",
			"email", params.Email,
			"username", params.Username,
			"error", err.Error())
		return model.AccountSummary{}, apierrors.NewErrInternalServerError(err)
	}

	hash, err := a.hasher.Hash(ctx, params.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return model.AccountSummary{}, apierrors.NewErrValidation("password must be at most 72 bytes")
		}
		a.logger.Error("Account service: failed to hash password",
			"username", params.Username,
			"error", err.Error())
		return model.AccountSummary{}, apierrors.NewErrInternalServerError(err)
	}

	created, err := a.accounts.Create(ctx, model.Account{
		Email:        params.Email,
		Username:     params.Username,
		PasswordHash: hash,
		CountryCode:  params.CountryCode,
	})
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			a.logger.Info("Account service: identity taken by concurrent registration",
				"email", params.Email,
				"username", params.Username)
			return model.AccountSummary{}, apierrors.NewErrIdentityTaken()
		}
		a.logger.Error("Account service: failed to create account",
			"username", params.Username,
			"error", err.Error())
		return model.AccountSummary{}, apierrors.NewErrInternalServerError(err)
	}

	a.logger.Info("Account service: account registered",
		"account_id", created.ID,
		"username", created.Username)

	return created.Summary(), nil
}

// Authenticate checks a password against the account found by email or username.
func (a *Account) Authenticate(ctx context.Context, identity, pw string) (summary model.AccountSummary, err error) {
	ctx, span := startSpan(ctx, "Account.Authenticate")
	defer func() { endSpan(span, err) }()

	if identity == "" || pw == "" {
		return model.AccountSummary{}, apierrors.NewErrValidation("username/email and password are required")
	}

	account, err := a.accounts.FindByIdentity(ctx, identity, identity)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Account service: login for unknown identity",
				"identity", identity)
			return model.AccountSummary{}, apierrors.NewErrUserNotFound()
		}
		a.logger.Error("Account service: failed to find account",
			"identity", identity,
			"error", err.Error())
		return model.AccountSummary{}, apierrors.NewErrInternalServerError(err)
	}

	ok, err := a.hasher.Verify(ctx, account.PasswordHash, pw)
	if err != nil {
		a.logger.Error("Account service: failed to verify password",
			"account_id", account.ID,
			"error", err.Error())
		return model.AccountSummary{}, apierrors.NewErrInternalServerError(err)
	}
	if !ok {
		a.logger.Info("Account service: invalid password",
			"account_id", account.ID)
		return model.AccountSummary{}, apierrors.NewErrInvalidPassword()
	}

	a.logger.Debug("Account service: account authenticated",
		"account_id", account.ID)

	return account.Summary(), nil
}

// GetByUsername returns the public profile of the account, with its equipment resolved.
func (a *Account) GetByUsername(ctx context.Context, username string) (view model.ProfileView, err error) {
	ctx, span := startSpan(ctx, "Account.GetByUsername")
	defer func() { endSpan(span, err) }()

	account, err := a.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ProfileView{}, apierrors.NewErrUserNotFound()
		}
		a.logger.Error("Account service: failed to get account by username",
			"username", username,
			"error", err.Error())
		return model.ProfileView{}, apierrors.NewErrInternalServerError(err)
	}

	view, err = profileView(ctx, a.equipment, account)
	if err != nil {
		a.logger.Error("Account service: failed to build profile view",
			"account_id", account.ID,
			"error", err.Error())
		return model.ProfileView{}, apierrors.NewErrInternalServerError(err)
	}

	return view, nil
}

// ListAll returns every account's roster entry ordered by username.
func (a *Account) ListAll(ctx context.Context) (entries []model.RosterEntry, err error) {
	ctx, span := startSpan(ctx, "Account.ListAll")
	defer func() { endSpan(span, err) }()

	accounts, err := a.accounts.List(ctx)
	if err != nil {
		a.logger.Error("Account service: failed to list accounts",
			"error", err.Error())
		return nil, apierrors.NewErrInternalServerError(err)
	}

	entries = make([]model.RosterEntry, 0, len(accounts))
	for _, account := range accounts {
		entries = append(entries, model.RosterEntry{
			ID:         account.ID,
			Username:   account.Username,
			AvatarRef:  account.AvatarRef,
			LastSeenAt: account.LastSeenAt,
		})
	}

	return entries, nil
}
