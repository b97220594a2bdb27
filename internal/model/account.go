package model

import (
	"context"
	"time"
)

// AccountStore defines persistence operations for accounts.
// Email and username are unique at the storage level; a violating write
// returns ErrAlreadyExists.
type AccountStore interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByID(ctx context.Context, id int64) (Account, error)
	GetByUsername(ctx context.Context, username string) (Account, error)
	// FindByIdentity returns the first account whose email equals email
	// or whose username equals username.
	FindByIdentity(ctx context.Context, email, username string) (Account, error)
	UpdateProfile(ctx context.Context, id int64, changes AccountProfileChanges) (Account, error)
	UpdateAvatar(ctx context.Context, id int64, avatarRef string) (Account, error)
	// List returns all accounts ordered by username ascending.
	List(ctx context.Context) ([]Account, error)
}

// Account represents a stored account with its credential and profile.
type Account struct {
	ID                 int64
	Email              string
	Username           string
	PasswordHash       string
	Bio                string
	AvatarRef          string
	CountryCode        string
	PrimaryEquipmentID *int64
	LastSeenAt         time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AccountProfileChanges is a partial update of profile columns.
// A nil Bio is left untouched. EquipmentID is written only when SetEquipment
// is true, and a nil EquipmentID clears the association.
type AccountProfileChanges struct {
	Bio          *string
	SetEquipment bool
	EquipmentID  *int64
}

// Empty reports whether the changes touch no column.
func (c AccountProfileChanges) Empty() bool {
	return c.Bio == nil && !c.SetEquipment
}

// RegisterParams contains parameters to register an account.
type RegisterParams struct {
	Email       string
	Username    string
	Password    string
	CountryCode string
}

// AccountSummary is returned by registration and authentication.
type AccountSummary struct {
	ID          int64
	Email       string
	Username    string
	CountryCode string
}

// ProfileView is the public profile of an account with its resolved equipment.
type ProfileView struct {
	ID                 int64
	Email              string
	Username           string
	Bio                string
	AvatarRef          string
	CountryCode        string
	PrimaryEquipmentID *int64
	Equipment          *Equipment
}

// ProfileUpdate carries optional profile fields. A nil field is left unchanged;
// an empty or whitespace-only EquipmentName clears the equipment association.
type ProfileUpdate struct {
	Bio           *string
	EquipmentName *string
}

// AvatarView is returned after the avatar reference is persisted.
type AvatarView struct {
	ID        int64
	AvatarRef string
}

// RosterEntry is the minimal account listing used by the friends list.
type RosterEntry struct {
	ID         int64
	Username   string
	AvatarRef  string
	LastSeenAt time.Time
}

// Summary returns the registration/authentication view of the account.
func (a Account) Summary() AccountSummary {
	return AccountSummary{
		ID:          a.ID,
		Email:       a.Email,
		Username:    a.Username,
		CountryCode: a.CountryCode,
	}
}
