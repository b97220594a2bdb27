package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/ride2gather-server/internal/apierrors"
	"github.com/dtroode/ride2gather-server/internal/logger"
	"github.com/dtroode/ride2gather-server/internal/model"
)

// Profile updates the mutable profile of an account: bio, avatar and primary equipment.
type Profile struct {
	accounts  model.AccountStore
	equipment model.EquipmentStore
	logger    *logger.Logger
}

func NewProfile(accounts model.AccountStore, equipment model.EquipmentStore, logger *logger.Logger) *Profile {
	return &Profile{
		accounts:  accounts,
		equipment: equipment,
		logger:    logger,
	}
}

// UpdateProfile applies the fields present in update.
// An empty or whitespace-only EquipmentName clears the equipment association;
// any other name is resolved to an equipment record, creating one if needed.
func (p *Profile) UpdateProfile(ctx context.Context, accountID int64, update model.ProfileUpdate) (view model.ProfileView, err error) {
	ctx, span := startSpan(ctx, "Profile.UpdateProfile")
	defer func() { endSpan(span, err) }()

	p.logger.Debug("Profile service: updating profile",
		"account_id", accountID)

	if _, err := p.accounts.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ProfileView{}, apierrors.NewErrUserNotFound()
		}
		p.logger.Error("Profile service: failed to get account",
			"account_id", accountID,
			"error", err.Error())
		return model.ProfileView{}, apierrors.NewErrInternalServerError(err)
	}

	changes := model.AccountProfileChanges{Bio: update.Bio}

	if update.EquipmentName != nil {
		changes.SetEquipment = true
		name := strings.TrimSpace(*update.EquipmentName)
		if name != "" {
			item, err := p.resolveEquipment(ctx, name)
			if err != nil {
				p.logger.Error("Profile service: failed to resolve equipment",
					"account_id", accountID,
					"equipment_name", name,
					"error", err.Error())
				return model.ProfileView{}, apierrors.NewErrInternalServerError(err)
			}
			changes.EquipmentID = &item.ID
		}
	}

	account, err := p.accounts.UpdateProfile(ctx, accountID, changes)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ProfileView{}, apierrors.NewErrUserNotFound()
		}
		p.logger.Error("Profile service: failed to update profile",
			"account_id", accountID,
			"error", err.Error())
		return model.ProfileView{}, apierrors.NewErrInternalServerError(err)
	}

	view, err = profileView(ctx, p.equipment, account)
	if err != nil {
		p.logger.Error("Profile service: failed to build profile view",
			"account_id", accountID,
			"error", err.Error())
		return model.ProfileView{}, apierrors.NewErrInternalServerError(err)
	}

	p.logger.Info("Profile service: profile updated",
		"account_id", accountID)

	return view, nil
}

// resolveEquipment returns the lowest-id equipment named name, creating one if none exists.
//
// The lookup and the insert are two separate store calls with no lock or
// transaction around them. Two concurrent callers resolving the same unseen
// name can both miss the lookup and both insert, leaving duplicate rows.
// Later lookups pick the lowest id, so serial callers converge on one record.
func (p *Profile) resolveEquipment(ctx context.Context, name string) (model.Equipment, error) {
	item, err := p.equipment.FindFirstByName(ctx, name)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Equipment{}, fmt.Errorf("failed to find equipment by name: %w", err)
	}

	item, err = p.equipment.Create(ctx, model.Equipment{Name: name})
	if err != nil {
		return model.Equipment{}, fmt.Errorf("failed to create equipment: %w", err)
	}

	p.logger.Info("Profile service: created equipment",
		"equipment_id", item.ID,
		"equipment_name", name)

	return item, nil
}

// UpdateAvatar stores a blob reference as the account's avatar.
func (p *Profile) UpdateAvatar(ctx context.Context, accountID int64, avatarRef string) (view model.AvatarView, err error) {
	ctx, span := startSpan(ctx, "Profile.UpdateAvatar")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(avatarRef) == "" {
		return model.AvatarView{}, apierrors.NewErrValidation("avatar reference is required")
	}

	account, err := p.accounts.UpdateAvatar(ctx, accountID, avatarRef)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.AvatarView{}, apierrors.NewErrUserNotFound()
		}
		p.logger.Error("Profile service: failed to update avatar",
			"account_id", accountID,
			"error", err.Error())
		return model.AvatarView{}, apierrors.NewErrInternalServerError(err)
	}

	p.logger.Info("Profile service: avatar updated",
		"account_id", accountID)

	return model.AvatarView{ID: account.ID, AvatarRef: account.AvatarRef}, nil
}
