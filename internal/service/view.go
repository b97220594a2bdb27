package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/ride2gather-server/internal/model"
)

// profileView loads the account's primary equipment, if any, and builds the public view.
func profileView(ctx context.Context, equipment model.EquipmentStore, account model.Account) (model.ProfileView, error) {
	view := model.ProfileView{
		ID:          account.ID,
		Email:       account.Email,
		Username:    account.Username,
		Bio:         account.Bio,
		AvatarRef:   account.AvatarRef,
		CountryCode: account.CountryCode,
	}

	if account.PrimaryEquipmentID == nil {
		return view, nil
	}

	id := *account.PrimaryEquipmentID
	view.PrimaryEquipmentID = &id

	item, err := equipment.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return view, nil
	}
	if err != nil {
		return model.ProfileView{}, fmt.Errorf("failed to load equipment %d: %w", id, err)
	}
	view.Equipment = &item

	return view, nil
}
