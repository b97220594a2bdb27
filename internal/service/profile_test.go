package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/ride2gather-server/internal/apierrors"
	"github.com/dtroode/ride2gather-server/internal/mocks"
	"github.com/dtroode/ride2gather-server/internal/model"
	"github.com/dtroode/ride2gather-server/internal/testutil"
)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func newProfileService(t *testing.T) (*Profile, *mocks.AccountStore, *mocks.EquipmentStore) {
	accounts := mocks.NewAccountStore(t)
	equipment := mocks.NewEquipmentStore(t)
	return NewProfile(accounts, equipment, testutil.MakeNoopLogger()), accounts, equipment
}

func TestProfile_UpdateProfile_AccountMissing(t *testing.T) {
	svc, accounts, equipment := newProfileService(t)
	accounts.On("GetByID", mock.Anything, int64(9)).Return(model.Account{}, model.ErrNotFound)

	_, err := svc.UpdateProfile(context.Background(), 9, model.ProfileUpdate{EquipmentName: strPtr("R1")})
	assertKind(t, err, apierrors.KindNotFound)
	equipment.AssertNotCalled(t, "FindFirstByName", mock.Anything, mock.Anything)
}

func TestProfile_UpdateProfile_BioOnly(t *testing.T) {
	svc, accounts, _ := newProfileService(t)
	current := model.Account{ID: 1, Username: "alice", PrimaryEquipmentID: int64Ptr(4)}

	accounts.On("GetByID", mock.Anything, int64(1)).Return(current, nil)
	accounts.On("UpdateProfile", mock.Anything, int64(1), model.AccountProfileChanges{Bio: strPtr("new bio")}).
		Return(model.Account{ID: 1, Username: "alice", Bio: "new bio"}, nil)

	got, err := svc.UpdateProfile(context.Background(), 1, model.ProfileUpdate{Bio: strPtr("new bio")})
	require.NoError(t, err)
	assert.Equal(t, "new bio", got.Bio)
}

func TestProfile_UpdateProfile_OmittedEquipmentLeavesAssociation(t *testing.T) {
	svc, accounts, equipment := newProfileService(t)
	current := model.Account{ID: 1, Username: "alice", PrimaryEquipmentID: int64Ptr(4)}

	accounts.On("GetByID", mock.Anything, int64(1)).Return(current, nil)
	accounts.On("UpdateProfile", mock.Anything, int64(1), mock.MatchedBy(func(c model.AccountProfileChanges) bool {
		return !c.SetEquipment && c.Bio == nil
	})).Return(current, nil)
	equipment.On("GetByID", mock.Anything, int64(4)).Return(model.Equipment{ID: 4, Name: "ZX-6R"}, nil)

	got, err := svc.UpdateProfile(context.Background(), 1, model.ProfileUpdate{})
	require.NoError(t, err)
	require.NotNil(t, got.PrimaryEquipmentID)
	assert.Equal(t, int64(4), *got.PrimaryEquipmentID)
	assert.Equal(t, "ZX-6R", got.Equipment.Name)
	equipment.AssertNotCalled(t, "FindFirstByName", mock.Anything, mock.Anything)
}

func TestProfile_UpdateProfile_ClearEquipment(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("name %q", name), func(t *testing.T) {
			svc, accounts, equipment := newProfileService(t)
			accounts.On("GetByID", mock.Anything, int64(1)).
				Return(model.Account{ID: 1, PrimaryEquipmentID: int64Ptr(4)}, nil)
			accounts.On("UpdateProfile", mock.Anything, int64(1), model.AccountProfileChanges{SetEquipment: true}).
				Return(model.Account{ID: 1}, nil)

			got, err := svc.UpdateProfile(context.Background(), 1, model.ProfileUpdate{EquipmentName: strPtr(name)})
			require.NoError(t, err)
			assert.Nil(t, got.PrimaryEquipmentID)
			assert.Nil(t, got.Equipment)
			equipment.AssertNotCalled(t, "FindFirstByName", mock.Anything, mock.Anything)
			equipment.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestProfile_UpdateProfile_ExistingEquipment(t *testing.T) {
	svc, accounts, equipment := newProfileService(t)
	bike := model.Equipment{ID: 2, Name: "CBR600RR", Brand: "Honda", Category: "Supersport"}

	accounts.On("GetByID", mock.Anything, int64(1)).Return(model.Account{ID: 1}, nil)
	equipment.On("FindFirstByName", mock.Anything, "CBR600RR").Return(bike, nil)
	accounts.On("UpdateProfile", mock.Anything, int64(1), model.AccountProfileChanges{
		SetEquipment: true, EquipmentID: int64Ptr(2),
	}).Return(model.Account{ID: 1, PrimaryEquipmentID: int64Ptr(2)}, nil)
	equipment.On("GetByID", mock.Anything, int64(2)).Return(bike, nil)

	got, err := svc.UpdateProfile(context.Background(), 1, model.ProfileUpdate{EquipmentName: strPtr("  CBR600RR  ")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), *got.PrimaryEquipmentID)
	assert.Equal(t, &bike, got.Equipment)
	equipment.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProfile_UpdateProfile_CreatesUnseenEquipment(t *testing.T) {
	svc, accounts, equipment := newProfileService(t)
	created := model.Equipment{ID: 11, Name: "Street Triple"}

	accounts.On("GetByID", mock.Anything, int64(1)).Return(model.Account{ID: 1}, nil)
	equipment.On("FindFirstByName", mock.Anything, "Street Triple").Return(model.Equipment{}, model.ErrNotFound)
	equipment.On("Create", mock.Anything, model.Equipment{Name: "Street Triple"}).Return(created, nil)
	accounts.On("UpdateProfile", mock.Anything, int64(1), model.AccountProfileChanges{
		SetEquipment: true, EquipmentID: int64Ptr(11),
	}).Return(model.Account{ID: 1, PrimaryEquipmentID: int64Ptr(11)}, nil)
	equipment.On("GetByID", mock.Anything, int64(11)).Return(created, nil)

	got, err := svc.UpdateProfile(context.Background(), 1, model.ProfileUpdate{EquipmentName: strPtr("Street Triple")})
	require.NoError(t, err)
	assert.Equal(t, int64(11), *got.PrimaryEquipmentID)
}

func TestProfile_UpdateProfile_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(accounts *mocks.AccountStore, equipment *mocks.EquipmentStore)
		kind  apierrors.Kind
	}{
		{
			name: "account lookup fails",
			setup: func(accounts *mocks.AccountStore, _ *mocks.EquipmentStore) {
				accounts.On("GetByID", mock.Anything, int64(1)).Return(model.Account{}, errors.New("db down"))
			},
			kind: apierrors.KindServer,
		},
		{
			name: "equipment lookup fails",
			setup: func(accounts *mocks.AccountStore, equipment *mocks.EquipmentStore) {
				accounts.On("GetByID", mock.Anything, int64(1)).Return(model.Account{ID: 1}, nil)
				equipment.On("FindFirstByName", mock.Anything, "R1").Return(model.Equipment{}, errors.New("db down"))
			},
			kind: apierrors.KindServer,
		},
		{
			name: "equipment create fails",
			setup: func(accounts *mocks.AccountStore, equipment *mocks.EquipmentStore) {
				accounts.On("GetByID", mock.Anything, int64(1)).Return(model.Account{ID: 1}, nil)
				equipment.On("FindFirstByName", mock.Anything, "R1").Return(model.Equipment{}, model.ErrNotFound)
				equipment.On("Create", mock.Anything, mock.Anything).Return(model.Equipment{}, errors.New("db down"))
			},
			kind: apierrors.KindServer,
		},
		{
			name: "account vanished before write",
			setup: func(accounts *mocks.AccountStore, equipment *mocks.EquipmentStore) {
				accounts.On("GetByID", mock.Anything, int64(1)).Return(model.Account{ID: 1}, nil)
				equipment.On("FindFirstByName", mock.Anything, "R1").Return(model.Equipment{ID: 5, Name: "R1"}, nil)
				accounts.On("UpdateProfile", mock.Anything, int64(1), mock.Anything).Return(model.Account{}, model.ErrNotFound)
			},
			kind: apierrors.KindNotFound,
		},
		{
			name: "equipment vanished before write",
			setup: func(accounts *mocks.AccountStore, equipment *mocks.EquipmentStore) {
				accounts.On("GetByID", mock.Anything, int64(1)).Return(model.Account{ID: 1}, nil)
				equipment.On("FindFirstByName", mock.Anything, "R1").Return(model.Equipment{ID: 5, Name: "R1"}, nil)
				accounts.On("UpdateProfile", mock.Anything, int64(1), mock.Anything).
					Return(model.Account{}, fmt.Errorf("failed to update account profile: %w", model.ErrInvalidReference))
			},
			kind: apierrors.KindServer,
		},
		{
			name: "write fails",
			setup: func(accounts *mocks.AccountStore, equipment *mocks.EquipmentStore) {
				accounts.On("GetByID", mock.Anything, int64(1)).Return(model.Account{ID: 1}, nil)
				equipment.On("FindFirstByName", mock.Anything, "R1").Return(model.Equipment{ID: 5, Name: "R1"}, nil)
				accounts.On("UpdateProfile", mock.Anything, int64(1), mock.Anything).Return(model.Account{}, errors.New("db down"))
			},
			kind: apierrors.KindServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, accounts, equipment := newProfileService(t)
			tt.setup(accounts, equipment)

			_, err := svc.UpdateProfile(context.Background(), 1, model.ProfileUpdate{EquipmentName: strPtr("R1")})
			assertKind(t, err, tt.kind)
		})
	}
}

func TestProfile_UpdateAvatar(t *testing.T) {
	t.Run("empty reference", func(t *testing.T) {
		svc, _, _ := newProfileService(t)

		_, err := svc.UpdateAvatar(context.Background(), 1, " ")
		assertKind(t, err, apierrors.KindValidation)
	})

	t.Run("success", func(t *testing.T) {
		svc, accounts, _ := newProfileService(t)
		accounts.On("UpdateAvatar", mock.Anything, int64(1), "http://localhost:3000/uploads/a.png").
			Return(model.Account{ID: 1, AvatarRef: "http://localhost:3000/uploads/a.png"}, nil)

		got, err := svc.UpdateAvatar(context.Background(), 1, "http://localhost:3000/uploads/a.png")
		require.NoError(t, err)
		assert.Equal(t, model.AvatarView{ID: 1, AvatarRef: "http://localhost:3000/uploads/a.png"}, got)
	})

	t.Run("account missing", func(t *testing.T) {
		svc, accounts, _ := newProfileService(t)
		accounts.On("UpdateAvatar", mock.Anything, int64(2), "ref").Return(model.Account{}, model.ErrNotFound)

		_, err := svc.UpdateAvatar(context.Background(), 2, "ref")
		assertKind(t, err, apierrors.KindNotFound)
	})

	t.Run("store fails", func(t *testing.T) {
		svc, accounts, _ := newProfileService(t)
		accounts.On("UpdateAvatar", mock.Anything, int64(2), "ref").Return(model.Account{}, errors.New("db down"))

		_, err := svc.UpdateAvatar(context.Background(), 2, "ref")
		assertKind(t, err, apierrors.KindServer)
	})
}
