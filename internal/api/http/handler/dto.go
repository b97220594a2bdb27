package handler

import (
	"time"

	"github.com/dtroode/ride2gather-server/internal/model"
)

type signupRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	CountryCode string `json:"country_code"`
}

type loginRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

type accountResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	CountryCode string `json:"country_code"`
}

type equipmentResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
}

type profileResponse struct {
	ID          int64              `json:"id"`
	Email       string             `json:"email"`
	Username    string             `json:"username"`
	Bio         string             `json:"bio"`
	Pfp         string             `json:"pfp"`
	CountryCode string             `json:"country_code"`
	MyBikeID    *int64             `json:"myBikeId"`
	MyBike      *equipmentResponse `json:"myBike"`
}

type avatarResponse struct {
	OK  bool   `json:"ok"`
	ID  int64  `json:"id"`
	Pfp string `json:"pfp"`
}

type rosterEntryResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Pfp        string    `json:"pfp"`
	LastOnline time.Time `json:"lastOnline"`
}

type rosterResponse struct {
	OK   bool                  `json:"ok"`
	Data []rosterEntryResponse `json:"data"`
}

type healthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

func newAccountResponse(s model.AccountSummary) accountResponse {
	return accountResponse{
		ID:          s.ID,
		Email:       s.Email,
		Username:    s.Username,
		CountryCode: s.CountryCode,
	}
}

func newProfileResponse(v model.ProfileView) profileResponse {
	resp := profileResponse{
		ID:          v.ID,
		Email:       v.Email,
		Username:    v.Username,
		Bio:         v.Bio,
		Pfp:         v.AvatarRef,
		CountryCode: v.CountryCode,
		MyBikeID:    v.PrimaryEquipmentID,
	}
	if v.Equipment != nil {
		resp.MyBike = &equipmentResponse{
			ID:       v.Equipment.ID,
			Name:     v.Equipment.Name,
			Brand:    v.Equipment.Brand,
			Category: v.Equipment.Category,
		}
	}
	return resp
}

func newRosterResponse(entries []model.RosterEntry) rosterResponse {
	data := make([]rosterEntryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, rosterEntryResponse{
			ID:         e.ID,
			Username:   e.Username,
			Pfp:        e.AvatarRef,
			LastOnline: e.LastSeenAt,
		})
	}
	return rosterResponse{OK: true, Data: data}
}
