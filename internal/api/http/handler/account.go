package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/dtroode/ride2gather-server/internal/logger"
	"github.com/dtroode/ride2gather-server/internal/model"
)

// Account serves registration, login and account lookups.
type Account struct {
	accounts     AccountService
	maxJSONBytes int64
	logger       *logger.Logger
}

func NewAccount(accounts AccountService, maxJSONBytes int64, logger *logger.Logger) *Account {
	return &Account{accounts: accounts, maxJSONBytes: maxJSONBytes, logger: logger}
}

// Health reports that the API is up.
func (h *Account) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{OK: true, Service: ServiceName}, logger.FromContext(r.Context(), h.logger))
}

func (h *Account) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	var req signupRequest
	if err := decodeJSON(w, r, &req, h.maxJSONBytes); err != nil {
		writeError(w, err, log)
		return
	}

	summary, err := h.accounts.Register(r.Context(), model.RegisterParams{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		CountryCode: req.CountryCode,
	})
	if err != nil {
		writeError(w, err, log)
		return
	}

	writeJSON(w, http.StatusCreated, newAccountResponse(summary), log)
}

func (h *Account) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	var req loginRequest
	if err := decodeJSON(w, r, &req, h.maxJSONBytes); err != nil {
		writeError(w, err, log)
		return
	}

	summary, err := h.accounts.Authenticate(r.Context(), req.Identity, req.Password)
	if err != nil {
		writeError(w, err, log)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(summary), log)
}

func (h *Account) GetUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	username := httprouter.ParamsFromContext(r.Context()).ByName(UserParam)

	view, err := h.accounts.GetByUsername(r.Context(), username)
	if err != nil {
		writeError(w, err, log)
		return
	}

	writeJSON(w, http.StatusOK, newProfileResponse(view), log)
}

func (h *Account) ListUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	entries, err := h.accounts.ListAll(r.Context())
	if err != nil {
		writeError(w, err, log)
		return
	}

	writeJSON(w, http.StatusOK, newRosterResponse(entries), log)
}
