// Package handler exposes the account and profile services over JSON HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/dtroode/ride2gather-server/internal/apierrors"
	"github.com/dtroode/ride2gather-server/internal/logger"
	"github.com/dtroode/ride2gather-server/internal/model"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "ride2gather-api"

// AccountService is the account directory as used by the handlers.
type AccountService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.AccountSummary, error)
	Authenticate(ctx context.Context, identity, password string) (model.AccountSummary, error)
	GetByUsername(ctx context.Context, username string) (model.ProfileView, error)
	ListAll(ctx context.Context) ([]model.RosterEntry, error)
}

// ProfileService updates profiles.
type ProfileService interface {
	UpdateProfile(ctx context.Context, accountID int64, update model.ProfileUpdate) (model.ProfileView, error)
}

// AvatarService stores and serves avatar images.
type AvatarService interface {
	Upload(ctx context.Context, accountID int64, filename string, r io.Reader) (model.AvatarView, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

var errInvalidJSON = &apierrors.APIError{
	Kind:       apierrors.KindValidation,
	Message:    "invalid JSON body",
	HTTPStatus: http.StatusBadRequest,
}

var errInvalidUserID = &apierrors.APIError{
	Kind:       apierrors.KindValidation,
	Message:    "invalid user id",
	HTTPStatus: http.StatusBadRequest,
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("HTTP handler: failed to encode response",
			"error", err.Error())
	}
}

func writeError(w http.ResponseWriter, err error, log *logger.Logger) {
	apiErr := apierrors.FromError(err)
	writeJSON(w, apiErr.HTTPStatus, errorResponse{Error: apiErr.Message}, log)
}

// decodeJSON reads a single JSON value of at most limit bytes into dst.
// An empty body leaves dst untouched; anything after the value is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, limit int64) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))

	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return decodeError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return errBodyTooLarge
	}
	return errInvalidJSON
}

var errBodyTooLarge = &apierrors.APIError{
	Kind:       apierrors.KindValidation,
	Message:    "request body too large",
	HTTPStatus: http.StatusRequestEntityTooLarge,
}

func accountIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(httprouter.ParamsFromContext(r.Context()).ByName(UserParam), 10, 64)
	if err != nil {
		return 0, errInvalidUserID
	}
	return id, nil
}

// UserParam is the route parameter naming an account: a username on GET, an id elsewhere.
const UserParam = "user"
