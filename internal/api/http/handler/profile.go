package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/dtroode/ride2gather-server/internal/apierrors"
	"github.com/dtroode/ride2gather-server/internal/logger"
	"github.com/dtroode/ride2gather-server/internal/model"
)

const (
	avatarField = "pfp"
	// multipartOverhead covers boundaries and part headers around the file.
	multipartOverhead = 64 << 10
	multipartMemory   = 1 << 20
)

var errNoFile = &apierrors.APIError{
	Kind:       apierrors.KindValidation,
	Message:    `no file uploaded (field name must be "pfp")`,
	HTTPStatus: http.StatusBadRequest,
}

// Profile serves profile updates and avatar uploads/downloads.
type Profile struct {
	profiles       ProfileService
	avatars        AvatarService
	maxJSONBytes   int64
	maxUploadBytes int64
	logger         *logger.Logger
}

func NewProfile(
	profiles ProfileService,
	avatars AvatarService,
	maxJSONBytes int64,
	maxUploadBytes int64,
	logger *logger.Logger,
) *Profile {
	return &Profile{
		profiles:       profiles,
		avatars:        avatars,
		maxJSONBytes:   maxJSONBytes,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// decodeProfileUpdate tells omitted fields apart from null ones.
// A null bio or bike_name becomes the empty string.
func decodeProfileUpdate(w http.ResponseWriter, r *http.Request, limit int64) (model.ProfileUpdate, error) {
	var fields map[string]json.RawMessage
	if err := decodeJSON(w, r, &fields, limit); err != nil {
		return model.ProfileUpdate{}, err
	}

	var update model.ProfileUpdate

	if raw, ok := fields["bio"]; ok {
		bio, err := decodeBio(raw)
		if err != nil {
			return model.ProfileUpdate{}, err
		}
		update.Bio = &bio
	}

	if raw, ok := fields["bike_name"]; ok {
		name, err := decodeEquipmentName(raw)
		if err != nil {
			return model.ProfileUpdate{}, err
		}
		update.EquipmentName = &name
	}

	return update, nil
}

func decodeBio(raw json.RawMessage) (string, error) {
	var bio *string
	if err := json.Unmarshal(raw, &bio); err != nil {
		return "", apierrors.NewErrValidation("bio must be a string")
	}
	if bio == nil {
		return "", nil
	}
	return *bio, nil
}

// decodeEquipmentName accepts a string, null, or a bare number or boolean taken as its text.
func decodeEquipmentName(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", errInvalidJSON
	}
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64, bool:
		return strings.TrimSpace(string(raw)), nil
	default:
		return "", apierrors.NewErrValidation("bike_name must be a string")
	}
}

func (h *Profile) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	id, err := accountIDParam(r)
	if err != nil {
		writeError(w, err, log)
		return
	}

	update, err := decodeProfileUpdate(w, r, h.maxJSONBytes)
	if err != nil {
		writeError(w, err, log)
		return
	}

	view, err := h.profiles.UpdateProfile(r.Context(), id, update)
	if err != nil {
		writeError(w, err, log)
		return
	}

	writeJSON(w, http.StatusOK, newProfileResponse(view), log)
}

func (h *Profile) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	id, err := accountIDParam(r)
	if err != nil {
		writeError(w, err, log)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	file, header, err := r.FormFile(avatarField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			writeError(w, errBodyTooLarge, log)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			writeError(w, errNoFile, log)
		default:
			writeError(w, &apierrors.APIError{
				Kind:       apierrors.KindValidation,
				Message:    err.Error(),
				HTTPStatus: http.StatusBadRequest,
			}, log)
		}
		return
	}
	defer file.Close()
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	if header.Size > h.maxUploadBytes {
		writeError(w, errBodyTooLarge, log)
		return
	}

	view, err := h.avatars.Upload(r.Context(), id, header.Filename, file)
	if err != nil {
		writeError(w, err, log)
		return
	}

	writeJSON(w, http.StatusOK, avatarResponse{OK: true, ID: view.ID, Pfp: view.AvatarRef}, log)
}

func (h *Profile) ServeAvatar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	key := strings.TrimPrefix(httprouter.ParamsFromContext(r.Context()).ByName("key"), "/")

	rc, err := h.avatars.Open(r.Context(), key)
	if err != nil {
		writeError(w, err, log)
		return
	}
	defer rc.Close()

	ct := mime.TypeByExtension(path.Ext(key))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		log.Warn("HTTP handler: failed to stream avatar",
			"key", key,
			"error", err.Error())
	}
}
