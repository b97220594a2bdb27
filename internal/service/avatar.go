package service

import (
	"context"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/rs/xid"

	"github.com/dtroode/ride2gather-server/internal/apierrors"
	"github.com/dtroode/ride2gather-server/internal/logger"
	"github.com/dtroode/ride2gather-server/internal/model"
)

// UploadsPath is the URL path prefix stored avatars are served under.
const UploadsPath = "/uploads/"

var (
	extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)
	keyPattern = regexp.MustCompile(`^[0-9a-v]{20}(\.[a-z0-9]{1,10})?$`)
)

// AvatarSetter persists an avatar reference for an account.
type AvatarSetter interface {
	UpdateAvatar(ctx context.Context, accountID int64, avatarRef string) (model.AvatarView, error)
}

// Avatar stores avatar images in the blob store and links them to profiles.
type Avatar struct {
	blobs         model.BlobStore
	profiles      AvatarSetter
	publicBaseURL string
	newKey        func() string
	logger        *logger.Logger
}

func NewAvatar(blobs model.BlobStore, profiles AvatarSetter, publicBaseURL string, logger *logger.Logger) *Avatar {
	return &Avatar{
		blobs:         blobs,
		profiles:      profiles,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		newKey:        func() string { return xid.New().String() },
		logger:        logger,
	}
}

// blobKey builds a fresh key keeping the uploaded file's extension when it is a plain one.
func (a *Avatar) blobKey(filename string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(filename, `\`, "/")))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return a.newKey() + ext
}

// Upload stores the image and makes it the account's avatar.
// If the reference cannot be saved, the stored blob is removed again.
func (a *Avatar) Upload(ctx context.Context, accountID int64, filename string, r io.Reader) (view model.AvatarView, err error) {
	ctx, span := startSpan(ctx, "Avatar.Upload")
	defer func() { endSpan(span, err) }()

	key := a.blobKey(filename)

	if err := a.blobs.Upload(ctx, key, r); err != nil {
		a.logger.Error("Avatar service: failed to upload blob",
			"account_id", accountID,
			"key", key,
			"error", err.Error())
		return model.AvatarView{}, apierrors.NewErrInternalServerError(err)
	}

	ref := a.publicBaseURL + UploadsPath + key

	view, err = a.profiles.UpdateAvatar(ctx, accountID, ref)
	if err != nil {
		if delErr := a.blobs.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			a.logger.Error("Avatar service: failed to delete orphaned blob",
				"key", key,
				"error", delErr.Error())
		}
		return model.AvatarView{}, err
	}

	a.logger.Info("Avatar service: avatar uploaded",
		"account_id", accountID,
		"key", key)

	return view, nil
}

// Open streams a stored avatar. The caller closes the reader.
func (a *Avatar) Open(ctx context.Context, key string) (rc io.ReadCloser, err error) {
	ctx, span := startSpan(ctx, "Avatar.Open")
	defer func() { endSpan(span, err) }()

	if !keyPattern.MatchString(key) {
		return nil, apierrors.NewErrFileNotFound(key)
	}

	exists, err := a.blobs.Exists(ctx, key)
	if err != nil {
		a.logger.Error("Avatar service: failed to stat blob",
			"key", key,
			"error", err.Error())
		return nil, apierrors.NewErrInternalServerError(err)
	}
	if !exists {
		return nil, apierrors.NewErrFileNotFound(key)
	}

	rc, err = a.blobs.Download(ctx, key)
	if err != nil {
		a.logger.Error("Avatar service: failed to download blob",
			"key", key,
			"error", err.Error())
		return nil, apierrors.NewErrInternalServerError(err)
	}

	return rc, nil
}
