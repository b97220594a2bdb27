package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	err     error
	headErr error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if aws.ToInt64(in.ContentLength) != int64(len(data)) {
		return nil, errors.New("content length mismatch")
	}
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(data)))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.err
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	api := newFakeS3()
	s := NewWithAPI(api, "avatars")

	require.NoError(t, s.Upload(ctx, "a.jpg", strings.NewReader("jpeg-bytes")))
	assert.Equal(t, "image/jpeg", api.types["a.jpg"])

	ok, err := s.Exists(ctx, "a.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Download(ctx, "a.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, s.Delete(ctx, "a.jpg"))
	ok, err = s.Exists(ctx, "a.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Download(ctx, "a.jpg")
	assert.Error(t, err)
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	api := newFakeS3()
	api.err = errors.New("access denied")
	s := NewWithAPI(api, "avatars")

	err := s.Upload(ctx, "a.png", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload object")

	assert.Error(t, s.Delete(ctx, "a.png"))
	assert.Error(t, s.Ping(ctx))

	api.headErr = errors.New("timeout")
	_, err = s.Exists(ctx, "a.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to head object")
}

func TestStore_UploadReadError(t *testing.T) {
	s := NewWithAPI(newFakeS3(), "avatars")

	err := s.Upload(context.Background(), "a.png", io.MultiReader(strings.NewReader("x"), errReader{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read upload body")
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestStore_Ping(t *testing.T) {
	assert.NoError(t, NewWithAPI(newFakeS3(), "avatars").Ping(context.Background()))
}
