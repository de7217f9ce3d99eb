package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	gifBytes = append([]byte("GIF89a"), make([]byte, 32)...)
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		max  int64
		code string
	}{
		{"png", pngBytes, 0, ""},
		{"gif", gifBytes, 0, ""},
		{"jpeg", append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 32)...), 0, ""},
		{"empty", nil, 0, CodeEmptyFile},
		{"text", []byte("hello, this is not an image"), 0, CodeInvalidMIME},
		{"pdf", []byte("%PDF-1.4\n%...."), 0, CodeInvalidMIME},
		{"too large", pngBytes, 16, CodeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(NewUpload("f", tt.data), tt.max)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.code, verr.Code)
		})
	}
}

func TestValidateImageDefaultLimit(t *testing.T) {
	big := append(append([]byte{}, pngBytes...), make([]byte, DefaultMaxImageBytes)...)
	err := ValidateImage(NewUpload("big.png", big), 0)
	require.Error(t, err)
	assert.Equal(t, "must not be greater than 2048 kilobytes", err.Error())
}

func TestFromFileHeaderStopsReadingPastLimit(t *testing.T) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(append(append([]byte{}, pngBytes...), make([]byte, 4096)...))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	up, err := FromFileHeader(req.MultipartForm.File["image"][0], 100)
	require.NoError(t, err)
	assert.Equal(t, int64(101), up.Size())
	assert.Equal(t, "image/png", up.ContentType)
	assert.Equal(t, ".png", up.Ext)
	assert.Error(t, ValidateImage(up, 100))
}

func TestLocalPutAndDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	l, err := NewLocal(root, "http://localhost:8080/storage/")
	require.NoError(t, err)

	key, err := l.Put(ctx, "services", NewUpload("logo.png", pngBytes))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "services/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, "http://localhost:8080/storage/"+key, l.URL(key))

	require.NoError(t, l.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	require.NoError(t, l.Delete(ctx, key))
}

func TestLocalRefusesPathsOutsideRoot(t *testing.T) {
	ctx := context.Background()
	parent := t.TempDir()
	root := filepath.Join(parent, "public")
	l, err := NewLocal(root, "/storage")
	require.NoError(t, err)

	outside := filepath.Join(parent, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	assert.ErrorIs(t, l.Delete(ctx, "../secret.txt"), ErrInvalidPath)
	assert.ErrorIs(t, l.Delete(ctx, "."), ErrInvalidPath)
	assert.ErrorIs(t, l.Delete(ctx, " "), ErrEmptyPath)
	_, err = os.Stat(outside)
	assert.NoError(t, err)

	// dir traversal is flattened into the root
	key, err := l.Put(ctx, "../../etc", NewUpload("a.gif", gifBytes))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "etc/"), key)
}

type fakeObjectAPI struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3PutAndDelete(t *testing.T) {
	ctx := context.Background()
	api := &fakeObjectAPI{}
	s := &S3{client: api, cfg: S3Config{Bucket: "media", Region: "eu-west-1"}}

	key, err := s.Put(ctx, "hero-slides", NewUpload("slide.gif", gifBytes))
	require.NoError(t, err)
	require.Len(t, api.puts, 1)
	put := api.puts[0]
	assert.Equal(t, "media", aws.ToString(put.Bucket))
	assert.Equal(t, key, aws.ToString(put.Key))
	assert.Equal(t, "image/gif", aws.ToString(put.ContentType))
	assert.Equal(t, types.ObjectCannedACLPublicRead, put.ACL)
	assert.True(t, strings.HasPrefix(key, "hero-slides/"))

	require.NoError(t, s.Delete(ctx, key))
	require.Len(t, api.deletes, 1)
	assert.Equal(t, key, aws.ToString(api.deletes[0].Key))
	assert.ErrorIs(t, s.Delete(ctx, ""), ErrEmptyPath)
}

func TestS3URL(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{"aws", S3Config{Bucket: "media", Region: "eu-west-1"}, "https://media.s3.eu-west-1.amazonaws.com/a/b.png"},
		{"path style", S3Config{Bucket: "media", Endpoint: "http://minio:9000/", PathStyle: true}, "http://minio:9000/media/a/b.png"},
		{"virtual host endpoint", S3Config{Bucket: "media", Endpoint: "https://media.r2.dev"}, "https://media.r2.dev/a/b.png"},
		{"cdn", S3Config{Bucket: "media", PublicURL: "https://cdn.example.com/"}, "https://cdn.example.com/a/b.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, (&S3{cfg: tt.cfg}).URL("a/b.png"))
		})
	}
}
