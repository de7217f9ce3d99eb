package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxImageBytes is 2048 KiB.
const DefaultMaxImageBytes int64 = 2048 * 1024

// ImageTypes are the accepted image MIME types, detected from content rather than the file name.
var ImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

// Upload is a file received from a form, held in memory.
type Upload struct {
	Filename    string
	Data        []byte
	ContentType string
	Ext         string
}

// NewUpload sniffs the content type of data.
func NewUpload(filename string, data []byte) *Upload {
	mtype := mimetype.Detect(data)
	return &Upload{
		Filename:    filename,
		Data:        data,
		ContentType: mtype.String(),
		Ext:         mtype.Extension(),
	}
}

// FromFileHeader reads a multipart file. At most maxBytes+1 bytes are read so oversized files
// are detected without buffering them whole.
func FromFileHeader(fh *multipart.FileHeader, maxBytes int64) (*Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}
	return NewUpload(fh.Filename, data), nil
}

func (u *Upload) Size() int64 {
	return int64(len(u.Data))
}

// Error codes for ValidationError.
const (
	CodeEmptyFile   = "empty_file"
	CodeTooLarge    = "file_too_large"
	CodeInvalidMIME = "invalid_mime"
)

// ValidationError describes why an upload was refused. Message reads after a field name,
// e.g. "image" + " must not be greater than 2048 kilobytes".
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateImage accepts non-empty JPEG, PNG and GIF files of at most maxBytes.
func ValidateImage(u *Upload, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	if u == nil || u.Size() == 0 {
		return &ValidationError{Code: CodeEmptyFile, Message: "must not be empty"}
	}
	if u.Size() > maxBytes {
		return &ValidationError{
			Code:    CodeTooLarge,
			Message: fmt.Sprintf("must not be greater than %d kilobytes", maxBytes/1024),
		}
	}

	mtype := mimetype.Detect(u.Data)
	if !mimetype.EqualsAny(mtype.String(), ImageTypes...) {
		return &ValidationError{
			Code:    CodeInvalidMIME,
			Message: "must be a file of type: jpeg, png, jpg, gif",
		}
	}
	return nil
}

func extOf(u *Upload) string {
	if u.Ext != "" {
		return u.Ext
	}
	if i := strings.LastIndexByte(u.Filename, '.'); i >= 0 {
		return strings.ToLower(u.Filename[i:])
	}
	return ".bin"
}
