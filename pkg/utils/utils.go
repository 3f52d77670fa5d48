package utils

import (
	"crypto/rand"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const DefaultMaxFileSize = 5 * 1024 * 1024

var (
	ErrNoFile       = errors.New("no file uploaded")
	ErrEmptyFile    = errors.New("uploaded file is empty")
	ErrFileTooLarge = errors.New("file size exceeds limit")
	ErrNotAnImage   = errors.New("uploaded file is not an image")
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ReadUploadedFile(file *multipart.FileHeader) ([]byte, error)
	MaxFileSize() int64
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return NewWithLimit(DefaultMaxFileSize)
}

func NewWithLimit(maxFileSize int64) IUtils {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &utils{
		maxFileSize: maxFileSize,
	}
}

func (u *utils) MaxFileSize() int64 {
	return u.maxFileSize
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// ValidateImageFile checks size and declared type. Clients that cannot tell
// the type (octet-stream or nothing) are let through; the decoder decides.
func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return ErrNoFile
	}

	if file.Size <= 0 {
		return ErrEmptyFile
	}

	if file.Size > u.maxFileSize {
		return ErrFileTooLarge
	}

	contentType := strings.ToLower(file.Header.Get("Content-Type"))
	switch {
	case contentType == "", contentType == "application/octet-stream":
	case strings.HasPrefix(contentType, "image/"):
	default:
		return ErrNotAnImage
	}

	return nil
}

func (u *utils) ReadUploadedFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(io.LimitReader(src, u.maxFileSize+1))
}
