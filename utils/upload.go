package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nagarseva-be/apperrors"
)

// MaxPhotoSize is the upload size ceiling (10 MiB).
const MaxPhotoSize = 10 << 20

// UploadedPhoto is an image attachment already read off the wire.
type UploadedPhoto struct {
	Filename    string
	ContentType string
	Data        []byte
}

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidatePhoto checks the declared content type, the file extension, and the
// size ceiling.
func ValidatePhoto(photo *UploadedPhoto) error {
	if int64(len(photo.Data)) > MaxPhotoSize {
		return apperrors.NewUnsupportedMediaError("photo exceeds the 10MB size limit")
	}
	if !strings.HasPrefix(photo.ContentType, "image/") {
		return apperrors.NewUnsupportedMediaError("only image uploads are allowed")
	}
	ext := strings.ToLower(filepath.Ext(photo.Filename))
	if !allowedPhotoExtensions[ext] {
		return apperrors.NewUnsupportedMediaError("unsupported image format: " + ext)
	}
	return nil
}

// SavePhoto validates the photo, writes it under dir with a
// collision-resistant name, and returns the public path it is served at.
func SavePhoto(photo *UploadedPhoto, dir string) (string, error) {
	if err := ValidatePhoto(photo); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(photo.Filename))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randomBase36(6), ext)
	if err := os.WriteFile(filepath.Join(dir, name), photo.Data, 0o644); err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}
