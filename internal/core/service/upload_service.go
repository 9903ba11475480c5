package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

// MaxImageBytes caps the decoded size of an uploaded image.
const MaxImageBytes = 5 << 20

const (
	defaultImageExt   = ".png"
	maxStoredNameBase = 80
)

var (
	dataURIPattern = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)
	nonWordPattern = regexp.MustCompile(`[^\w]`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
	unsafeNameChar = regexp.MustCompile(`[^a-z0-9_.-]`)
	dashRun        = regexp.MustCompile(`-+`)
)

var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

type UploadService struct {
	store  ports.ImageStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewUploadService(store ports.ImageStore, logger zerolog.Logger) *UploadService {
	return &UploadService{store: store, logger: logger, now: time.Now}
}

// Upload decodes the image, derives a safe object name and stores it.
func (s *UploadService) Upload(ctx context.Context, input ports.UploadImageInput) (string, error) {
	if input.Data == "" {
		return "", domain.NewValidationError("missing base64 data")
	}

	mime, payload := "", input.Data
	if strings.HasPrefix(input.Data, "data:") {
		m := dataURIPattern.FindStringSubmatch(input.Data)
		if m == nil {
			return "", domain.NewValidationError("invalid data URI format")
		}
		mime, payload = m[1], m[2]
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return "", domain.NewValidationError("invalid base64 payload")
	}
	if len(data) == 0 {
		return "", domain.NewValidationError("empty image payload")
	}
	if len(data) > MaxImageBytes {
		return "", domain.NewValidationError(fmt.Sprintf("image exceeds %d MB", MaxImageBytes>>20))
	}

	ext := imageExtension(input.Filename, mime)
	contentType, ok := imageContentTypes[ext]
	if !ok {
		return "", domain.NewValidationError("unsupported image type")
	}
	if mime != "" && !strings.EqualFold(mime, contentType) {
		return "", domain.NewValidationError("image type does not match file extension")
	}

	name := storedName(input.Filename, ext, s.now())
	url, err := s.store.Upload(ctx, name, data, contentType)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("object", name).Int("bytes", len(data)).Msg("image uploaded")
	return url, nil
}

func decodeBase64(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if data, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
}

// imageExtension prefers the filename's extension, then the MIME subtype,
// then .png.
func imageExtension(filename, mime string) string {
	if strings.Contains(filename, ".") {
		return strings.ToLower(path.Ext(filename))
	}
	if _, subtype, ok := strings.Cut(mime, "/"); ok && subtype != "" {
		if cleaned := nonWordPattern.ReplaceAllString(subtype, ""); cleaned != "" {
			return "." + strings.ToLower(cleaned)
		}
	}
	return defaultImageExt
}

// SanitizeFilename lower-cases name, turns whitespace into dashes, drops
// anything outside [a-z0-9_.-], collapses dash runs and caps the length.
func SanitizeFilename(name string) string {
	name = strings.ToLower(name)
	name = whitespaceRun.ReplaceAllString(name, "-")
	name = unsafeNameChar.ReplaceAllString(name, "")
	name = dashRun.ReplaceAllString(name, "-")
	if len(name) > maxStoredNameBase {
		name = name[:maxStoredNameBase]
	}
	return name
}

func storedName(filename, ext string, now time.Time) string {
	if filename == "" {
		filename = "upload" + ext
	}
	base := strings.TrimSuffix(SanitizeFilename(filename), ext)
	if base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), base, ext)
}
