// Package validation checks uploaded files before they reach the parser:
// extension allow-list, size cap, and a non-empty body. Content-level
// validation belongs to the dataset loader.
package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// ErrTooLarge marks uploads over the configured size cap so callers can
// map them with errors.Is instead of matching message text.
var ErrTooLarge = errors.New("upload exceeds the size limit")

// UploadValidator validates dataset uploads against configured limits.
type UploadValidator struct {
	logger      *slog.Logger
	maxSize     int64
	allowedExts map[string]bool
}

// NewUploadValidator creates a validator from the configured limits.
func NewUploadValidator(logger *slog.Logger, maxSize int64, allowedExtensions []string) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	exts := make(map[string]bool, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		exts[strings.ToLower(ext)] = true
	}
	return &UploadValidator{
		logger:      logger,
		maxSize:     maxSize,
		allowedExts: exts,
	}
}

// Validate checks filename and declared size. A zero allowed-extension set
// accepts any extension (the loader still has to parse the content).
func (v *UploadValidator) Validate(filename string, size int64) error {
	if filename == "" {
		return fmt.Errorf("upload has no filename")
	}
	if size == 0 {
		return fmt.Errorf("upload %s is empty", filename)
	}
	if v.maxSize > 0 && size > v.maxSize {
		v.logger.Warn("upload rejected: too large",
			slog.String("filename", filename),
			slog.Int64("size", size),
			slog.Int64("max_size", v.maxSize))
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrTooLarge, filename, size, v.maxSize)
	}

	if len(v.allowedExts) > 0 {
		ext := strings.ToLower(filepath.Ext(filename))
		if !v.allowedExts[ext] {
			v.logger.Warn("upload rejected: extension not allowed",
				slog.String("filename", filename),
				slog.String("extension", ext))
			return fmt.Errorf("file type %q is not supported", ext)
		}
	}

	return nil
}

// MaxSize returns the configured size cap in bytes.
func (v *UploadValidator) MaxSize() int64 {
	return v.maxSize
}
