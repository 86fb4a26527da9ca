package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidateArchivePath checks that path names an existing regular file.
// A missing path or a directory is an input-path error: the caller must
// stop rather than guess.
func ValidateArchivePath(path string) error {
	if err := validatePathString(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "archive %s does not exist", path)
	}
	if !info.Mode().IsRegular() {
		return New(ErrCodeInvalidPath, "archive %s is not a regular file", path)
	}
	return nil
}

// ValidateDirectory checks that path names an existing directory.
func ValidateDirectory(path string) error {
	if err := validatePathString(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "directory %s does not exist", path)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is not a directory", path)
	}
	return nil
}

// validatePathString rejects empty paths and paths with control characters.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func validatePathString(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
