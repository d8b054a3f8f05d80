package config

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators registers custom validation functions
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("store_path", validateStorePath)
}

// validateStorePath rejects paths that cannot name a regular file.
func validateStorePath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" || strings.ContainsRune(path, 0) {
		return false
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return false
	}
	base := filepath.Base(filepath.Clean(path))
	return base != "." && base != ".."
}
