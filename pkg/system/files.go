package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Custom errors
var (
	ErrReadFile  = errors.New("failed to read file")
	ErrWriteFile = errors.New("failed to write file")
)

// ReadFile returns the contents of a UTF-8 text file
func ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	return decodeLossy(content), nil
}

// WriteFile writes content to path, creating missing parent directories
func WriteFile(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}
	return nil
}

// Exists reports whether path can be stat'ed
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
