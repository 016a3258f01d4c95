package translate

import "errors"

// ErrNotConfigured is returned by Disabled for every operation.
var ErrNotConfigured = errors.New("translation store not configured")

// Disabled stands in for the translation store when no API key is
// configured. Tasks that never touch the store run normally; doctor
// degrades to remote-only repairs; anything that must write fails with
// ErrNotConfigured.
type Disabled struct{}

func (Disabled) Upload(path, content string) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) Relocate(fileID, newPath, content string) error {
	return ErrNotConfigured
}

func (Disabled) Delete(fileID string) (bool, error) {
	return false, ErrNotConfigured
}

func (Disabled) MasterFiles() ([]File, error) {
	return nil, ErrNotConfigured
}
