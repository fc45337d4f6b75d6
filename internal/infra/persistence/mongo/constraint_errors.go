package mongo

import (
	"strings"

	"passport/internal/domain/repository"
)

// duplicateKeySentinel maps a duplicate-key error from the driver to the
// violated domain sentinel by inspecting the index name carried in the
// server message. Returns nil when the violated index cannot be identified,
// in which case the caller falls back to a generic store error.
func duplicateKeySentinel(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, emailIndexName) || strings.Contains(msg, "emailAddress"):
		return repository.ErrDuplicateEmail
	case strings.Contains(msg, usernameIndexName) || strings.Contains(msg, "username"):
		return repository.ErrDuplicateUsername
	default:
		return nil
	}
}
