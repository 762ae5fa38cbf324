package utils

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var errNilID = errors.New("nil id")

// ParseID parses a path or body id; the all-zero uuid is rejected
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, errNilID
	}
	return id, nil
}

// GenerateOpaqueToken returns a random value for verification and reset links.
// uuid.New reads from crypto/rand.
func GenerateOpaqueToken() string {
	return uuid.NewString()
}
