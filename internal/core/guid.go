package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	guidLength        = 8
	displayLengthSize = 4
)

// GenerateGUID creates a short GUID with the provided prefix.
func GenerateGUID(prefix string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate guid: %w", err)
	}
	normalized := strings.TrimSuffix(prefix, "-")
	short := strings.ReplaceAll(id.String(), "-", "")[:guidLength]
	return fmt.Sprintf("%s-%s", normalized, short), nil
}

// GetGUIDPrefix extracts the shortened ID used in listings.
func GetGUIDPrefix(guid string) string {
	base := guid
	if idx := strings.Index(base, "-"); idx >= 0 {
		base = base[idx+1:]
	}
	if len(base) > displayLengthSize {
		return base[:displayLengthSize]
	}
	return base
}
