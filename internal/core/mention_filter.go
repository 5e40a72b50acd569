package core

import (
	"strings"

	"github.com/adamavenir/mention/internal/types"
)

// DefaultSuggestionLimit caps the dropdown when the config does not say otherwise.
const DefaultSuggestionLimit = 8

// FilterUsers returns users whose full name contains query, ignoring case,
// in directory order. A limit of zero or less means no cap.
func FilterUsers(users []types.User, query string, limit int) []types.User {
	needle := foldName(query)
	out := make([]types.User, 0, len(users))
	for _, user := range users {
		if !strings.Contains(foldName(user.FullName()), needle) {
			continue
		}
		out = append(out, user)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
