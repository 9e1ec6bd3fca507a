package user

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL derives the default avatar for an email address. The URL
// is computed once at registration and stored with the identity; later
// email edits do not re-derive it.
//
// Parameters: 200px, G-rated, "mystery person" fallback image.
func GravatarURL(email string) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=g&d=mp", hash)
}
