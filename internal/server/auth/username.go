package auth

import (
	"regexp"

	"github.com/dmitrijs2005/hoverboard/internal/common"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// ValidateUsername accepts 3 to 30 ASCII letters, digits or underscores.
func ValidateUsername(name string) error {
	if !usernamePattern.MatchString(name) {
		return common.ErrInvalidUsername
	}
	return nil
}
