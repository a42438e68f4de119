package auth

import "github.com/dmitrijs2005/hoverboard/internal/common"

// RequireOwner allows a mutation only when the acting subject owns the resource.
func RequireOwner(subjectID, ownerID string) error {
	if subjectID == "" || subjectID != ownerID {
		return common.ErrorForbidden
	}
	return nil
}
