package auth

import "github.com/dmitrijs2005/postboard/internal/common"

// Authorize allows a mutation only when requester owns the resource.
// A denial is common.ErrorForbidden: the caller is known but not permitted.
func Authorize(owner, requester common.UserID) error {
	if owner.IsZero() || !owner.Equal(requester) {
		return common.ErrorForbidden
	}
	return nil
}
