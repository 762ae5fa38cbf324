package usecase

import "crossfit-api/internal/data/entity"

// Authorize reports whether user holds one of the allowed roles.
// A nil user or a role outside the known set is always denied.
func Authorize(user *entity.User, allowed ...entity.Role) bool {
	if user == nil || !user.Role.Valid() {
		return false
	}
	for _, role := range allowed {
		if user.Role == role {
			return true
		}
	}
	return false
}
