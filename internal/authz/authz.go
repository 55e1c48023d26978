// Package authz holds the role and ownership gates applied at the top of
// every mutating service operation. Denials are returned as ErrPermissionDenied
// values; callers log them with actor and target ids before surfacing.
package authz

import (
	"errors"

	"github.com/piyush5566/job-portal-go/internal/models"
)

var ErrPermissionDenied = errors.New("permission denied")

// Authorize reports whether actor holds one of the required roles. Admin
// passes every gate. A nil actor (anonymous request) never passes.
func Authorize(actor *models.User, roles ...string) bool {
	if actor == nil {
		return false
	}
	if actor.Role == models.RoleAdmin {
		return true
	}
	for _, r := range roles {
		if actor.Role == r {
			return true
		}
	}
	return false
}

// AuthorizeOwner reports whether actor may mutate a resource owned by
// ownerID: admins always, everyone else only their own resources.
func AuthorizeOwner(actor *models.User, ownerID uint) bool {
	if actor == nil {
		return false
	}
	if actor.Role == models.RoleAdmin {
		return true
	}
	return actor.ID == ownerID
}

// Require is Authorize as an error: nil on success, ErrPermissionDenied
// otherwise.
func Require(actor *models.User, roles ...string) error {
	if !Authorize(actor, roles...) {
		return ErrPermissionDenied
	}
	return nil
}

// RequireOwner is AuthorizeOwner as an error.
func RequireOwner(actor *models.User, ownerID uint) error {
	if !AuthorizeOwner(actor, ownerID) {
		return ErrPermissionDenied
	}
	return nil
}
