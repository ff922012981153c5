package ports

import (
	"context"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

// ProfileRepository resolves the role-specific profile rows attached to user
// accounts. Only active profiles are returned.
type ProfileRepository interface {
	// FindByUser resolves the profile owned by a user account, used at login
	// to attach entity claims.
	FindByUser(ctx context.Context, role domain.Role, userID string) (domain.Profile, error)
	// FindByEntity resolves a profile by its role-specific entity id, used
	// for scope resolution on every scoped call.
	FindByEntity(ctx context.Context, role domain.Role, entityID string) (domain.Profile, error)
}

// ScopeResolver maps a (role, entityID) pair to the data scope that role may
// see. The result is derived per call and never cached, so a department
// reassignment takes effect on the next request.
type ScopeResolver interface {
	ResolveScope(ctx context.Context, role domain.Role, entityID string) (domain.Scope, error)
}
