package service

import (
	"context"
	"fmt"

	"github.com/workfusion/workforce-system/internal/core/domain"
	"github.com/workfusion/workforce-system/internal/core/ports"
)

// ScopeResolver maps a (role, entityID) pair to the data scope that role may
// operate on. Each call is a fresh profile lookup; the result is never
// cached, so a department reassignment takes effect on the next request.
type ScopeResolver struct {
	profiles ports.ProfileRepository
}

func NewScopeResolver(profiles ports.ProfileRepository) *ScopeResolver {
	return &ScopeResolver{profiles: profiles}
}

// ResolveScope returns an unrestricted scope for admins, a department scope
// for managers, and a self-only scope for employees and clients.
func (r *ScopeResolver) ResolveScope(ctx context.Context, role domain.Role, entityID string) (domain.Scope, error) {
	if !role.Valid() {
		return domain.Scope{}, fmt.Errorf("resolve scope: %w", domain.ErrValidation)
	}
	if role == domain.RoleAdmin {
		return domain.Scope{Role: role, EntityID: entityID, All: true}, nil
	}
	if entityID == "" {
		// Token issued without entity claims (unprovisioned profile).
		return domain.Scope{}, domain.ErrForbiddenScope
	}

	profile, err := r.profiles.FindByEntity(ctx, role, entityID)
	if err != nil {
		return domain.Scope{}, fmt.Errorf("resolve scope: %w", err)
	}

	scope := domain.Scope{Role: role, EntityID: profile.EntityID()}
	if m, ok := profile.(domain.DepartmentMember); ok && role == domain.RoleManager {
		scope.DepartmentID = m.Department()
	}
	return scope, nil
}
