package service

import (
	"context"
	"errors"
	"testing"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

func TestScopeResolver_AdminIsUnrestricted(t *testing.T) {
	r := NewScopeResolver(newStubProfileRepo())
	scope, err := r.ResolveScope(context.Background(), domain.RoleAdmin, "1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !scope.All {
		t.Error("admin scope must be unrestricted")
	}
}

func TestScopeResolver_ManagerGetsDepartment(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.add(domain.ManagerProfile{ID: "2", Name: "Mia Chen", DepartmentID: "3"}, "u-1")

	r := NewScopeResolver(profiles)
	scope, err := r.ResolveScope(context.Background(), domain.RoleManager, "2")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if scope.All {
		t.Error("manager scope must not be unrestricted")
	}
	if scope.DepartmentID != "3" {
		t.Errorf("expected department 3, got %q", scope.DepartmentID)
	}
}

func TestScopeResolver_EmployeeHasNoDepartmentScope(t *testing.T) {
	profiles := newStubProfileRepo()
	profiles.add(domain.EmployeeProfile{ID: "7", Name: "Eli Park", DepartmentID: "3"}, "u-2")

	r := NewScopeResolver(profiles)
	scope, err := r.ResolveScope(context.Background(), domain.RoleEmployee, "7")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if scope.DepartmentID != "" {
		t.Errorf("employee scope should not carry a department, got %q", scope.DepartmentID)
	}
	if scope.EntityID != "7" {
		t.Errorf("expected self scope on entity 7, got %q", scope.EntityID)
	}
}

func TestScopeResolver_MissingEntityIsForbidden(t *testing.T) {
	r := NewScopeResolver(newStubProfileRepo())
	if _, err := r.ResolveScope(context.Background(), domain.RoleManager, ""); !errors.Is(err, domain.ErrForbiddenScope) {
		t.Fatalf("expected ErrForbiddenScope for empty entity id, got %v", err)
	}
}

func TestScopeResolver_UnknownProfile(t *testing.T) {
	r := NewScopeResolver(newStubProfileRepo())
	if _, err := r.ResolveScope(context.Background(), domain.RoleManager, "404"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestScopeResolver_InvalidRole(t *testing.T) {
	r := NewScopeResolver(newStubProfileRepo())
	if _, err := r.ResolveScope(context.Background(), domain.Role(42), "1"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
