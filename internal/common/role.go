package common

import (
	"context"

	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/pkg/errorx"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"golang.org/x/exp/slices"
)

// EventManagerRoles can create events and change their rewards.
var EventManagerRoles = []entity.UserRole{entity.UserRoleAdmin, entity.UserRoleOperator}

// VerifyRole checks the role of the request user against the allowed roles.
func VerifyRole(ctx context.Context, roles ...entity.UserRole) error {
	if xcontext.RequestUserID(ctx) == "" {
		return errorx.New(errorx.Unauthenticated, "Need authenticated user")
	}

	role := entity.UserRole(xcontext.RequestUserRole(ctx))
	if !slices.Contains(roles, role) {
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}
