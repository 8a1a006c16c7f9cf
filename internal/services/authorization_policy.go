package services

import (
	"context"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	gormModels "kras-kickers/volunteers/internal/models/gorm"
)

// ChampionLookup answers whether a champion email is assigned to an opportunity.
type ChampionLookup interface {
	HasAssignment(ctx context.Context, email string, opportunityID uint) (bool, error)
}

// AuthorizationPolicy decides who may manage an opportunity and its applications.
type AuthorizationPolicy struct {
	champions ChampionLookup
}

func NewAuthorizationPolicy(champions ChampionLookup) *AuthorizationPolicy {
	return &AuthorizationPolicy{champions: champions}
}

// CanManage: admins manage everything, champions manage the opportunities
// they are assigned to, everyone else nothing.
func (p *AuthorizationPolicy) CanManage(ctx context.Context, claims auth.UserClaims, opportunityID uint) (bool, error) {
	if claims == nil {
		return false, nil
	}
	if claims.IsAdmin() {
		return true, nil
	}
	email := claims.VerifiedEmail()
	if email == "" || opportunityID == 0 {
		return false, nil
	}
	return p.champions.HasAssignment(ctx, email, opportunityID)
}

// CanManageApplication resolves the application's opportunity; applications
// without one are admin-only.
func (p *AuthorizationPolicy) CanManageApplication(ctx context.Context, claims auth.UserClaims, app *gormModels.Application) (bool, error) {
	if app.OpportunityID == nil {
		return claims != nil && claims.IsAdmin(), nil
	}
	return p.CanManage(ctx, claims, *app.OpportunityID)
}

// RequireAdmin returns an unauthorized error unless claims hold the admin capability.
func (p *AuthorizationPolicy) RequireAdmin(claims auth.UserClaims) error {
	if claims == nil || !claims.IsAdmin() {
		return common.UnauthorizedError()
	}
	return nil
}

// RequireIdentified rejects anonymous callers before any lookup happens.
func (p *AuthorizationPolicy) RequireIdentified(claims auth.UserClaims) error {
	if claims == nil || claims.Role() == constants.RoleAnonymous {
		return common.UnauthorizedError()
	}
	return nil
}

// requireManage turns a policy decision into an error.
func (p *AuthorizationPolicy) requireManage(ctx context.Context, claims auth.UserClaims, opportunityID uint) error {
	ok, err := p.CanManage(ctx, claims, opportunityID)
	if err != nil {
		return common.InternalError("authorization check failed", err)
	}
	if !ok {
		return common.UnauthorizedError()
	}
	return nil
}

func (p *AuthorizationPolicy) requireManageApplication(ctx context.Context, claims auth.UserClaims, app *gormModels.Application) error {
	ok, err := p.CanManageApplication(ctx, claims, app)
	if err != nil {
		return common.InternalError("authorization check failed", err)
	}
	if !ok {
		return common.UnauthorizedError()
	}
	return nil
}
