package services

import (
	"context"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/db/repositories"
	"kras-kickers/volunteers/internal/logging"
	"kras-kickers/volunteers/internal/metrics"
	"kras-kickers/volunteers/internal/models/entities"
)

// ChampionService manages champion assignments. Every operation is admin-only.
type ChampionService struct {
	champions *repositories.ChampionRepositoryGORM
	apps      *repositories.ApplicationRepositoryGORM
	opps      *repositories.OpportunityRepositoryGORM
	lookup    *repositories.VolunteerLookupRepo
	policy    *AuthorizationPolicy
	metrics   *metrics.MetricsRegistry
}

func NewChampionService(
	champions *repositories.ChampionRepositoryGORM,
	apps *repositories.ApplicationRepositoryGORM,
	opps *repositories.OpportunityRepositoryGORM,
	lookup *repositories.VolunteerLookupRepo,
	policy *AuthorizationPolicy,
	m *metrics.MetricsRegistry,
) *ChampionService {
	return &ChampionService{
		champions: champions,
		apps:      apps,
		opps:      opps,
		lookup:    lookup,
		policy:    policy,
		metrics:   m,
	}
}

// AssignChampion links a champion application to an open opportunity.
// Repeating an existing assignment succeeds without adding a row.
func (svc *ChampionService) AssignChampion(ctx context.Context, claims auth.UserClaims, opportunityID, applicationID uint) error {
	if err := svc.policy.RequireAdmin(claims); err != nil {
		return err
	}

	opp, err := svc.opps.GetByID(ctx, opportunityID)
	if err != nil {
		return common.InternalError("failed to load opportunity", err)
	}
	if opp == nil {
		return common.NotFoundError("Opportunity")
	}
	if opp.Closed {
		return common.ValidationError(constants.ErrCodeOpportunityClosed, "Closed opportunities cannot receive champions")
	}

	app, err := svc.apps.GetByID(ctx, applicationID)
	if err != nil {
		return common.InternalError("failed to load application", err)
	}
	if app == nil {
		return common.NotFoundError("Application")
	}
	if !app.IsChampion {
		return common.ValidationError(constants.ErrCodeNotChampion, "")
	}

	if err := svc.champions.Assign(ctx, app.ID, opp.ID); err != nil {
		return common.InternalError("failed to assign champion", err)
	}

	svc.metrics.ChampionAssignment("assign")
	logging.Info("Champion assigned", "application_id", app.ID, "opportunity_id", opp.ID, "admin", claims.AdminEmail())
	return nil
}

func (svc *ChampionService) UnassignChampion(ctx context.Context, claims auth.UserClaims, opportunityID, applicationID uint) error {
	if err := svc.policy.RequireAdmin(claims); err != nil {
		return err
	}
	removed, err := svc.champions.Unassign(ctx, applicationID, opportunityID)
	if err != nil {
		return common.InternalError("failed to unassign champion", err)
	}
	if !removed {
		return common.NotFoundError("Champion assignment")
	}
	svc.metrics.ChampionAssignment("unassign")
	return nil
}

func (svc *ChampionService) ListChampions(ctx context.Context, claims auth.UserClaims, opportunityID uint) ([]entities.ChampionRow, error) {
	if err := svc.policy.RequireAdmin(claims); err != nil {
		return nil, err
	}
	opp, err := svc.opps.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, common.InternalError("failed to load opportunity", err)
	}
	if opp == nil {
		return nil, common.NotFoundError("Opportunity")
	}
	rows, err := svc.lookup.ListChampions(ctx, opp.ID)
	if err != nil {
		return nil, common.InternalError("failed to list champions", err)
	}
	return rows, nil
}
