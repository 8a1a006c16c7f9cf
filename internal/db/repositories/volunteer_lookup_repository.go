package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// VolunteerLookupRepo serves the read projections over sqlx.
type VolunteerLookupRepo struct {
	db *sqlx.DB
}

func NewVolunteerLookupRepo(db *sqlx.DB) *VolunteerLookupRepo {
	return &VolunteerLookupRepo{db: db}
}

// FindCheckInByEmail returns the name on the most recent application for the address, or nil.
func (r *VolunteerLookupRepo) FindCheckInByEmail(ctx context.Context, email string) (*entities.VolunteerCheckIn, error) {
	var checkIn entities.VolunteerCheckIn

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(constants.GetVolunteerCheckInByEmail), strings.ToLower(strings.TrimSpace(email))).StructScan(&checkIn)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find volunteer: %w", err)
	}
	return &checkIn, nil
}

// ListApplicationSummaries returns every application, newest first.
func (r *VolunteerLookupRepo) ListApplicationSummaries(ctx context.Context) ([]entities.ApplicationSummary, error) {
	summaries := []entities.ApplicationSummary{}
	if err := r.db.SelectContext(ctx, &summaries, constants.ListApplicationSummaries); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return summaries, nil
}

// ListSummariesForOpportunities returns applications of the given opportunities, newest first.
func (r *VolunteerLookupRepo) ListSummariesForOpportunities(ctx context.Context, opportunityIDs []uint) ([]entities.ApplicationSummary, error) {
	summaries := []entities.ApplicationSummary{}
	if len(opportunityIDs) == 0 {
		return summaries, nil
	}

	query, args, err := sqlx.In(constants.ListApplicationSummariesForOpportunities, opportunityIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	if err := r.db.SelectContext(ctx, &summaries, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return summaries, nil
}

// ListChampions returns the champions assigned to an opportunity.
func (r *VolunteerLookupRepo) ListChampions(ctx context.Context, opportunityID uint) ([]entities.ChampionRow, error) {
	rows := []entities.ChampionRow{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(constants.ListChampionsForOpportunity), opportunityID); err != nil {
		return nil, fmt.Errorf("failed to list champions: %w", err)
	}
	return rows, nil
}

func (r *VolunteerLookupRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
