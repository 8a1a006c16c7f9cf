package repositories

import (
	"context"
	"fmt"
	"strings"

	gormModels "kras-kickers/volunteers/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChampionRepositoryGORM handles champion_assignments table operations using GORM
type ChampionRepositoryGORM struct {
	db *gorm.DB
}

func NewChampionRepositoryGORM(db *gorm.DB) *ChampionRepositoryGORM {
	return &ChampionRepositoryGORM{db: db}
}

// WithTx returns a repository bound to tx.
func (r *ChampionRepositoryGORM) WithTx(tx *gorm.DB) *ChampionRepositoryGORM {
	return &ChampionRepositoryGORM{db: tx}
}

// Assign links the application to the opportunity. Existing pairs are left untouched.
func (r *ChampionRepositoryGORM) Assign(ctx context.Context, applicationID, opportunityID uint) error {
	assignment := gormModels.ChampionAssignment{
		ApplicationID: applicationID,
		OpportunityID: opportunityID,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "application_id"}, {Name: "opportunity_id"}},
			DoNothing: true,
		}).
		Create(&assignment).Error
	if err != nil {
		return fmt.Errorf("failed to assign champion: %w", err)
	}
	return nil
}

// Unassign removes the pair and reports whether a row existed.
func (r *ChampionRepositoryGORM) Unassign(ctx context.Context, applicationID, opportunityID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("application_id = ? AND opportunity_id = ?", applicationID, opportunityID).
		Delete(&gormModels.ChampionAssignment{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to unassign champion: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *ChampionRepositoryGORM) DeleteByOpportunity(ctx context.Context, opportunityID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		Delete(&gormModels.ChampionAssignment{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete champion assignments: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ChampionRepositoryGORM) ListByOpportunity(ctx context.Context, opportunityID uint) ([]gormModels.ChampionAssignment, error) {
	var list []gormModels.ChampionAssignment
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list champion assignments: %w", err)
	}
	return list, nil
}

// HasAssignment reports whether a champion application with the given email
// (case-insensitive) is assigned to the opportunity.
func (r *ChampionRepositoryGORM) HasAssignment(ctx context.Context, email string, opportunityID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.ChampionAssignment{}).
		Joins("JOIN applications ON applications.id = champion_assignments.application_id").
		Where("champion_assignments.opportunity_id = ?", opportunityID).
		Where("applications.is_champion = ?", true).
		Where("LOWER(applications.email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check champion assignment: %w", err)
	}
	return count > 0, nil
}

// OpportunityIDsForEmail lists the opportunities a champion email may manage.
func (r *ChampionRepositoryGORM) OpportunityIDsForEmail(ctx context.Context, email string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&gormModels.ChampionAssignment{}).
		Distinct("champion_assignments.opportunity_id").
		Joins("JOIN applications ON applications.id = champion_assignments.application_id").
		Where("applications.is_champion = ?", true).
		Where("LOWER(applications.email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Order("champion_assignments.opportunity_id ASC").
		Pluck("champion_assignments.opportunity_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list champion opportunities: %w", err)
	}
	return ids, nil
}
