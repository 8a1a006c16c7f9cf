package repositories

import (
	"context"
	"errors"
	"fmt"

	"kras-kickers/volunteers/internal/constants"
	gormModels "kras-kickers/volunteers/internal/models/gorm"

	"gorm.io/gorm"
)

// ErrStaleApplication is returned when an audited save loses the revision race.
var ErrStaleApplication = errors.New("application revision is stale")

// ApplicationRepositoryGORM handles applications table operations using GORM
type ApplicationRepositoryGORM struct {
	db *gorm.DB
}

func NewApplicationRepositoryGORM(db *gorm.DB) *ApplicationRepositoryGORM {
	return &ApplicationRepositoryGORM{db: db}
}

// WithTx returns a repository bound to tx.
func (r *ApplicationRepositoryGORM) WithTx(tx *gorm.DB) *ApplicationRepositoryGORM {
	return &ApplicationRepositoryGORM{db: tx}
}

func (r *ApplicationRepositoryGORM) Create(ctx context.Context, app *gormModels.Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// GetByID returns nil when the application does not exist.
func (r *ApplicationRepositoryGORM) GetByID(ctx context.Context, id uint) (*gormModels.Application, error) {
	var app gormModels.Application

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&app).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}

	return &app, nil
}

// SaveAudited writes the mutable lifecycle fields of app in one UPDATE guarded
// by prevRevision, and bumps app.Revision on success. Zero affected rows means
// another writer got there first.
func (r *ApplicationRepositoryGORM) SaveAudited(ctx context.Context, app *gormModels.Application, prevRevision int) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Application{}).
		Where("id = ? AND revision = ?", app.ID, prevRevision).
		Updates(map[string]interface{}{
			"status":      app.Status,
			"history":     app.History,
			"notes":       app.Notes,
			"is_champion": app.IsChampion,
			"revision":    prevRevision + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to save application: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleApplication
	}
	app.Revision = prevRevision + 1
	return nil
}

// ListOpenForOpportunity returns Pending and Assigned applications linked to
// opp by id, plus unlinked rows whose title matches.
func (r *ApplicationRepositoryGORM) ListOpenForOpportunity(ctx context.Context, opp *gormModels.Opportunity) ([]gormModels.Application, error) {
	open := []constants.ApplicationStatus{constants.StatusPending, constants.StatusAssigned}

	var linked []gormModels.Application
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ? AND status IN ?", opp.ID, open).
		Order("id ASC").
		Find(&linked).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list open applications: %w", err)
	}

	var unlinked []gormModels.Application
	err = r.db.WithContext(ctx).
		Where("opportunity_id IS NULL AND status IN ?", open).
		Order("id ASC").
		Find(&unlinked).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unlinked applications: %w", err)
	}

	want := gormModels.NormalizeTitle(opp.Title)
	for _, app := range unlinked {
		if gormModels.NormalizeTitle(app.Title) == want {
			linked = append(linked, app)
		}
	}
	return linked, nil
}

// ListByOpportunity returns every application linked to the opportunity, newest first.
func (r *ApplicationRepositoryGORM) ListByOpportunity(ctx context.Context, opportunityID uint) ([]gormModels.Application, error) {
	var list []gormModels.Application
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		Order("timestamp DESC").
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return list, nil
}
