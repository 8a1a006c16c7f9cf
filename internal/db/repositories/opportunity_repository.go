package repositories

import (
	"context"
	"fmt"
	"time"

	gormModels "kras-kickers/volunteers/internal/models/gorm"

	"gorm.io/gorm"
)

// OpportunityRepositoryGORM handles opportunities table operations using GORM
type OpportunityRepositoryGORM struct {
	db *gorm.DB
}

func NewOpportunityRepositoryGORM(db *gorm.DB) *OpportunityRepositoryGORM {
	return &OpportunityRepositoryGORM{db: db}
}

// WithTx returns a repository bound to tx.
func (r *OpportunityRepositoryGORM) WithTx(tx *gorm.DB) *OpportunityRepositoryGORM {
	return &OpportunityRepositoryGORM{db: tx}
}

// GetByID returns nil when the opportunity does not exist.
func (r *OpportunityRepositoryGORM) GetByID(ctx context.Context, id uint) (*gormModels.Opportunity, error) {
	var opp gormModels.Opportunity

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&opp).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch opportunity: %w", err)
	}

	return &opp, nil
}

// GetByTitle matches the title case- and whitespace-insensitively.
func (r *OpportunityRepositoryGORM) GetByTitle(ctx context.Context, title string) (*gormModels.Opportunity, error) {
	var candidates []gormModels.Opportunity

	if err := r.db.WithContext(ctx).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch opportunity by title: %w", err)
	}

	want := gormModels.NormalizeTitle(title)
	for i := range candidates {
		if gormModels.NormalizeTitle(candidates[i].Title) == want {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// List returns opportunities with the given closed flag ordered by title.
func (r *OpportunityRepositoryGORM) List(ctx context.Context, closed bool) ([]gormModels.Opportunity, error) {
	var list []gormModels.Opportunity

	query := r.db.WithContext(ctx).Where("closed = ?", closed)
	if closed {
		query = query.Order("closed_date DESC").Order("id DESC")
	} else {
		query = query.Order("title ASC")
	}

	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	return list, nil
}

func (r *OpportunityRepositoryGORM) Create(ctx context.Context, opp *gormModels.Opportunity) error {
	if err := r.db.WithContext(ctx).Create(opp).Error; err != nil {
		return fmt.Errorf("failed to create opportunity: %w", err)
	}
	return nil
}

// Update saves the editable fields of opp. Closed state is changed only by SetClosed.
func (r *OpportunityRepositoryGORM) Update(ctx context.Context, opp *gormModels.Opportunity) error {
	err := r.db.WithContext(ctx).
		Model(&gormModels.Opportunity{}).
		Where("id = ?", opp.ID).
		Updates(map[string]interface{}{
			"title":        opp.Title,
			"mode":         opp.Mode,
			"time":         opp.Time,
			"duration":     opp.Duration,
			"location":     opp.Location,
			"description":  opp.Description,
			"requirements": opp.Requirements,
			"tags":         opp.Tags,
			"image":        opp.Image,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update opportunity: %w", err)
	}
	return nil
}

// SetImage stores a new image reference.
func (r *OpportunityRepositoryGORM) SetImage(ctx context.Context, id uint, image string) error {
	err := r.db.WithContext(ctx).
		Model(&gormModels.Opportunity{}).
		Where("id = ?", id).
		Update("image", image).Error
	if err != nil {
		return fmt.Errorf("failed to update opportunity image: %w", err)
	}
	return nil
}

// SetClosed flips the closed flag. closedDate is stored as given, nil on reopen.
func (r *OpportunityRepositoryGORM) SetClosed(ctx context.Context, id uint, closed bool, closedDate *time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&gormModels.Opportunity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"closed":      closed,
			"closed_date": closedDate,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update opportunity state: %w", err)
	}
	return nil
}

func (r *OpportunityRepositoryGORM) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&gormModels.Opportunity{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}
	return nil
}

// CountApplications counts applications linked to the opportunity by id, or
// by title for rows not yet backfilled.
func (r *OpportunityRepositoryGORM) CountApplications(ctx context.Context, opp *gormModels.Opportunity) (int64, error) {
	var linked int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Application{}).
		Where("opportunity_id = ?", opp.ID).
		Count(&linked).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}

	var unlinked []gormModels.Application
	err = r.db.WithContext(ctx).
		Select("id", "title").
		Where("opportunity_id IS NULL").
		Find(&unlinked).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unlinked applications: %w", err)
	}
	want := gormModels.NormalizeTitle(opp.Title)
	for _, app := range unlinked {
		if gormModels.NormalizeTitle(app.Title) == want {
			linked++
		}
	}
	return linked, nil
}
