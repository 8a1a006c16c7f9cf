package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"kras-kickers/volunteers/internal/logging"
	gormModels "kras-kickers/volunteers/internal/models/gorm"
)

// Migrate creates or updates the tables owned by the service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&gormModels.Opportunity{},
		&gormModels.Application{},
		&gormModels.ChampionAssignment{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// BackfillOpportunityLinks sets opportunity_id on applications that only carry
// a title, matching titles case- and whitespace-insensitively. It returns the
// number of rows linked and is safe to run repeatedly.
func BackfillOpportunityLinks(ctx context.Context, db *gorm.DB) (int, error) {
	var opportunities []gormModels.Opportunity
	if err := db.WithContext(ctx).Find(&opportunities).Error; err != nil {
		return 0, fmt.Errorf("failed to load opportunities: %w", err)
	}
	byTitle := make(map[string]uint, len(opportunities))
	for _, o := range opportunities {
		byTitle[gormModels.NormalizeTitle(o.Title)] = o.ID
	}

	var orphans []gormModels.Application
	if err := db.WithContext(ctx).
		Select("id", "title").
		Where("opportunity_id IS NULL").
		Find(&orphans).Error; err != nil {
		return 0, fmt.Errorf("failed to load unlinked applications: %w", err)
	}

	linked := 0
	for _, app := range orphans {
		oppID, ok := byTitle[gormModels.NormalizeTitle(app.Title)]
		if !ok {
			continue
		}
		res := db.WithContext(ctx).
			Model(&gormModels.Application{}).
			Where("id = ? AND opportunity_id IS NULL", app.ID).
			Update("opportunity_id", oppID)
		if res.Error != nil {
			return linked, fmt.Errorf("failed to link application %d: %w", app.ID, res.Error)
		}
		linked += int(res.RowsAffected)
	}

	if linked > 0 {
		logging.Info("Backfilled application opportunity links", "linked", linked, "unlinked", len(orphans)-linked)
	}
	return linked, nil
}
