package db

import (
	"context"
	"testing"
	"time"

	"kras-kickers/volunteers/internal/constants"
	gormModels "kras-kickers/volunteers/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestBackfillOpportunityLinks(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	opp := gormModels.Opportunity{Title: "Snack Bar"}
	gdb.Create(&opp)

	ts := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	matching := gormModels.Application{Email: "a@x.org", Title: "  snack   BAR", Status: constants.StatusPending, Timestamp: ts}
	orphan := gormModels.Application{Email: "b@x.org", Title: "Retired Role", Status: constants.StatusPending, Timestamp: ts}
	gdb.Create(&matching)
	gdb.Create(&orphan)

	linked, err := BackfillOpportunityLinks(context.Background(), gdb)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if linked != 1 {
		t.Errorf("Expected 1 linked row, got %d", linked)
	}

	var reloaded gormModels.Application
	gdb.First(&reloaded, matching.ID)
	if reloaded.OpportunityID == nil || *reloaded.OpportunityID != opp.ID {
		t.Errorf("Expected opportunity_id %d, got %v", opp.ID, reloaded.OpportunityID)
	}

	again, err := BackfillOpportunityLinks(context.Background(), gdb)
	if err != nil || again != 0 {
		t.Errorf("Expected second run to link nothing, got %d, %v", again, err)
	}
}
