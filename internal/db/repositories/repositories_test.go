package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"kras-kickers/volunteers/internal/audit"
	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/db"
	gormModels "kras-kickers/volunteers/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return gdb
}

func seedOpportunity(t *testing.T, gdb *gorm.DB, title string) *gormModels.Opportunity {
	opp := &gormModels.Opportunity{Title: title, Tags: gormModels.Tags{"outdoor"}}
	if err := gdb.Create(opp).Error; err != nil {
		t.Fatalf("Failed to seed opportunity: %v", err)
	}
	return opp
}

func seedApplication(t *testing.T, gdb *gorm.DB, app gormModels.Application) *gormModels.Application {
	if app.Status == "" {
		app.Status = constants.StatusPending
	}
	if app.Timestamp.IsZero() {
		app.Timestamp = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	}
	if err := gdb.Create(&app).Error; err != nil {
		t.Fatalf("Failed to seed application: %v", err)
	}
	return &app
}

func uintPtr(v uint) *uint { return &v }

func TestApplicationRepositoryGORM_SaveAudited(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewApplicationRepositoryGORM(gdb)
	ctx := context.Background()

	opp := seedOpportunity(t, gdb, "Field Day")
	app := seedApplication(t, gdb, gormModels.Application{Email: "a@x.org", Title: opp.Title, OpportunityID: uintPtr(opp.ID)})

	ts := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	app.Status = constants.StatusAssigned
	app.History = app.History.Append("Status updated to Assigned", ts)
	if err := repo.SaveAudited(ctx, app, 0); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}
	if app.Revision != 1 {
		t.Errorf("Expected revision 1, got %d", app.Revision)
	}

	stored, err := repo.GetByID(ctx, app.ID)
	if err != nil || stored == nil {
		t.Fatalf("Expected stored application, got %v", err)
	}
	if stored.Status != constants.StatusAssigned {
		t.Errorf("Expected Assigned, got %s", stored.Status)
	}
	if len(stored.History) != 1 || stored.History[0].Event != "Status updated to Assigned" {
		t.Errorf("Expected one history entry, got %+v", stored.History)
	}

	// a writer holding revision 0 lost the race
	stale := *stored
	stale.Notes = stale.Notes.Append("late", ts)
	if err := repo.SaveAudited(ctx, &stale, 0); !errors.Is(err, ErrStaleApplication) {
		t.Errorf("Expected ErrStaleApplication, got %v", err)
	}
}

func TestApplicationRepositoryGORM_GetByIDMissing(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewApplicationRepositoryGORM(gdb)

	app, err := repo.GetByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if app != nil {
		t.Errorf("Expected nil application, got %+v", app)
	}
}

func TestApplicationRepositoryGORM_ListOpenForOpportunity(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewApplicationRepositoryGORM(gdb)

	opp := seedOpportunity(t, gdb, "Field  Day")
	other := seedOpportunity(t, gdb, "Snack Bar")

	seedApplication(t, gdb, gormModels.Application{Email: "a@x.org", Title: opp.Title, OpportunityID: uintPtr(opp.ID)})
	seedApplication(t, gdb, gormModels.Application{Email: "b@x.org", Title: opp.Title, OpportunityID: uintPtr(opp.ID), Status: constants.StatusAssigned})
	seedApplication(t, gdb, gormModels.Application{Email: "c@x.org", Title: opp.Title, OpportunityID: uintPtr(opp.ID), Status: constants.StatusClosedNotAssigned})
	seedApplication(t, gdb, gormModels.Application{Email: "d@x.org", Title: "field day"})
	seedApplication(t, gdb, gormModels.Application{Email: "e@x.org", Title: other.Title, OpportunityID: uintPtr(other.ID)})

	list, err := repo.ListOpenForOpportunity(context.Background(), opp)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 open applications, got %d", len(list))
	}
	if list[2].Email != "d@x.org" {
		t.Errorf("Expected unlinked title match last, got %s", list[2].Email)
	}
}

func TestChampionRepositoryGORM_AssignIsIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewChampionRepositoryGORM(gdb)
	ctx := context.Background()

	opp := seedOpportunity(t, gdb, "Field Day")
	app := seedApplication(t, gdb, gormModels.Application{Email: "Lead@X.org", Title: constants.ChampionLeaderTitle, IsChampion: true})

	for i := 0; i < 2; i++ {
		if err := repo.Assign(ctx, app.ID, opp.ID); err != nil {
			t.Fatalf("Assign #%d failed: %v", i+1, err)
		}
	}

	list, err := repo.ListByOpportunity(ctx, opp.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected one assignment row, got %d", len(list))
	}

	ok, err := repo.HasAssignment(ctx, "lead@x.org", opp.ID)
	if err != nil || !ok {
		t.Errorf("Expected case-insensitive assignment match, got %v, %v", ok, err)
	}

	ids, err := repo.OpportunityIDsForEmail(ctx, "LEAD@x.org")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ids) != 1 || ids[0] != opp.ID {
		t.Errorf("Expected [%d], got %v", opp.ID, ids)
	}

	removed, err := repo.Unassign(ctx, app.ID, opp.ID)
	if err != nil || !removed {
		t.Errorf("Expected unassign to remove row, got %v, %v", removed, err)
	}
	if ok, _ := repo.HasAssignment(ctx, "lead@x.org", opp.ID); ok {
		t.Error("Expected no assignment after unassign")
	}
}

func TestChampionRepositoryGORM_NonChampionNeverMatches(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewChampionRepositoryGORM(gdb)
	ctx := context.Background()

	opp := seedOpportunity(t, gdb, "Field Day")
	app := seedApplication(t, gdb, gormModels.Application{Email: "plain@x.org", Title: opp.Title})
	_ = repo.Assign(ctx, app.ID, opp.ID)

	if ok, _ := repo.HasAssignment(ctx, "plain@x.org", opp.ID); ok {
		t.Error("Expected assignment of non-champion application to grant nothing")
	}
}

func TestOpportunityRepositoryGORM_CloseAndCount(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewOpportunityRepositoryGORM(gdb)
	ctx := context.Background()

	opp := seedOpportunity(t, gdb, "Field Day")
	seedApplication(t, gdb, gormModels.Application{Email: "a@x.org", Title: opp.Title, OpportunityID: uintPtr(opp.ID)})
	seedApplication(t, gdb, gormModels.Application{Email: "b@x.org", Title: " FIELD day "})

	count, err := repo.CountApplications(ctx, opp)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 referencing applications, got %d", count)
	}

	closedAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.SetClosed(ctx, opp.ID, true, &closedAt); err != nil {
		t.Fatalf("SetClosed failed: %v", err)
	}
	open, _ := repo.List(ctx, false)
	closed, _ := repo.List(ctx, true)
	if len(open) != 0 || len(closed) != 1 {
		t.Errorf("Expected 0 open and 1 closed, got %d and %d", len(open), len(closed))
	}
	if closed[0].ClosedDate == nil {
		t.Error("Expected closed date to be stored")
	}

	byTitle, err := repo.GetByTitle(ctx, "field   DAY")
	if err != nil || byTitle == nil || byTitle.ID != opp.ID {
		t.Errorf("Expected title lookup to find opportunity, got %+v, %v", byTitle, err)
	}
}

func TestVolunteerLookupRepo_Projections(t *testing.T) {
	gdb := setupTestDB(t)
	sqlDB, _ := gdb.DB()
	repo := NewVolunteerLookupRepo(sqlx.NewDb(sqlDB, "sqlite3"))
	ctx := context.Background()

	opp := seedOpportunity(t, gdb, "Field Day")
	other := seedOpportunity(t, gdb, "Snack Bar")
	seedApplication(t, gdb, gormModels.Application{FirstName: "Ada", Email: "Ada@X.org", Title: opp.Title, OpportunityID: uintPtr(opp.ID),
		Timestamp: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)})
	seedApplication(t, gdb, gormModels.Application{FirstName: "Bo", Email: "bo@x.org", Title: other.Title, OpportunityID: uintPtr(other.ID),
		Timestamp: time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC),
		History:   audit.History{}.Append("Application submitted", time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC))})

	found, err := repo.FindCheckInByEmail(ctx, "ada@x.ORG")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if found == nil || found.FirstName != "Ada" {
		t.Errorf("Expected Ada, got %+v", found)
	}

	missing, err := repo.FindCheckInByEmail(ctx, "nobody@x.org")
	if err != nil || missing != nil {
		t.Errorf("Expected nil for unknown email, got %+v, %v", missing, err)
	}

	all, err := repo.ListApplicationSummaries(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 2 || all[0].FirstName != "Bo" {
		t.Errorf("Expected newest first, got %+v", all)
	}

	scoped, err := repo.ListSummariesForOpportunities(ctx, []uint{opp.ID})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(scoped) != 1 || scoped[0].Email != "Ada@X.org" {
		t.Errorf("Expected only the Field Day applicant, got %+v", scoped)
	}

	none, err := repo.ListSummariesForOpportunities(ctx, nil)
	if err != nil || len(none) != 0 {
		t.Errorf("Expected empty list for no opportunities, got %+v, %v", none, err)
	}
}
