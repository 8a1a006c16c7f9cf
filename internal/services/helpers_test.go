package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/db"
	"kras-kickers/volunteers/internal/db/repositories"
	"kras-kickers/volunteers/internal/metrics"
	gormModels "kras-kickers/volunteers/internal/models/gorm"
)

const testAdminDomain = "kras.org"

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	db           *gorm.DB
	clock        *fakeClock
	mailer       *common.RecordingMailer
	sessions     *common.SessionService
	images       *memoryImageStore
	lifecycle    *ApplicationLifecycleService
	opportunity  *OpportunityService
	champion     *ChampionService
	verification *VerificationService
}

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

func newTestEnv(t *testing.T) *testEnv {
	gdb := setupTestDB(t)
	sqlDB, _ := gdb.DB()
	clock := &fakeClock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	m := metrics.NewMetricsRegistryWith(prometheus.NewRegistry())

	apps := repositories.NewApplicationRepositoryGORM(gdb)
	opps := repositories.NewOpportunityRepositoryGORM(gdb)
	champions := repositories.NewChampionRepositoryGORM(gdb)
	lookup := repositories.NewVolunteerLookupRepo(sqlx.NewDb(sqlDB, "sqlite3"))
	policy := NewAuthorizationPolicy(champions)

	sessions := common.NewSessionService(
		common.NewMemorySessionStore(time.Minute),
		30*time.Minute,
	).WithClock(clock.Now)
	mailer := &common.RecordingMailer{}
	images := &memoryImageStore{files: map[string][]byte{}}

	return &testEnv{
		db:        gdb,
		clock:     clock,
		mailer:    mailer,
		sessions:  sessions,
		images:    images,
		lifecycle: NewApplicationLifecycleService(apps, opps, champions, lookup, policy, m).WithClock(clock.Now),
		opportunity: NewOpportunityService(gdb, opps, apps, champions, images, policy, m).
			WithClock(clock.Now),
		champion: NewChampionService(champions, apps, opps, lookup, policy, m),
		verification: NewVerificationService(
			common.NewTokenService([]byte("test-secret")).WithClock(clock.Now),
			mailer, sessions, m,
			VerificationConfig{
				AdminDomain:   testAdminDomain,
				PublicBaseURL: "http://localhost:8080",
				EmailMaxAge:   time.Hour,
				AdminMaxAge:   time.Hour,
			},
		),
	}
}

func adminClaims() auth.UserClaims {
	s := auth.NewSession("admin-session")
	s.GrantAdmin("lead@"+testAdminDomain, time.Now())
	return auth.ClaimsFromSession(s)
}

func volunteerClaims(email string) auth.UserClaims {
	s := auth.NewSession("volunteer-session")
	s.GrantEmail(email, time.Now())
	return auth.ClaimsFromSession(s)
}

func (env *testEnv) seedOpportunity(t *testing.T, title string) *gormModels.Opportunity {
	opp := &gormModels.Opportunity{Title: title, Mode: "In-person", Duration: "Short-term", Image: "default.png"}
	if err := env.db.Create(opp).Error; err != nil {
		t.Fatalf("Failed to seed opportunity: %v", err)
	}
	return opp
}

func (env *testEnv) seedApplication(t *testing.T, opp *gormModels.Opportunity, email string) *gormModels.Application {
	id := opp.ID
	app := &gormModels.Application{
		FirstName:     "Test",
		LastName:      "Volunteer",
		Email:         email,
		Title:         opp.Title,
		OpportunityID: &id,
		Status:        "Pending",
		Timestamp:     env.clock.Now(),
	}
	app.History = app.History.Append("Application submitted", env.clock.Now())
	if err := env.db.Create(app).Error; err != nil {
		t.Fatalf("Failed to seed application: %v", err)
	}
	return app
}

func (env *testEnv) reload(t *testing.T, id uint) *gormModels.Application {
	var app gormModels.Application
	if err := env.db.First(&app, id).Error; err != nil {
		t.Fatalf("Failed to reload application %d: %v", id, err)
	}
	return &app
}

// memoryImageStore records uploads in memory
type memoryImageStore struct {
	files map[string][]byte
}

func (s *memoryImageStore) Put(_ context.Context, name, _ string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.files[name] = data
	return name, nil
}
