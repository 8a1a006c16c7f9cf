package api

import (
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/config"
	"kras-kickers/volunteers/internal/db/repositories"
	"kras-kickers/volunteers/internal/metrics"
	"kras-kickers/volunteers/internal/services"
)

type Repositories struct {
	Opportunities *repositories.OpportunityRepositoryGORM
	Applications  *repositories.ApplicationRepositoryGORM
	Champions     *repositories.ChampionRepositoryGORM
	Lookup        *repositories.VolunteerLookupRepo
}

type Services struct {
	Sessions     *common.SessionService
	Tokens       *common.TokenService
	Mailer       common.Mailer
	Images       common.ImageStore
	Policy       *services.AuthorizationPolicy
	Lifecycle    *services.ApplicationLifecycleService
	Opportunity  *services.OpportunityService
	Champion     *services.ChampionService
	Verification *services.VerificationService
}

// Infrastructure holds the connections opened by main before wiring.
type Infrastructure struct {
	ORM          *gorm.DB
	DB           *sqlx.DB
	SessionStore common.SessionStore
	Mailer       common.Mailer
	Images       common.ImageStore
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	UpSince  time.Time
}

func InitDependencies(cfg *config.Config, infra Infrastructure, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Opportunities: repositories.NewOpportunityRepositoryGORM(infra.ORM),
		Applications:  repositories.NewApplicationRepositoryGORM(infra.ORM),
		Champions:     repositories.NewChampionRepositoryGORM(infra.ORM),
		Lookup:        repositories.NewVolunteerLookupRepo(infra.DB),
	}

	sessionSvc := common.NewSessionService(infra.SessionStore, cfg.SessionIdleTimeout())
	tokenSvc := common.NewTokenService([]byte(cfg.SecretKey))
	policy := services.NewAuthorizationPolicy(repos.Champions)

	svcs := &Services{
		Sessions: sessionSvc,
		Tokens:   tokenSvc,
		Mailer:   infra.Mailer,
		Images:   infra.Images,
		Policy:   policy,
		Lifecycle: services.NewApplicationLifecycleService(
			repos.Applications, repos.Opportunities, repos.Champions, repos.Lookup, policy, metricsReg,
		),
		Opportunity: services.NewOpportunityService(
			infra.ORM, repos.Opportunities, repos.Applications, repos.Champions, infra.Images, policy, metricsReg,
		),
		Champion: services.NewChampionService(
			repos.Champions, repos.Applications, repos.Opportunities, repos.Lookup, policy, metricsReg,
		),
		Verification: services.NewVerificationService(tokenSvc, infra.Mailer, sessionSvc, metricsReg, services.VerificationConfig{
			AdminDomain:   cfg.AdminEmailDomain,
			PublicBaseURL: cfg.PublicBaseURL,
			EmailMaxAge:   cfg.EmailTokenMaxAge(),
			AdminMaxAge:   cfg.AdminTokenMaxAge(),
		}),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
		UpSince:  time.Now(),
	}, nil
}

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}
