package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/db/repositories"
	"kras-kickers/volunteers/internal/logging"
	"kras-kickers/volunteers/internal/metrics"
	"kras-kickers/volunteers/internal/models/dtos"
	"kras-kickers/volunteers/internal/models/entities"
	gormModels "kras-kickers/volunteers/internal/models/gorm"
)

// ApplicationLifecycleService owns submission, status transitions and notes.
type ApplicationLifecycleService struct {
	apps      *repositories.ApplicationRepositoryGORM
	opps      *repositories.OpportunityRepositoryGORM
	champions *repositories.ChampionRepositoryGORM
	lookup    *repositories.VolunteerLookupRepo
	policy    *AuthorizationPolicy
	metrics   *metrics.MetricsRegistry
	now       func() time.Time
}

func NewApplicationLifecycleService(
	apps *repositories.ApplicationRepositoryGORM,
	opps *repositories.OpportunityRepositoryGORM,
	champions *repositories.ChampionRepositoryGORM,
	lookup *repositories.VolunteerLookupRepo,
	policy *AuthorizationPolicy,
	m *metrics.MetricsRegistry,
) *ApplicationLifecycleService {
	return &ApplicationLifecycleService{
		apps:      apps,
		opps:      opps,
		champions: champions,
		lookup:    lookup,
		policy:    policy,
		metrics:   m,
		now:       time.Now,
	}
}

// WithClock overrides the clock, mainly for tests.
func (svc *ApplicationLifecycleService) WithClock(now func() time.Time) *ApplicationLifecycleService {
	if now != nil {
		svc.now = now
	}
	return svc
}

// SubmitApplication creates a Pending application. The caller must hold a live
// email capability for the submitted address and the opportunity must be open.
func (svc *ApplicationLifecycleService) SubmitApplication(ctx context.Context, claims auth.UserClaims, req dtos.SubmitApplicationReq) (*gormModels.Application, error) {
	if err := common.ValidateRequest(req); err != nil {
		return nil, err
	}

	verified := ""
	if claims != nil {
		verified = claims.VerifiedEmail()
	}
	if verified == "" || common.NormalizeEmail(req.Email) != verified {
		return nil, common.ValidationError(constants.ErrCodeEmailNotVerified, "")
	}

	opp, err := svc.opps.GetByID(ctx, req.OpportunityID)
	if err != nil {
		return nil, common.InternalError("failed to load opportunity", err)
	}
	if opp == nil {
		return nil, common.ValidationError(constants.ErrCodeValidation, "Unknown opportunity")
	}
	if opp.Closed {
		return nil, common.ValidationError(constants.ErrCodeOpportunityClosed, "")
	}

	ts := svc.now()
	oppID := opp.ID
	app := &gormModels.Application{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.TrimSpace(req.Email),
		Phone:         common.NormalizePhone(req.Phone, constants.DefaultPhoneRegion),
		Contact:       strings.TrimSpace(req.Contact),
		Title:         opp.Title,
		OpportunityID: &oppID,
		Time:          firstNonEmpty(req.Time, opp.Time),
		Duration:      firstNonEmpty(req.Duration, opp.Duration),
		Location:      firstNonEmpty(req.Location, opp.Location),
		Comments:      strings.TrimSpace(req.Comments),
		Status:        constants.StatusPending,
		Timestamp:     ts,
	}
	app.History = app.History.Append(constants.EventApplicationSubmitted, ts)

	if err := svc.apps.Create(ctx, app); err != nil {
		return nil, common.InternalError("failed to save application", err)
	}

	svc.metrics.ApplicationSubmitted()
	logging.Info("Application submitted", "application_id", app.ID, "opportunity_id", oppID)
	return app, nil
}

// GetApplication returns one application to a manager of its opportunity.
func (svc *ApplicationLifecycleService) GetApplication(ctx context.Context, claims auth.UserClaims, id uint) (*gormModels.Application, error) {
	return svc.loadManaged(ctx, claims, id)
}

// TransitionStatus moves an application to the normalized requested status,
// appending the audit entries and the optional note with one timestamp.
func (svc *ApplicationLifecycleService) TransitionStatus(ctx context.Context, claims auth.UserClaims, id uint, req dtos.TransitionStatusReq) (*gormModels.Application, error) {
	if err := common.ValidateRequest(req); err != nil {
		return nil, err
	}

	app, err := svc.loadManaged(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if req.Revision != nil && *req.Revision != app.Revision {
		return nil, common.ConflictError(constants.ErrCodeStaleApplication, "")
	}

	to := NormalizeStatus(req.Status)
	prev := app.Revision
	if err := applyTransition(app, to, req.Note, svc.now()); err != nil {
		return nil, err
	}

	if err := svc.save(ctx, app, prev); err != nil {
		return nil, err
	}

	svc.metrics.StatusTransition(string(to))
	if strings.TrimSpace(req.Note) != "" {
		svc.metrics.NoteAdded()
	}
	logging.Info("Application status updated", "application_id", app.ID, "status", string(to), "role", claims.Role().String())
	return app, nil
}

// AddNote appends a standalone note to an application.
func (svc *ApplicationLifecycleService) AddNote(ctx context.Context, claims auth.UserClaims, id uint, req dtos.AddNoteReq) (*gormModels.Application, error) {
	if err := common.ValidateRequest(req); err != nil {
		return nil, err
	}

	app, err := svc.loadManaged(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if req.Revision != nil && *req.Revision != app.Revision {
		return nil, common.ConflictError(constants.ErrCodeStaleApplication, "")
	}

	prev := app.Revision
	if err := applyNote(app, req.Note, svc.now()); err != nil {
		return nil, err
	}
	if err := svc.save(ctx, app, prev); err != nil {
		return nil, err
	}

	svc.metrics.NoteAdded()
	return app, nil
}

// ListApplications returns every application to admins and the applications
// of their assigned opportunities to champions, newest first.
func (svc *ApplicationLifecycleService) ListApplications(ctx context.Context, claims auth.UserClaims) ([]entities.ApplicationSummary, error) {
	if err := svc.policy.RequireIdentified(claims); err != nil {
		return nil, err
	}

	if claims.IsAdmin() {
		list, err := svc.lookup.ListApplicationSummaries(ctx)
		if err != nil {
			return nil, common.InternalError("failed to list applications", err)
		}
		return list, nil
	}

	ids, err := svc.champions.OpportunityIDsForEmail(ctx, claims.VerifiedEmail())
	if err != nil {
		return nil, common.InternalError("failed to resolve champion scope", err)
	}
	if len(ids) == 0 {
		return nil, common.UnauthorizedError()
	}
	list, err := svc.lookup.ListSummariesForOpportunities(ctx, ids)
	if err != nil {
		return nil, common.InternalError("failed to list applications", err)
	}
	return list, nil
}

// CheckVolunteer reports who applied under an email address. It returns nil
// when nobody did.
func (svc *ApplicationLifecycleService) CheckVolunteer(ctx context.Context, email string) (*entities.VolunteerCheckIn, error) {
	if strings.TrimSpace(email) == "" {
		return nil, common.ValidationError(constants.ErrCodeValidation, "Email is required")
	}
	checkIn, err := svc.lookup.FindCheckInByEmail(ctx, email)
	if err != nil {
		return nil, common.InternalError("failed to look up volunteer", err)
	}
	return checkIn, nil
}

func (svc *ApplicationLifecycleService) loadManaged(ctx context.Context, claims auth.UserClaims, id uint) (*gormModels.Application, error) {
	if err := svc.policy.RequireIdentified(claims); err != nil {
		return nil, err
	}

	app, err := svc.apps.GetByID(ctx, id)
	if err != nil {
		return nil, common.InternalError("failed to load application", err)
	}
	if app == nil {
		// only admins learn whether an id exists
		if claims.IsAdmin() {
			return nil, common.NotFoundError("Application")
		}
		return nil, common.UnauthorizedError()
	}

	if err := svc.policy.requireManageApplication(ctx, claims, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (svc *ApplicationLifecycleService) save(ctx context.Context, app *gormModels.Application, prev int) error {
	if err := svc.apps.SaveAudited(ctx, app, prev); err != nil {
		if errors.Is(err, repositories.ErrStaleApplication) {
			return common.ConflictError(constants.ErrCodeStaleApplication, "")
		}
		return common.InternalError("failed to save application", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
