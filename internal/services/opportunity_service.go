package services

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"gorm.io/gorm"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/db/repositories"
	"kras-kickers/volunteers/internal/logging"
	"kras-kickers/volunteers/internal/metrics"
	"kras-kickers/volunteers/internal/models/dtos"
	gormModels "kras-kickers/volunteers/internal/models/gorm"
)

// OpportunityFilter narrows the public listing.
type OpportunityFilter struct {
	Query    string
	Mode     string
	Duration string
}

// opportunitySearchItems implements fuzzy.Source over title and description
type opportunitySearchItems []gormModels.Opportunity

func (items opportunitySearchItems) Len() int {
	return len(items)
}

func (items opportunitySearchItems) String(i int) string {
	return strings.ToLower(items[i].Title + " " + items[i].Description)
}

// OpportunityService manages the opportunity registry.
type OpportunityService struct {
	db        *gorm.DB
	opps      *repositories.OpportunityRepositoryGORM
	apps      *repositories.ApplicationRepositoryGORM
	champions *repositories.ChampionRepositoryGORM
	images    common.ImageStore
	policy    *AuthorizationPolicy
	metrics   *metrics.MetricsRegistry
	now       func() time.Time
}

func NewOpportunityService(
	db *gorm.DB,
	opps *repositories.OpportunityRepositoryGORM,
	apps *repositories.ApplicationRepositoryGORM,
	champions *repositories.ChampionRepositoryGORM,
	images common.ImageStore,
	policy *AuthorizationPolicy,
	m *metrics.MetricsRegistry,
) *OpportunityService {
	return &OpportunityService{
		db:        db,
		opps:      opps,
		apps:      apps,
		champions: champions,
		images:    images,
		policy:    policy,
		metrics:   m,
		now:       time.Now,
	}
}

// WithClock overrides the clock, mainly for tests.
func (svc *OpportunityService) WithClock(now func() time.Time) *OpportunityService {
	if now != nil {
		svc.now = now
	}
	return svc
}

// ListOpen returns open opportunities. A query ranks by fuzzy match over
// title and description; mode and duration filter case-insensitively.
func (svc *OpportunityService) ListOpen(ctx context.Context, filter OpportunityFilter) ([]gormModels.Opportunity, error) {
	list, err := svc.opps.List(ctx, false)
	if err != nil {
		return nil, common.InternalError("failed to list opportunities", err)
	}

	filtered := make([]gormModels.Opportunity, 0, len(list))
	for _, o := range list {
		if filter.Mode != "" && !strings.EqualFold(strings.TrimSpace(o.Mode), strings.TrimSpace(filter.Mode)) {
			continue
		}
		if filter.Duration != "" && !strings.EqualFold(strings.TrimSpace(o.Duration), strings.TrimSpace(filter.Duration)) {
			continue
		}
		filtered = append(filtered, o)
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	if query == "" {
		return filtered, nil
	}

	items := opportunitySearchItems(filtered)
	matches := fuzzy.FindFrom(query, items)
	results := make([]gormModels.Opportunity, 0, len(matches))
	for _, match := range matches {
		results = append(results, items[match.Index])
	}
	return results, nil
}

// ListClosed is admin-only, most recently closed first.
func (svc *OpportunityService) ListClosed(ctx context.Context, claims auth.UserClaims) ([]gormModels.Opportunity, error) {
	if err := svc.policy.RequireAdmin(claims); err != nil {
		return nil, err
	}
	list, err := svc.opps.List(ctx, true)
	if err != nil {
		return nil, common.InternalError("failed to list closed opportunities", err)
	}
	return list, nil
}

func (svc *OpportunityService) Get(ctx context.Context, id uint) (*gormModels.Opportunity, error) {
	opp, err := svc.opps.GetByID(ctx, id)
	if err != nil {
		return nil, common.InternalError("failed to load opportunity", err)
	}
	if opp == nil {
		return nil, common.NotFoundError("Opportunity")
	}
	return opp, nil
}

func (svc *OpportunityService) Create(ctx context.Context, claims auth.UserClaims, req dtos.OpportunityReq) (*gormModels.Opportunity, error) {
	if err := svc.policy.RequireAdmin(claims); err != nil {
		return nil, err
	}
	if err := common.ValidateRequest(req); err != nil {
		return nil, err
	}
	if err := svc.ensureTitleFree(ctx, req.Title, 0); err != nil {
		return nil, err
	}

	opp := &gormModels.Opportunity{}
	applyOpportunityReq(opp, req)
	if opp.Image == "" {
		opp.Image = constants.DefaultOpportunityImage
	}

	if err := svc.opps.Create(ctx, opp); err != nil {
		return nil, common.InternalError("failed to create opportunity", err)
	}
	logging.Info("Opportunity created", "opportunity_id", opp.ID, "admin", claims.AdminEmail())
	return opp, nil
}

func (svc *OpportunityService) Update(ctx context.Context, claims auth.UserClaims, id uint, req dtos.OpportunityReq) (*gormModels.Opportunity, error) {
	if err := svc.policy.RequireAdmin(claims); err != nil {
		return nil, err
	}
	if err := common.ValidateRequest(req); err != nil {
		return nil, err
	}

	opp, err := svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := svc.ensureTitleFree(ctx, req.Title, opp.ID); err != nil {
		return nil, err
	}

	image := opp.Image
	applyOpportunityReq(opp, req)
	if opp.Image == "" {
		opp.Image = image
	}

	if err := svc.opps.Update(ctx, opp); err != nil {
		return nil, common.InternalError("failed to update opportunity", err)
	}
	return opp, nil
}

// Delete refuses while any application references the opportunity.
func (svc *OpportunityService) Delete(ctx context.Context, claims auth.UserClaims, id uint) error {
	if err := svc.policy.RequireAdmin(claims); err != nil {
		return err
	}
	opp, err := svc.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := svc.opps.CountApplications(ctx, opp)
	if err != nil {
		return common.InternalError("failed to count applications", err)
	}
	if count > 0 {
		return common.ConflictError(constants.ErrCodeReferenced, "")
	}

	if err := svc.opps.Delete(ctx, opp.ID); err != nil {
		return common.InternalError("failed to delete opportunity", err)
	}
	logging.Info("Opportunity deleted", "opportunity_id", opp.ID, "admin", claims.AdminEmail())
	return nil
}

// Close marks the opportunity closed, force-closes its Pending and Assigned
// applications with the usual audit entries, and drops its champion
// assignments, all in one transaction. It returns the number of applications
// closed. Closing an already closed opportunity changes nothing.
func (svc *OpportunityService) Close(ctx context.Context, claims auth.UserClaims, id uint) (int, error) {
	if err := svc.policy.RequireAdmin(claims); err != nil {
		return 0, err
	}
	opp, err := svc.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if opp.Closed {
		return 0, nil
	}

	ts := svc.now()
	cascaded := 0
	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		opps := svc.opps.WithTx(tx)
		apps := svc.apps.WithTx(tx)
		champions := svc.champions.WithTx(tx)

		if err := opps.SetClosed(ctx, opp.ID, true, &ts); err != nil {
			return err
		}

		open, err := apps.ListOpenForOpportunity(ctx, opp)
		if err != nil {
			return err
		}
		for i := range open {
			app := &open[i]
			prev := app.Revision
			if err := applyTransition(app, constants.StatusClosedCompleted, "", ts); err != nil {
				return err
			}
			if err := apps.SaveAudited(ctx, app, prev); err != nil {
				return err
			}
			cascaded++
		}

		_, err = champions.DeleteByOpportunity(ctx, opp.ID)
		return err
	})
	if err != nil {
		return 0, common.InternalError("failed to close opportunity", err)
	}

	svc.metrics.OpportunityClosed(cascaded)
	logging.Info("Opportunity closed", "opportunity_id", opp.ID, "applications_closed", cascaded)
	return cascaded, nil
}

// Reopen clears the closed flag and date only; cascaded applications stay closed.
func (svc *OpportunityService) Reopen(ctx context.Context, claims auth.UserClaims, id uint) error {
	if err := svc.policy.RequireAdmin(claims); err != nil {
		return err
	}
	opp, err := svc.Get(ctx, id)
	if err != nil {
		return err
	}
	if !opp.Closed {
		return nil
	}
	if err := svc.opps.SetClosed(ctx, opp.ID, false, nil); err != nil {
		return common.InternalError("failed to reopen opportunity", err)
	}
	logging.Info("Opportunity reopened", "opportunity_id", opp.ID)
	return nil
}

// Applicants lists every application for the opportunity to its managers.
func (svc *OpportunityService) Applicants(ctx context.Context, claims auth.UserClaims, id uint) ([]gormModels.Application, error) {
	if err := svc.policy.RequireIdentified(claims); err != nil {
		return nil, err
	}
	opp, err := svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := svc.policy.requireManage(ctx, claims, opp.ID); err != nil {
		return nil, err
	}
	list, err := svc.apps.ListByOpportunity(ctx, opp.ID)
	if err != nil {
		return nil, common.InternalError("failed to list applicants", err)
	}
	return list, nil
}

// UploadImage stores the image and points the opportunity at it.
func (svc *OpportunityService) UploadImage(ctx context.Context, claims auth.UserClaims, id uint, filename string, r io.Reader) (string, error) {
	if err := svc.policy.RequireAdmin(claims); err != nil {
		return "", err
	}
	name, ok := common.SanitizeImageName(filename)
	if !ok {
		return "", common.ValidationError(constants.ErrCodeValidation, "Image must be a png, jpg, jpeg or gif file")
	}
	opp, err := svc.Get(ctx, id)
	if err != nil {
		return "", err
	}

	ref, err := svc.images.Put(ctx, name, common.ImageContentType(name), r)
	if err != nil {
		return "", common.InternalError("failed to store image", err)
	}
	if err := svc.opps.SetImage(ctx, opp.ID, ref); err != nil {
		return "", common.InternalError("failed to update opportunity image", err)
	}
	return ref, nil
}

func (svc *OpportunityService) ensureTitleFree(ctx context.Context, title string, selfID uint) error {
	existing, err := svc.opps.GetByTitle(ctx, title)
	if err != nil {
		return common.InternalError("failed to check title", err)
	}
	if existing != nil && existing.ID != selfID {
		return common.ConflictError(constants.ErrCodeConflict, "An opportunity with this title already exists")
	}
	return nil
}

func applyOpportunityReq(opp *gormModels.Opportunity, req dtos.OpportunityReq) {
	opp.Title = strings.TrimSpace(req.Title)
	opp.Mode = strings.TrimSpace(req.Mode)
	opp.Time = strings.TrimSpace(req.Time)
	opp.Duration = strings.TrimSpace(req.Duration)
	opp.Location = strings.TrimSpace(req.Location)
	opp.Description = req.Description
	opp.Requirements = req.Requirements
	tags := make(gormModels.Tags, 0, len(req.Tags))
	for _, t := range req.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	opp.Tags = tags
	opp.Image = strings.TrimSpace(req.Image)
}
