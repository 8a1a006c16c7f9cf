package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/logging"
	"kras-kickers/volunteers/internal/metrics"
	"kras-kickers/volunteers/internal/models/dtos"
)

const (
	emailActivatePath = "/api/v1/verify/email/activate"
	adminActivatePath = "/api/v1/verify/admin/activate"
)

// VerificationService runs the email and admin activation handshakes.
type VerificationService struct {
	tokens        *common.TokenService
	mailer        common.Mailer
	sessions      *common.SessionService
	metrics       *metrics.MetricsRegistry
	adminDomain   string
	publicBaseURL string
	emailMaxAge   time.Duration
	adminMaxAge   time.Duration
}

type VerificationConfig struct {
	AdminDomain   string
	PublicBaseURL string
	EmailMaxAge   time.Duration
	AdminMaxAge   time.Duration
}

func NewVerificationService(
	tokens *common.TokenService,
	mailer common.Mailer,
	sessions *common.SessionService,
	m *metrics.MetricsRegistry,
	cfg VerificationConfig,
) *VerificationService {
	if cfg.EmailMaxAge <= 0 {
		cfg.EmailMaxAge = constants.DefaultTokenMaxAge
	}
	if cfg.AdminMaxAge <= 0 {
		cfg.AdminMaxAge = constants.DefaultTokenMaxAge
	}
	return &VerificationService{
		tokens:        tokens,
		mailer:        mailer,
		sessions:      sessions,
		metrics:       m,
		adminDomain:   cfg.AdminDomain,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		emailMaxAge:   cfg.EmailMaxAge,
		adminMaxAge:   cfg.AdminMaxAge,
	}
}

// RequestEmailVerification mails an activation link for email. A mail
// failure is reported as a transport error and nothing else changes.
func (svc *VerificationService) RequestEmailVerification(ctx context.Context, email string) error {
	if err := common.ValidateRequest(dtos.VerifyEmailReq{Email: email}); err != nil {
		return err
	}
	email = common.NormalizeEmail(email)

	link, err := svc.activationLink(constants.TokenPurposeEmailActivate, emailActivatePath, email)
	if err != nil {
		return common.InternalError("failed to issue token", err)
	}

	body := fmt.Sprintf("Click the link below to verify your email address:\n\n%s\n\nThe link expires in %s.", link, svc.emailMaxAge)
	if err := svc.mailer.Send(ctx, email, "Verify your email", body); err != nil {
		svc.metrics.VerificationEmail(string(constants.TokenPurposeEmailActivate), "failed")
		return common.TransportError(err)
	}

	svc.metrics.VerificationEmail(string(constants.TokenPurposeEmailActivate), "sent")
	logging.Info("Verification email sent", "purpose", string(constants.TokenPurposeEmailActivate))
	return nil
}

// ActivateEmail grants the email capability to session when token is valid.
func (svc *VerificationService) ActivateEmail(ctx context.Context, session *auth.Session, token string) (string, error) {
	email, ok := svc.tokens.Verify(constants.TokenPurposeEmailActivate, token, svc.emailMaxAge)
	if !ok || session == nil {
		svc.metrics.Activation(string(constants.TokenPurposeEmailActivate), "rejected")
		return "", common.ActivationError()
	}

	session.GrantEmail(email, svc.sessions.Now())
	if err := svc.sessions.Save(ctx, session); err != nil {
		return "", common.InternalError("failed to store session", err)
	}

	svc.metrics.Activation(string(constants.TokenPurposeEmailActivate), "ok")
	return session.VerifiedEmail(), nil
}

// RequestAdminVerification mails an admin link, only to addresses in the admin domain.
func (svc *VerificationService) RequestAdminVerification(ctx context.Context, email string) error {
	if err := common.ValidateRequest(dtos.VerifyEmailReq{Email: email}); err != nil {
		return err
	}
	email = common.NormalizeEmail(email)
	if !common.EmailInDomain(email, svc.adminDomain) {
		return common.UnauthorizedError()
	}

	link, err := svc.AdminActivationLink(email)
	if err != nil {
		return err
	}

	body := fmt.Sprintf("Click the link below to sign in as an administrator:\n\n%s\n\nThe link expires in %s.", link, svc.adminMaxAge)
	if err := svc.mailer.Send(ctx, email, "Admin sign-in", body); err != nil {
		svc.metrics.VerificationEmail(string(constants.TokenPurposeAdminActivate), "failed")
		return common.TransportError(err)
	}

	svc.metrics.VerificationEmail(string(constants.TokenPurposeAdminActivate), "sent")
	return nil
}

// AdminActivationLink issues an admin link without sending it.
func (svc *VerificationService) AdminActivationLink(email string) (string, error) {
	email = common.NormalizeEmail(email)
	if !common.EmailInDomain(email, svc.adminDomain) {
		return "", common.UnauthorizedError()
	}
	link, err := svc.activationLink(constants.TokenPurposeAdminActivate, adminActivatePath, email)
	if err != nil {
		return "", common.InternalError("failed to issue token", err)
	}
	return link, nil
}

// ActivateAdmin grants the admin capability to session when token is valid.
func (svc *VerificationService) ActivateAdmin(ctx context.Context, session *auth.Session, token string) (string, error) {
	email, ok := svc.tokens.Verify(constants.TokenPurposeAdminActivate, token, svc.adminMaxAge)
	if !ok || session == nil || !common.EmailInDomain(email, svc.adminDomain) {
		svc.metrics.Activation(string(constants.TokenPurposeAdminActivate), "rejected")
		return "", common.ActivationError()
	}

	session.GrantAdmin(email, svc.sessions.Now())
	if err := svc.sessions.Save(ctx, session); err != nil {
		return "", common.InternalError("failed to store session", err)
	}

	svc.metrics.Activation(string(constants.TokenPurposeAdminActivate), "ok")
	logging.Info("Admin capability granted", "admin", session.AdminEmail())
	return session.AdminEmail(), nil
}

// Logout drops every capability held by session.
func (svc *VerificationService) Logout(ctx context.Context, session *auth.Session) error {
	if session == nil {
		return nil
	}
	session.Clear()
	if err := svc.sessions.Destroy(ctx, session.ID); err != nil {
		return common.InternalError("failed to end session", err)
	}
	return nil
}

func (svc *VerificationService) activationLink(purpose constants.TokenPurpose, path, email string) (string, error) {
	token, err := svc.tokens.Issue(purpose, email)
	if err != nil {
		return "", err
	}
	return svc.publicBaseURL + path + "?token=" + url.QueryEscape(token), nil
}
