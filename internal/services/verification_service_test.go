package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
)

// tokenFromMail pulls the token out of the activation link in the last message.
func tokenFromMail(t *testing.T, mailer *common.RecordingMailer) string {
	t.Helper()
	msg, ok := mailer.Last()
	if !ok {
		t.Fatal("Expected a message to be sent")
	}
	for _, field := range strings.Fields(msg.Body) {
		if !strings.HasPrefix(field, "http") {
			continue
		}
		u, err := url.Parse(field)
		if err != nil {
			t.Fatalf("Failed to parse link %q: %v", field, err)
		}
		return u.Query().Get("token")
	}
	t.Fatalf("No link in message body %q", msg.Body)
	return ""
}

func TestVerificationService_EmailRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.verification.RequestEmailVerification(ctx, "  Ada@Example.org "); err != nil {
		t.Fatalf("RequestEmailVerification failed: %v", err)
	}
	msg, _ := env.mailer.Last()
	if msg.To != "ada@example.org" {
		t.Errorf("Expected normalized recipient, got %s", msg.To)
	}
	if !strings.Contains(msg.Body, "http://localhost:8080/api/v1/verify/email/activate?token=") {
		t.Errorf("Expected activation link in body, got %s", msg.Body)
	}

	session := auth.NewSession("s1")
	email, err := env.verification.ActivateEmail(ctx, session, tokenFromMail(t, env.mailer))
	if err != nil {
		t.Fatalf("ActivateEmail failed: %v", err)
	}
	if email != "ada@example.org" || !session.EmailVerified() {
		t.Errorf("Expected verified session for ada@example.org, got %q", email)
	}

	stored, created, err := env.sessions.Load(ctx, "s1")
	if err != nil || created || !stored.EmailVerified() {
		t.Errorf("Expected activation to persist the session, got created=%v err=%v", created, err)
	}
}

func TestVerificationService_ExpiredOrForeignTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_ = env.verification.RequestEmailVerification(ctx, "ada@example.org")
	token := tokenFromMail(t, env.mailer)

	// an email token is never an admin token
	if _, err := env.verification.ActivateAdmin(ctx, auth.NewSession("s1"), token); !common.IsKind(err, common.KindActivation) {
		t.Errorf("Expected activation failure for wrong purpose, got %v", err)
	}

	env.clock.Advance(time.Hour + time.Second)
	session := auth.NewSession("s2")
	if _, err := env.verification.ActivateEmail(ctx, session, token); !common.IsKind(err, common.KindActivation) {
		t.Errorf("Expected activation failure for expired token, got %v", err)
	}
	if session.EmailVerified() {
		t.Error("Expected session to stay unverified")
	}

	if _, err := env.verification.ActivateEmail(ctx, session, "garbage"); !common.IsKind(err, common.KindActivation) {
		t.Errorf("Expected activation failure for garbage token, got %v", err)
	}
}

func TestVerificationService_AdminDomainRestriction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.verification.RequestAdminVerification(ctx, "mallory@evil.org"); !common.IsKind(err, common.KindUnauthorized) {
		t.Errorf("Expected unauthorized outside admin domain, got %v", err)
	}
	if len(env.mailer.Messages) != 0 {
		t.Error("Expected no mail for refused admin request")
	}

	if err := env.verification.RequestAdminVerification(ctx, "Lead@KRAS.org"); err != nil {
		t.Fatalf("RequestAdminVerification failed: %v", err)
	}
	session := auth.NewSession("s1")
	email, err := env.verification.ActivateAdmin(ctx, session, tokenFromMail(t, env.mailer))
	if err != nil {
		t.Fatalf("ActivateAdmin failed: %v", err)
	}
	if email != "lead@kras.org" || !auth.ClaimsFromSession(session).IsAdmin() {
		t.Errorf("Expected admin session for lead@kras.org, got %q", email)
	}
	if session.EmailVerified() {
		t.Error("Expected admin activation to leave the email capability alone")
	}
}

func TestVerificationService_MailFailureIsTransport(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.Err = errors.New("connection refused")

	err := env.verification.RequestEmailVerification(context.Background(), "ada@example.org")
	if !common.IsKind(err, common.KindTransport) {
		t.Errorf("Expected transport error, got %v", err)
	}
}

func TestVerificationService_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)
	err := env.verification.RequestEmailVerification(context.Background(), "not an email")
	if !common.IsKind(err, common.KindValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestVerificationService_AdminLinkForCLI(t *testing.T) {
	env := newTestEnv(t)

	link, err := env.verification.AdminActivationLink("lead@kras.org")
	if err != nil {
		t.Fatalf("AdminActivationLink failed: %v", err)
	}
	u, _ := url.Parse(link)
	if u.Path != "/api/v1/verify/admin/activate" || u.Query().Get("token") == "" {
		t.Errorf("Unexpected admin link %s", link)
	}
	if _, err := env.verification.AdminActivationLink("ada@example.org"); !common.IsKind(err, common.KindUnauthorized) {
		t.Errorf("Expected refusal outside admin domain, got %v", err)
	}
}
