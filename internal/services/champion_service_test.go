package services

import (
	"context"
	"errors"
	"testing"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/models/dtos"
	gormModels "kras-kickers/volunteers/internal/models/gorm"
)

// Mock ChampionLookup
type mockChampionLookup struct {
	hasAssignmentFunc func(ctx context.Context, email string, opportunityID uint) (bool, error)
	calls             int
}

func (m *mockChampionLookup) HasAssignment(ctx context.Context, email string, opportunityID uint) (bool, error) {
	m.calls++
	return m.hasAssignmentFunc(ctx, email, opportunityID)
}

func TestAuthorizationPolicy_CanManage(t *testing.T) {
	lookup := &mockChampionLookup{
		hasAssignmentFunc: func(ctx context.Context, email string, opportunityID uint) (bool, error) {
			return email == "champ@example.org" && opportunityID == 7, nil
		},
	}
	policy := NewAuthorizationPolicy(lookup)
	ctx := context.Background()

	if ok, _ := policy.CanManage(ctx, adminClaims(), 99); !ok {
		t.Error("Expected admin to manage every opportunity")
	}
	if ok, _ := policy.CanManage(ctx, volunteerClaims("champ@example.org"), 7); !ok {
		t.Error("Expected champion to manage assigned opportunity")
	}
	if ok, _ := policy.CanManage(ctx, volunteerClaims("champ@example.org"), 8); ok {
		t.Error("Expected champion to be refused elsewhere")
	}

	lookup.calls = 0
	if ok, _ := policy.CanManage(ctx, auth.Anonymous(), 7); ok {
		t.Error("Expected anonymous to manage nothing")
	}
	if lookup.calls != 0 {
		t.Error("Expected no lookup for anonymous callers")
	}
}

func TestAuthorizationPolicy_LookupErrorPropagates(t *testing.T) {
	policy := NewAuthorizationPolicy(&mockChampionLookup{
		hasAssignmentFunc: func(ctx context.Context, email string, opportunityID uint) (bool, error) {
			return false, errors.New("db down")
		},
	})
	if _, err := policy.CanManage(context.Background(), volunteerClaims("champ@example.org"), 7); err == nil {
		t.Error("Expected lookup error")
	}
	if err := policy.requireManage(context.Background(), volunteerClaims("champ@example.org"), 7); !common.IsKind(err, common.KindInternal) {
		t.Errorf("Expected internal error, got %v", err)
	}
}

func TestAuthorizationPolicy_UnlinkedApplication(t *testing.T) {
	policy := NewAuthorizationPolicy(&mockChampionLookup{
		hasAssignmentFunc: func(ctx context.Context, email string, opportunityID uint) (bool, error) {
			return true, nil
		},
	})
	app := &gormModels.Application{}
	if ok, _ := policy.CanManageApplication(context.Background(), volunteerClaims("champ@example.org"), app); ok {
		t.Error("Expected application without opportunity to be admin-only")
	}
	if ok, _ := policy.CanManageApplication(context.Background(), adminClaims(), app); !ok {
		t.Error("Expected admin to manage application without opportunity")
	}
}

func TestChampionService_AssignRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	leaderOpp := env.seedOpportunity(t, constants.ChampionLeaderTitle)
	opp := env.seedOpportunity(t, "Field Day")
	plain := env.seedApplication(t, opp, "plain@example.org")
	leader := env.seedApplication(t, leaderOpp, "champ@example.org")

	if err := env.champion.AssignChampion(ctx, adminClaims(), opp.ID, plain.ID); !common.IsKind(err, common.KindValidation) {
		t.Errorf("Expected non-champion assignment to fail, got %v", err)
	}
	if err := env.champion.AssignChampion(ctx, volunteerClaims("champ@example.org"), opp.ID, leader.ID); !common.IsKind(err, common.KindUnauthorized) {
		t.Errorf("Expected non-admin assignment to fail, got %v", err)
	}

	_, _ = env.lifecycle.TransitionStatus(ctx, adminClaims(), leader.ID, dtos.TransitionStatusReq{Status: "Assigned"})

	for i := 0; i < 2; i++ {
		if err := env.champion.AssignChampion(ctx, adminClaims(), opp.ID, leader.ID); err != nil {
			t.Fatalf("Assign #%d failed: %v", i+1, err)
		}
	}
	rows, err := env.champion.ListChampions(ctx, adminClaims(), opp.ID)
	if err != nil {
		t.Fatalf("ListChampions failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Email != "champ@example.org" {
		t.Errorf("Expected one champion row, got %+v", rows)
	}

	if err := env.champion.UnassignChampion(ctx, adminClaims(), opp.ID, leader.ID); err != nil {
		t.Errorf("Unassign failed: %v", err)
	}
	if err := env.champion.UnassignChampion(ctx, adminClaims(), opp.ID, leader.ID); !common.IsKind(err, common.KindNotFound) {
		t.Errorf("Expected second unassign to be not found, got %v", err)
	}

	_, _ = env.opportunity.Close(ctx, adminClaims(), opp.ID)
	if err := env.champion.AssignChampion(ctx, adminClaims(), opp.ID, leader.ID); !common.IsKind(err, common.KindValidation) {
		t.Errorf("Expected closed opportunity to refuse champions, got %v", err)
	}
}
