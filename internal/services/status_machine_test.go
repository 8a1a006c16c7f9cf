package services

import (
	"testing"
	"time"

	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	gormModels "kras-kickers/volunteers/internal/models/gorm"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]constants.ApplicationStatus{
		"Pending":             constants.StatusPending,
		"assigned":            constants.StatusAssigned,
		"  Closed-Completed ": constants.StatusClosedCompleted,
		"closed-not assigned": constants.StatusClosedNotAssigned,
		"Archived":            constants.StatusPending,
		"":                    constants.StatusPending,
		"Closed":              constants.StatusPending,
	}
	for in, want := range cases {
		if got := NormalizeStatus(in); got != want {
			t.Errorf("NormalizeStatus(%q) = %s, expected %s", in, got, want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	p, a := constants.StatusPending, constants.StatusAssigned
	cc, cn := constants.StatusClosedCompleted, constants.StatusClosedNotAssigned

	allowed := [][2]constants.ApplicationStatus{
		{p, p}, {p, a}, {p, cc}, {p, cn},
		{a, a}, {a, cc}, {a, cn},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Errorf("Expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	rejected := [][2]constants.ApplicationStatus{
		{a, p},
		{cc, p}, {cc, a}, {cc, cc}, {cc, cn},
		{cn, p}, {cn, a}, {cn, cc}, {cn, cn},
	}
	for _, pair := range rejected {
		if CanTransition(pair[0], pair[1]) {
			t.Errorf("Expected %s -> %s to be rejected", pair[0], pair[1])
		}
	}
}

func TestApplyTransition_SingleTimestamp(t *testing.T) {
	ts := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	app := &gormModels.Application{Title: "Field Day", Status: constants.StatusPending}

	if err := applyTransition(app, constants.StatusAssigned, "  great fit ", ts); err != nil {
		t.Fatalf("Expected transition to succeed, got %v", err)
	}
	if len(app.History) != 1 || app.History[0].Event != "Status updated to Assigned" {
		t.Fatalf("Expected one status entry, got %+v", app.History)
	}
	if len(app.Notes) != 1 || app.Notes[0].Note != "great fit" {
		t.Fatalf("Expected one trimmed note, got %+v", app.Notes)
	}
	if !app.History[0].Timestamp.Equal(ts) || !app.Notes[0].Timestamp.Equal(ts) {
		t.Error("Expected history and note to share the call timestamp")
	}
	if app.IsChampion {
		t.Error("Expected no champion promotion outside Champion-Leader")
	}
}

func TestApplyTransition_RejectedLeavesAppUntouched(t *testing.T) {
	ts := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	app := &gormModels.Application{Status: constants.StatusClosedCompleted}

	err := applyTransition(app, constants.StatusPending, "reopen please", ts)
	if !common.IsKind(err, common.KindValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if app.Status != constants.StatusClosedCompleted || len(app.History) != 0 || len(app.Notes) != 0 {
		t.Errorf("Expected application untouched, got %+v", app)
	}
}

func TestApplyTransition_ChampionLeaderPromotion(t *testing.T) {
	ts := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	leader := &gormModels.Application{Title: "  champion-LEADER ", Status: constants.StatusPending}
	if err := applyTransition(leader, constants.StatusClosedNotAssigned, "", ts); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if leader.IsChampion {
		t.Error("Expected no promotion when not moving to Assigned")
	}

	leader = &gormModels.Application{Title: "Champion-Leader", Status: constants.StatusPending}
	_ = applyTransition(leader, constants.StatusAssigned, "", ts)
	if !leader.IsChampion {
		t.Error("Expected promotion on Assigned")
	}

	// promotion is one-way
	_ = applyTransition(leader, constants.StatusClosedCompleted, "", ts)
	if !leader.IsChampion {
		t.Error("Expected champion flag to survive later transitions")
	}
}

func TestApplyNote(t *testing.T) {
	ts := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	app := &gormModels.Application{Status: constants.StatusPending}

	if err := applyNote(app, "   ", ts); !common.IsKind(err, common.KindValidation) {
		t.Errorf("Expected blank note to fail validation, got %v", err)
	}
	if err := applyNote(app, "called back", ts); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(app.Notes) != 1 || len(app.History) != 1 || app.History[0].Event != "Note added: called back" {
		t.Errorf("Expected note plus history marker, got notes=%+v history=%+v", app.Notes, app.History)
	}
}
