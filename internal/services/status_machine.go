package services

import (
	"fmt"
	"strings"
	"time"

	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	gormModels "kras-kickers/volunteers/internal/models/gorm"
)

// NormalizeStatus maps a requested status onto the status enum. Matching
// ignores case and surrounding whitespace; anything unrecognised becomes Pending.
func NormalizeStatus(raw string) constants.ApplicationStatus {
	raw = strings.TrimSpace(raw)
	for _, s := range constants.ApplicationStatuses {
		if strings.EqualFold(raw, string(s)) {
			return s
		}
	}
	return constants.StatusPending
}

// CanTransition reports whether an application in from may move to to.
//
//	Pending  -> Pending | Assigned | Closed-Completed | Closed-Not Assigned
//	Assigned -> Assigned | Closed-Completed | Closed-Not Assigned
//	Closed-* -> (none)
func CanTransition(from, to constants.ApplicationStatus) bool {
	if from.IsTerminal() {
		return false
	}
	switch from {
	case constants.StatusPending:
		return true
	case constants.StatusAssigned:
		return to != constants.StatusPending
	default:
		// unknown stored values are treated as Pending
		return true
	}
}

// applyTransition mutates app in memory. Every write uses the single timestamp ts.
func applyTransition(app *gormModels.Application, to constants.ApplicationStatus, note string, ts time.Time) error {
	if !CanTransition(app.Status, to) {
		return common.ValidationError(constants.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot move application from %s to %s", app.Status, to))
	}

	app.Status = to
	app.History = app.History.Append(fmt.Sprintf(constants.EventStatusUpdatedFmt, to), ts)

	if note = strings.TrimSpace(note); note != "" {
		app.Notes = app.Notes.Append(note, ts)
	}

	if to == constants.StatusAssigned && app.IsChampionLeader() {
		app.IsChampion = true
	}
	return nil
}

// applyNote appends a standalone note and its history marker.
func applyNote(app *gormModels.Application, note string, ts time.Time) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return common.ValidationError(constants.ErrCodeValidation, constants.MsgNoteEmpty)
	}
	app.Notes = app.Notes.Append(note, ts)
	app.History = app.History.Append(fmt.Sprintf(constants.EventNoteAddedFmt, note), ts)
	return nil
}
