package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/models/dtos"
)

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("submit: %w", NotFoundError("Opportunity"))
	if KindOf(err) != KindNotFound {
		t.Errorf("Expected not_found, got %s", KindOf(err))
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Error("Expected foreign errors to be internal")
	}
	if IsKind(nil, KindInternal) {
		t.Error("Expected nil error to match no kind")
	}
}

func TestRespondServiceError_StatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ValidationError(constants.ErrCodeValidation, "bad"), http.StatusBadRequest},
		{UnauthorizedError(), http.StatusUnauthorized},
		{NotFoundError("Application"), http.StatusNotFound},
		{ActivationError(), http.StatusBadRequest},
		{TransportError(errors.New("dial tcp")), http.StatusBadGateway},
		{ConflictError(constants.ErrCodeStaleApplication, ""), http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		RespondServiceError(rr, time.Now(), tc.err)
		if rr.Code != tc.code {
			t.Errorf("%v: expected status %d, got %d", tc.err, tc.code, rr.Code)
		}
	}
}

func TestRespondServiceError_UnauthorizedCarriesNoDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondServiceError(rr, time.Now(), UnauthorizedError())

	var resp dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != string(constants.APIStatusError) {
		t.Errorf("Expected error status, got %s", resp.Status)
	}
	if resp.Message != "Not authorized" {
		t.Errorf("Expected generic message, got %q", resp.Message)
	}
	if resp.Data != nil {
		t.Errorf("Expected no data, got %v", resp.Data)
	}
}

func TestRespondServiceError_TransportHidesCause(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondServiceError(rr, time.Now(), TransportError(errors.New("smtp 535 auth failed")))

	var resp dtos.APIResponse
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Message != constants.GetErrorMessage(constants.ErrCodeTransport) {
		t.Errorf("Expected transport message, got %q", resp.Message)
	}
}

func TestEmailInDomain(t *testing.T) {
	if !EmailInDomain("Lead@Kras.ORG", "kras.org") {
		t.Error("Expected case-insensitive domain match")
	}
	if !EmailInDomain("lead@kras.org", "@kras.org") {
		t.Error("Expected leading @ to be ignored")
	}
	if EmailInDomain("lead@notkras.org", "kras.org") {
		t.Error("Expected suffix lookalike to be rejected")
	}
	if EmailInDomain("kras.org", "kras.org") {
		t.Error("Expected address without local part to be rejected")
	}
}

func TestValidateRequest_FieldErrors(t *testing.T) {
	err := ValidateRequest(dtos.VerifyEmailReq{Email: "not-an-address"})
	if !IsKind(err, KindValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatal("Expected ServiceError")
	}
	if _, ok := se.Fields["email"]; !ok {
		t.Errorf("Expected email field error, got %v", se.Fields)
	}

	if err := ValidateRequest(dtos.VerifyEmailReq{Email: "ada@example.org"}); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}
}
