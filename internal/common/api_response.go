package common

import (
	"encoding/json"
	"net/http"
	"time"

	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/logging"
	"kras-kickers/volunteers/internal/models/dtos"
)

// RespondSuccess sends a standardized JSON success response.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusOk),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
	}

	writeJSON(w, code, response)
}

// RespondError sends a standardized JSON error response.
func RespondError(w http.ResponseWriter, initTime time.Time, err error, message string, statusCode ...int) {
	code := http.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	msg := message
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      msg,
		ResponseTime: GetResponseTime(initTime),
	}

	writeJSON(w, code, response)
}

// RespondServiceError maps a service failure onto a status code and a safe message.
// Internal and transport causes are logged, never echoed.
func RespondServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	var se *ServiceError
	if !asServiceError(err, &se) {
		logging.Error("Unhandled error", "error", err.Error())
		RespondError(w, initTime, nil, constants.GetErrorMessage(constants.ErrCodeInternal), http.StatusInternalServerError)
		return
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      se.Message,
		ResponseTime: GetResponseTime(initTime),
	}
	if se.Code != "" || len(se.Fields) > 0 {
		response.Data = dtos.ErrorDetail{Code: se.Code, Fields: se.Fields}
	}

	switch se.Kind {
	case KindTransport, KindInternal:
		if se.Err != nil {
			logging.Error("Service failure", "kind", se.Kind.String(), "code", se.Code, "error", se.Err.Error())
		}
	case KindUnauthorized:
		// no detail on authorization failures
		response.Data = nil
	}

	writeJSON(w, HTTPStatusForKind(se.Kind), response)
}

// HTTPStatusForKind returns the status code reported for an error kind.
func HTTPStatusForKind(kind ErrorKind) int {
	switch kind {
	case KindValidation, KindActivation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON marshals data and writes it to the HTTP response.
func writeJSON(w http.ResponseWriter, code int, body dtos.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}
