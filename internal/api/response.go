package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
)

const maxJSONBody = 1 << 20

// decodeJSON binds the request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return common.ValidationError(constants.ErrCodeValidation, "invalid JSON")
	}
	return nil
}

// urlID reads a positive numeric path parameter.
func urlID(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, common.ValidationError(constants.ErrCodeValidation, "invalid "+name)
	}
	return uint(id), nil
}
