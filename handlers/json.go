package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"employee-service/middleware"
)

type JSONResponse map[string]interface{}

// decodeJSON treats an empty body as an empty object.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return middleware.NewAppError(http.StatusBadRequest, "Invalid request payload", err)
	}
	return nil
}
