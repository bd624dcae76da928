package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gazette/app/errs"
	"gazette/app/repositories"
	"gazette/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// sendRaw writes an already encoded document.
func sendRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// SendError writes err using the HTTPError shape.
func SendError(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := toHTTPError(err)
	if httpErr.Status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	sendJSON(w, httpErr.Status, httpErr)
}

func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, services.ErrInvalid):
		return errs.ValidationError(err)
	case errors.Is(err, repositories.ErrNotFound):
		return errs.NewNotFoundError(err.Error())
	default:
		return errs.NewInternalServerError()
	}
}

// pathID reads a positive integer mux variable.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, errs.NewBadRequestError("Invalid " + name)
	}
	return id, nil
}

// queryInt returns the positive integer query parameter or def.
func queryInt(r *http.Request, name string, def int) int {
	if s := r.URL.Query().Get(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.NewBadRequestError("Invalid JSON: " + err.Error())
	}
	return nil
}
