package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/dom/unique-nails/internal/api/middleware"
	"github.com/dom/unique-nails/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type successResponse struct {
	Success bool `json:"success"`
}

var ok = successResponse{Success: true}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleError maps err to its HTTP status. Unexpected errors are logged
// under op and reported with the fallback message.
func handleError(w http.ResponseWriter, op string, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, domain.Message(err, "Invalid request"))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, domain.Message(err, "Unauthorized"))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, domain.Message(err, "Not found"))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, domain.Message(err, "Conflict"))
	default:
		log.Printf("ERROR [%s] %v", op, err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// bind decodes the JSON body into v and runs its validate tags. A missing
// required field is reported with requiredMsg.
func bind(r *http.Request, v any, requiredMsg string) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Validation("Invalid request body")
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.Validation("Invalid request body")
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return domain.Validation(requiredMsg)
	case "url", "http_url":
		return domain.Validation(fmt.Sprintf("%s must be a valid URL", fe.Field()))
	case "email":
		return domain.Validation(fmt.Sprintf("%s must be a valid email address", fe.Field()))
	default:
		return domain.Validation(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

// queryInt reads a positive integer query parameter, falling back to def
// when the parameter is absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.Validation(fmt.Sprintf("%s must be a positive integer", key))
	}
	return n, nil
}

// logAdminAction records a destructive admin call under the admin's email.
func logAdminAction(r *http.Request, action, id string) {
	actor := "unknown admin"
	if admin := middleware.GetAdminIdentity(r.Context()); admin != nil {
		actor = admin.Email
	}
	log.Printf("INFO [admin] %s %s %s", actor, action, id)
}
