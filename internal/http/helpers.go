package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/plans"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/sites"
	"github.com/goliatone/go-sitebuilder/internal/validation"
)

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func (api *AdminAPI) writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError && api != nil && api.logger != nil {
		api.logger.Error("admin.request.failed", "status", status, "error", err)
	}
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var sectionNotFound *sections.NotFoundError
	if errors.As(err, &sectionNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: sectionNotFound.Error(),
		}
	}

	var siteNotFound *sites.NotFoundError
	if errors.As(err, &siteNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: siteNotFound.Error(),
		}
	}

	var planNotFound *plans.NotFoundError
	if errors.As(err, &planNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: planNotFound.Error(),
		}
	}

	var siteLimit *sites.LimitError
	if errors.As(err, &siteLimit) {
		return http.StatusForbidden, errorResponse{
			Error:   "plan_limit_reached",
			Message: "upgrade your plan to continue: " + siteLimit.Error(),
		}
	}

	var planLimit *plans.LimitError
	if errors.As(err, &planLimit) {
		return http.StatusForbidden, errorResponse{
			Error:   "plan_limit_reached",
			Message: "upgrade your plan to continue: " + planLimit.Error(),
		}
	}

	if errors.Is(err, sites.ErrAddressTaken) || errors.Is(err, plans.ErrSlugTaken) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, validation.ErrSchemaInvalid) ||
		errors.Is(err, validation.ErrSchemaValidation) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}
	}

	if errors.Is(err, sections.ErrTypeUnknown) ||
		errors.Is(err, sections.ErrPageRequired) ||
		errors.Is(err, sections.ErrSectionIDRequired) ||
		errors.Is(err, sections.ErrItemIDRequired) ||
		errors.Is(err, sections.ErrPositionInvalid) ||
		errors.Is(err, sections.ErrEmptySortBatch) ||
		errors.Is(err, sites.ErrOwnerRequired) ||
		errors.Is(err, sites.ErrSiteIDRequired) ||
		errors.Is(err, sites.ErrPageIDRequired) ||
		errors.Is(err, sites.ErrNameRequired) ||
		errors.Is(err, sites.ErrAddressRequired) ||
		errors.Is(err, sites.ErrAddressInvalid) ||
		errors.Is(err, sites.ErrEmptySortBatch) ||
		errors.Is(err, sites.ErrPositionInvalid) ||
		errors.Is(err, sites.ErrPageOutsideScope) ||
		errors.Is(err, plans.ErrPlanIDRequired) ||
		errors.Is(err, plans.ErrNameRequired) ||
		errors.Is(err, plans.ErrSlugInvalid) ||
		errors.Is(err, plans.ErrCodeRequired) ||
		errors.Is(err, plans.ErrCodeUnknown) ||
		errors.Is(err, plans.ErrEmptySortBatch) ||
		errors.Is(err, plans.ErrPositionInvalid) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}
