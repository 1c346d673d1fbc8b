package handlers

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

// Operation messages reported in the error envelope.
const (
	msgSearch   = "Error searching eBay products"
	msgItem     = "Error getting eBay item details"
	msgCategory = "Error suggesting eBay category"
	msgAnalyze  = "Error analyzing listing URL"
	msgScore    = "Error analyzing listing"
	msgQuota    = "Error getting eBay API quota"
)

// APIError is the JSON error envelope returned by every operation.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"             example:"Search query is required" doc:"Human readable error"`
	Details any    `json:"details,omitempty"                                    doc:"Upstream error body or cause"`
}

// Error implements error.
func (e *APIError) Error() string { return e.Message }

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int { return e.Status }

func init() {
	// Request errors raised by huma itself (unreadable bodies, schema
	// mismatches) share the envelope and count as caller input errors.
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}

		var details any
		if len(errs) > 0 {
			causes := make([]string, 0, len(errs))
			for _, err := range errs {
				if err != nil {
					causes = append(causes, err.Error())
				}
			}
			details = causes
		}

		return &APIError{Status: status, Message: msg, Details: details}
	}
}

// errorFor maps a component error onto the envelope. op names the failed
// operation for upstream and internal failures; caller errors carry their own
// message.
func errorFor(op string, err error) error {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		return &APIError{
			Status:  http.StatusInternalServerError,
			Message: op,
			Details: err.Error(),
		}
	}

	switch derr.Kind {
	case domain.KindValidation, domain.KindFetch:
		return &APIError{Status: derr.HTTPStatus(), Message: derr.Message}
	case domain.KindUpstream:
		return &APIError{Status: derr.HTTPStatus(), Message: op, Details: derr.Details}
	default:
		return &APIError{Status: derr.HTTPStatus(), Message: op, Details: err.Error()}
	}
}
