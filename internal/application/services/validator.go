package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/copymastery/copyengine/internal/domain/models"
)

// User-facing validation messages. The prompt message is part of the wire
// contract and rendered verbatim by the frontend.
const (
	msgPromptTooShort = "Prompt must be at least 10 characters"
	msgUnknownModel   = "Model must be one of EugeneSchwartzZPRO, 5MVSLScript"
	msgBadWordCount   = "Word count must be a positive number"
	msgMalformedBody  = "Request body must be valid JSON"
)

// RequestValidator decodes and validates generation requests. Safe for
// concurrent use; the underlying validator caches struct metadata.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds the validator with JSON tag names so issue paths
// match the wire field names rather than Go identifiers.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Parse decodes rawBody and validates the result against the request schema.
// On failure it returns a *models.ValidationError listing every field issue;
// unknown JSON fields are ignored. Parsing the same body twice yields
// identical results.
func (rv *RequestValidator) Parse(rawBody []byte) (*models.GenerateRequest, error) {
	var req models.GenerateRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		return nil, &models.ValidationError{Issues: decodeIssues(err)}
	}

	if err := rv.validate.Struct(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return nil, &models.ValidationError{Issues: fieldIssues(fieldErrs)}
		}
		return nil, &models.ValidationError{Issues: []models.Issue{{Message: err.Error()}}}
	}

	return &req, nil
}

// decodeIssues maps JSON decode failures onto the issue list shape. Type
// mismatches keep their field path; anything else is a single generic issue.
func decodeIssues(err error) []models.Issue {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []models.Issue{{
			Path:    typeErr.Field,
			Message: fmt.Sprintf("Expected %s, received %s", typeErr.Type.Kind(), typeErr.Value),
		}}
	}
	return []models.Issue{{Message: msgMalformedBody}}
}

func fieldIssues(fieldErrs validator.ValidationErrors) []models.Issue {
	issues := make([]models.Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, models.Issue{
			Path:    issuePath(fe),
			Message: issueMessage(fe),
		})
	}
	return issues
}

// issuePath turns "GenerateRequest.context.wordCount" into "context.wordCount".
func issuePath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func issueMessage(fe validator.FieldError) string {
	switch {
	case fe.Field() == "prompt":
		return msgPromptTooShort
	case fe.Field() == "model":
		return msgUnknownModel
	case fe.Field() == "wordCount":
		return msgBadWordCount
	default:
		return fmt.Sprintf("Invalid value for %s", issuePath(fe))
	}
}
