package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jonathan/cardcopy/internal/copywriting"
	"github.com/jonathan/cardcopy/internal/generation"
	"github.com/jonathan/cardcopy/internal/rendering"
	"github.com/jonathan/cardcopy/internal/schemas"
	"github.com/jonathan/cardcopy/internal/server/middleware"
	"github.com/jonathan/cardcopy/internal/types"
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.HealthResponse{
		Status:           "ok",
		Service:          serviceName,
		Model:            s.generator.Model(),
		APIKeyConfigured: s.generator.HasClient(),
	})
}

// handleGenerate produces copy for one card
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := s.decodeGenerateRequest(w, r)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("rejected generate request")
		s.errorResponse(w, r, err)
		return
	}

	result := s.generate(ctx, req.FieldValues, types.ParseStyle(req.StyleSelected))
	content := result.Content

	if req.Format == types.FormatHTML {
		withHTML, err := rendering.WithHTML(content)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("html rendering failed, serving text only")
		} else {
			content = withHTML
		}
	}

	event := zerolog.Ctx(ctx).Info().
		Str("style", string(types.ParseStyle(req.StyleSelected))).
		Strs("fields", req.FieldValues.Names()).
		Int("score", result.Score).
		Str("outcome", string(result.Outcome)).
		Bool("fallback", content.Fallback)
	if identity, err := middleware.GetIdentity(r); err == nil {
		event = event.Str("caller_id", identity.GetUserID()).Str("role", identity.GetRole())
	}
	event.Msg("generated card copy")

	s.jsonResponse(w, http.StatusOK, types.GenerateResponse{
		Success:          true,
		GeneratedContent: &content,
		Model:            s.generator.Model(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		RequestID:        RequestID(ctx),
	})
}

// validateRequestSchema checks a generate request body against its JSON Schema.
var validateRequestSchema = schemas.ValidateGenerateRequest

// decodeGenerateRequest reads, checks and decodes the generate request body.
func (s *Server) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (*types.GenerateRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Message: "Invalid request body"}
	}

	if noData(body) {
		return nil, &ErrValidation{Message: "No data provided"}
	}

	if err := validateRequestSchema(body); err != nil {
		var schemaErr *schemas.ValidationError
		var docErr *schemas.DocumentError
		switch {
		case errors.As(err, &schemaErr):
			return nil, &ErrValidation{Message: "invalid request: " + schemaErr.First()}
		case errors.As(err, &docErr):
			return nil, &ErrValidation{Message: "Invalid request body"}
		default:
			// field checks below still run
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("request schema unavailable, skipping schema check")
		}
	}

	var req types.GenerateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &ErrValidation{Message: "Invalid request body"}
	}

	if err := req.Validate(); err != nil {
		return nil, requestValidationError(err)
	}

	return &req, nil
}

// requestValidationError converts validator errors into an ErrValidation.
func requestValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Message: "Invalid request body"}
	}

	first := fieldErrs[0]
	if first.Field() == "field_values" {
		return &ErrValidation{Field: first.Field(), Message: "field_values is required"}
	}
	return &ErrValidation{
		Field:   first.Field(),
		Message: fmt.Sprintf("invalid request: %s: failed %s", first.Field(), first.Tag()),
	}
}

// noData reports whether body carries nothing to work with: no bytes, or a
// JSON null, false, zero, empty string, empty array or empty object.
func noData(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return true
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return false
	}

	switch compact.String() {
	case "null", "false", "0", `""`, "[]", "{}":
		return true
	}
	return false
}

// generate runs the generator, answering with generic fallback copy if it panics.
func (s *Server) generate(ctx context.Context, fields types.FieldSet, style types.Style) (result generation.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			zerolog.Ctx(ctx).Error().
				Interface("panic", rec).
				Msg("generation panicked, serving fallback content")
			result = generation.Result{
				Content: copywriting.Fallback(types.FieldSet{}, style),
				Outcome: generation.StateModelFailed,
				Err:     fmt.Errorf("generation panicked: %v", rec),
			}
		}
	}()

	return s.generator.Generate(ctx, fields, style)
}
