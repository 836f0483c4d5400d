package services

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/copymastery/copyengine/internal/domain/models"
	domain "github.com/copymastery/copyengine/internal/domain/services"
)

// Pipeline runs a generation request end to end: resolve identity, validate,
// assemble the message list, make one upstream call, shape the envelope.
// Failures short-circuit in that order, so the upstream is never reached
// unless the request is both authorized and well formed.
type Pipeline struct {
	identity  *IdentityResolver
	validator *RequestValidator
	provider  domain.CompletionProvider
	logger    *zap.Logger
	now       func() time.Time
}

// NewPipeline wires the pipeline stages together.
func NewPipeline(identity *IdentityResolver, validator *RequestValidator, provider domain.CompletionProvider, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		identity:  identity,
		validator: validator,
		provider:  provider,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate executes the pipeline for one request and returns the success
// envelope. Error values carry the failure kind for the HTTP layer:
// models.ErrUnauthorized, *models.ValidationError, or *models.GenerationError.
func (p *Pipeline) Generate(ctx context.Context, header http.Header, rawBody []byte) (*models.GenerateResponse, error) {
	ident, err := p.identity.Require(header)
	if err != nil {
		return nil, err
	}

	req, err := p.validator.Parse(rawBody)
	if err != nil {
		return nil, err
	}

	output, err := p.provider.Complete(ctx, req.Model, BuildMessages(req))
	if err != nil {
		return nil, err
	}

	p.logger.Info("copy generated",
		zap.String("user_id", ident.ID),
		zap.String("model", req.Model),
		zap.Int("output_chars", len(output)))

	return &models.GenerateResponse{
		Success: true,
		Output:  output,
		Metadata: models.Metadata{
			UserID:    ident.ID,
			Model:     req.Model,
			Timestamp: p.now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// StreamGenerate is the streaming variant of Generate: same gating and
// message assembly, but output is delivered through sink fragment by fragment
// instead of a buffered envelope. No HTTP route consumes it today.
func (p *Pipeline) StreamGenerate(ctx context.Context, header http.Header, rawBody []byte, sink func(fragment string)) error {
	ident, err := p.identity.Require(header)
	if err != nil {
		return err
	}

	req, err := p.validator.Parse(rawBody)
	if err != nil {
		return err
	}

	p.logger.Info("streaming copy generation",
		zap.String("user_id", ident.ID),
		zap.String("model", req.Model))

	return p.provider.StreamCompletion(ctx, req.Model, BuildMessages(req), sink)
}
