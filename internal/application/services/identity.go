package services

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/copymastery/copyengine/internal/domain/models"
)

// Header names injected by the hosting platform in front of this service.
const (
	HeaderUserID   = "X-Whop-User-Id"
	HeaderUsername = "X-Whop-Username"
	HeaderEmail    = "X-Whop-Email"
)

// IdentityResolver extracts the caller identity from request headers. The
// synthetic fallback is explicit configuration handed in at construction, not
// ambient environment sniffing, so the resolver stays pure and testable.
type IdentityResolver struct {
	allowSynthetic bool
	synthetic      models.Identity
	logger         *zap.Logger
}

// NewIdentityResolver creates a resolver. When allowSynthetic is true and
// synthetic carries an ID, requests without identity headers resolve to the
// synthetic identity instead of being rejected. That mode is for local
// development only.
func NewIdentityResolver(allowSynthetic bool, synthetic models.Identity, logger *zap.Logger) *IdentityResolver {
	return &IdentityResolver{
		allowSynthetic: allowSynthetic,
		synthetic:      synthetic,
		logger:         logger,
	}
}

// Resolve returns the caller identity from the platform headers, the
// synthetic fallback when configured, or nil when neither applies.
func (r *IdentityResolver) Resolve(header http.Header) *models.Identity {
	id := header.Get(HeaderUserID)
	if id == "" {
		if r.allowSynthetic && r.synthetic.ID != "" {
			// Loud on purpose: this path must never run silently in production.
			r.logger.Warn("no identity headers present, using synthetic identity",
				zap.String("user_id", r.synthetic.ID),
				zap.String("username", r.synthetic.Username))
			ident := r.synthetic
			return &ident
		}
		return nil
	}

	ident := &models.Identity{
		ID:       id,
		Username: header.Get(HeaderUsername),
		Email:    header.Get(HeaderEmail),
	}
	if ident.Username == "" {
		ident.Username = "unknown"
	}
	return ident
}

// Require resolves the caller identity or fails with models.ErrUnauthorized.
// This is the only gate between anonymous callers and the upstream model.
func (r *IdentityResolver) Require(header http.Header) (*models.Identity, error) {
	ident := r.Resolve(header)
	if ident == nil {
		return nil, models.ErrUnauthorized
	}
	return ident, nil
}
