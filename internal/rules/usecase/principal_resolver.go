package usecase

import (
	"context"

	"loyalty-rules/internal/rules/domain/model"
	"loyalty-rules/internal/rules/domain/repository"
	"loyalty-rules/internal/shared/logger"

	"go.uber.org/zap"
)

// PrincipalResolver derives a capability set from the requester's own user
// document. This is the one auxiliary lookup every evaluation performs.
type PrincipalResolver struct {
	reader repository.DocumentReader
	log    logger.Logger
}

// NewPrincipalResolver creates a new PrincipalResolver
func NewPrincipalResolver(reader repository.DocumentReader, log logger.Logger) *PrincipalResolver {
	return &PrincipalResolver{
		reader: reader,
		log:    log,
	}
}

// Resolve fetches the principal's profile and derives its roles. An
// unauthenticated principal resolves to the empty capability set without a
// lookup. A missing profile is not an error: the uid-only capability set
// still permits first self-writes. A failed lookup is returned as an error
// so the caller fails closed.
func (r *PrincipalResolver) Resolve(ctx context.Context, principal model.Principal) (model.Roles, error) {
	if !principal.Authenticated() {
		return model.Roles{}, nil
	}

	profile, err := r.reader.Get(ctx, model.CollectionUsers, principal.UID)
	if err != nil {
		r.log.Error("Failed to resolve principal profile",
			zap.String("uid", principal.UID),
			zap.Error(err))
		return model.Roles{}, err
	}

	return model.RolesFromProfile(principal.UID, profile), nil
}
