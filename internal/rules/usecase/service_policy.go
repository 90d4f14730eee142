package usecase

import (
	"context"

	"loyalty-rules/internal/rules/domain/model"
	"loyalty-rules/internal/rules/domain/repository"
)

// ServicePolicy denies every operation on the service collection. Admin
// status is carried as the denormalized isAdmin flag on user documents; the
// service.admins singleton is written out of band during bootstrapping and
// is not part of the evaluated surface.
type ServicePolicy struct{}

// NewServicePolicy creates a new ServicePolicy
func NewServicePolicy() *ServicePolicy {
	return &ServicePolicy{}
}

func (p *ServicePolicy) Collection() string {
	return model.CollectionService
}

func (p *ServicePolicy) Evaluate(ctx context.Context, req *repository.AccessRequest, roles model.Roles, reader repository.DocumentReader) repository.RuleResult {
	return repository.Deny(repository.CauseRoleDenied, "the service collection is not exposed to requesters")
}
