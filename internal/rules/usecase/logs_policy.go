package usecase

import (
	"context"

	"loyalty-rules/internal/rules/domain/model"
	"loyalty-rules/internal/rules/domain/repository"
)

// LogsPolicy implements the authorization contract for the append-only audit
// trail. Entries come only from trusted roles, so creates carry no deeper
// field validation beyond the closed schema and the action tag.
type LogsPolicy struct{}

// NewLogsPolicy creates a new LogsPolicy
func NewLogsPolicy() *LogsPolicy {
	return &LogsPolicy{}
}

func (p *LogsPolicy) Collection() string {
	return model.CollectionLogs
}

func (p *LogsPolicy) Evaluate(ctx context.Context, req *repository.AccessRequest, roles model.Roles, reader repository.DocumentReader) repository.RuleResult {
	switch req.Operation {
	case repository.OperationGet:
		if roles.IsAdmin {
			return repository.Allow()
		}
		return repository.Deny(repository.CauseRoleDenied, "audit logs are readable by admins only")
	case repository.OperationCreate:
		return p.evaluateCreate(req, roles)
	case repository.OperationUpdate, repository.OperationDelete:
		return repository.Deny(repository.CauseInvariantViolation, "audit logs are immutable once created")
	default:
		return repository.Deny(repository.CauseRoleDenied, "no rule allows this operation on logs")
	}
}

func (p *LogsPolicy) evaluateCreate(req *repository.AccessRequest, roles model.Roles) repository.RuleResult {
	if !roles.IsEmployee && !roles.IsAdmin {
		return repository.Deny(repository.CauseRoleDenied, "only employees and admins may append audit logs")
	}
	if action, present := req.Proposed[model.FieldAction]; present {
		s, ok := action.(string)
		if !ok {
			return repository.Deny(repository.CauseTypeMismatch, "action must be a string")
		}
		if !model.ValidLogAction(s) {
			return repository.Deny(repository.CauseInvariantViolation, "unknown log action")
		}
	}
	return repository.Allow()
}
