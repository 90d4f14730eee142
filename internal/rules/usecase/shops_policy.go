package usecase

import (
	"context"
	"fmt"

	"loyalty-rules/internal/rules/domain/model"
	"loyalty-rules/internal/rules/domain/repository"
)

// shopsImmutableFields are fixed at creation; any merge write touching them
// is denied regardless of requester role.
var shopsImmutableFields = []string{
	model.FieldName,
	model.FieldKey,
	model.FieldOwnerID,
	model.FieldJoined,
}

// ShopsPolicy implements the authorization contract for the shops collection.
type ShopsPolicy struct{}

// NewShopsPolicy creates a new ShopsPolicy
func NewShopsPolicy() *ShopsPolicy {
	return &ShopsPolicy{}
}

func (p *ShopsPolicy) Collection() string {
	return model.CollectionShops
}

func (p *ShopsPolicy) Evaluate(ctx context.Context, req *repository.AccessRequest, roles model.Roles, reader repository.DocumentReader) repository.RuleResult {
	switch req.Operation {
	case repository.OperationGet:
		return p.evaluateGet(ctx, req, roles, reader)
	case repository.OperationCreate, repository.OperationDelete:
		// Reduced validation rigor on purpose: admins are trusted operators.
		if roles.IsAdmin {
			return repository.Allow()
		}
		return repository.Deny(repository.CauseRoleDenied, "only admins may create or delete shops")
	case repository.OperationUpdate:
		return p.evaluateUpdate(ctx, req, roles, reader)
	default:
		return repository.Deny(repository.CauseRoleDenied, "no rule allows this operation on shops")
	}
}

// evaluateGet allows the stored owner of this shop and admins. Employees
// without shop-owner rights are denied direct shop reads.
func (p *ShopsPolicy) evaluateGet(ctx context.Context, req *repository.AccessRequest, roles model.Roles, reader repository.DocumentReader) repository.RuleResult {
	if roles.IsAdmin {
		return repository.Allow()
	}

	shop, err := priorDocument(ctx, req, reader)
	if err != nil {
		return repository.Deny(repository.CauseRoleDenied, "shop lookup failed")
	}
	if ownerID, ok := shop.String(model.FieldOwnerID); ok && ownerID == roles.UID && roles.UID != "" {
		return repository.Allow()
	}
	return repository.Deny(repository.CauseRoleDenied, "shop documents are readable by their owner and admins")
}

// evaluateUpdate handles merge-style partial updates. Admin merge writes are
// denied outright here; admins use the full-replace path instead. This
// asymmetry is deliberate and must not be smoothed over.
func (p *ShopsPolicy) evaluateUpdate(ctx context.Context, req *repository.AccessRequest, roles model.Roles, reader repository.DocumentReader) repository.RuleResult {
	if roles.IsAdmin {
		return repository.Deny(repository.CauseRoleDenied, "admin merge writes on shops use the full-replace path")
	}

	shop, err := priorDocument(ctx, req, reader)
	if err != nil || !shop.Exists() {
		return repository.Deny(repository.CauseRoleDenied, "shop lookup failed")
	}

	changes := model.Diff(shop, req.Proposed)
	if len(changes) == 0 {
		return repository.Deny(repository.CauseInvariantViolation, "empty merge write on a shop")
	}

	for _, change := range changes {
		switch change.Field {
		case model.FieldEmployeeIDs:
			if result := p.checkEmployeeIDs(shop, change, roles); !result.Decision.Allowed() {
				return result
			}
		default:
			if model.ContainsID(shopsImmutableFields, change.Field) {
				return repository.Deny(repository.CauseInvariantViolation, fmt.Sprintf("shop field %s is immutable after creation", change.Field))
			}
			return repository.Deny(repository.CauseTypeMismatch, fmt.Sprintf("field %s is not part of the shop schema", change.Field))
		}
	}

	return repository.Allow()
}

// checkEmployeeIDs enforces the roster invariants: only the shop's owner may
// change the roster, exactly one id is added or removed per write, and the
// owner can never be removed.
func (p *ShopsPolicy) checkEmployeeIDs(shop model.Document, change model.FieldChange, roles model.Roles) repository.RuleResult {
	ownerID, _ := shop.String(model.FieldOwnerID)
	if roles.UID == "" || roles.UID != ownerID {
		return repository.Deny(repository.CauseRoleDenied, "only the shop owner may change the employee roster")
	}

	if !model.IsStringSlice(change.Proposed) {
		return repository.Deny(repository.CauseTypeMismatch, "employeeIds must be a list of id strings")
	}
	prior, ok := shop.StringSlice(model.FieldEmployeeIDs)
	if !ok {
		return repository.Deny(repository.CauseTypeMismatch, "stored employeeIds is malformed")
	}
	proposed, _ := model.Document{model.FieldEmployeeIDs: change.Proposed}.StringSlice(model.FieldEmployeeIDs)

	if delta := model.SymmetricDifference(prior, proposed); len(delta) != 1 {
		return repository.Deny(repository.CauseInvariantViolation, fmt.Sprintf("employee roster must change by exactly one id, got %d", len(delta)))
	}
	if !model.ContainsID(proposed, ownerID) {
		return repository.Deny(repository.CauseInvariantViolation, "the shop owner cannot be removed from the roster")
	}

	return repository.Allow()
}
