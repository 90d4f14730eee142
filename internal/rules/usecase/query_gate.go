package usecase

import (
	"fmt"

	"loyalty-rules/internal/rules/domain/model"
	"loyalty-rules/internal/rules/domain/repository"
)

// QueryFilterGate authorizes list requests from their declared filter
// clauses alone, before any document data could be returned. Query results
// are the leak vector being prevented, so the gate runs ahead of everything
// else a list request might touch.
type QueryFilterGate struct{}

// NewQueryFilterGate creates a new QueryFilterGate
func NewQueryFilterGate() *QueryFilterGate {
	return &QueryFilterGate{}
}

// Evaluate reduces a list request to allow/deny. Admins may list any
// collection unfiltered. For everyone else only the transactions collection
// is listable, and only through a conjunction of equality filters each
// pinning an access-granting field to a value derived from the principal's
// own identity.
func (g *QueryFilterGate) Evaluate(req *repository.AccessRequest, roles model.Roles) repository.RuleResult {
	if req.Collection == model.CollectionService {
		return repository.Deny(repository.CauseRoleDenied, "the service collection is not exposed to requesters")
	}
	if roles.IsAdmin {
		return repository.Allow()
	}

	switch req.Collection {
	case model.CollectionTransactions:
		return g.evaluateTransactionFilters(req, roles)
	case model.CollectionUsers, model.CollectionShops, model.CollectionLogs:
		return repository.Deny(repository.CauseRoleDenied, fmt.Sprintf("listing %s requires admin", req.Collection))
	default:
		return repository.Deny(repository.CauseRoleDenied, "no rule allows listing this collection")
	}
}

func (g *QueryFilterGate) evaluateTransactionFilters(req *repository.AccessRequest, roles model.Roles) repository.RuleResult {
	if req.Query == nil || len(req.Query.Filters) == 0 {
		return repository.Deny(repository.CauseRoleDenied, "unfiltered transaction listing requires admin")
	}

	for _, filter := range req.Query.Filters {
		if !filter.IsEquality() {
			return repository.Deny(repository.CauseInvariantViolation, fmt.Sprintf("operator %s is not allowed in a non-admin query", filter.Operator))
		}

		value, ok := filter.Value.(string)
		if !ok {
			return repository.Deny(repository.CauseTypeMismatch, fmt.Sprintf("filter on %s must compare against a string", filter.Field))
		}

		switch filter.Field {
		case model.FieldUserID:
			if value != roles.UID {
				return repository.Deny(repository.CauseRoleDenied, "users may only query their own transactions")
			}
		case model.FieldEmployeeID:
			if !roles.IsEmployee || value != roles.UID {
				return repository.Deny(repository.CauseRoleDenied, "employees may only query their own transactions")
			}
		case model.FieldShopID:
			if !roles.IsShopOwner || value != roles.ShopID {
				return repository.Deny(repository.CauseRoleDenied, "shop owners may only query their own shop's transactions")
			}
		default:
			return repository.Deny(repository.CauseRoleDenied, fmt.Sprintf("field %s is not filterable by non-admins", filter.Field))
		}
	}

	return repository.Allow()
}
