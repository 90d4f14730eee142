package usecase

import (
	"context"
	"fmt"

	"loyalty-rules/internal/rules/domain/model"
	"loyalty-rules/internal/rules/domain/repository"
)

var transactionStringFields = []string{
	model.FieldShopID,
	model.FieldShopName,
	model.FieldEmployeeID,
	model.FieldUserID,
}

var transactionIntegerFields = []string{
	model.FieldTimestamp,
	model.FieldValueIncrement,
	model.FieldOldAccountValue,
	model.FieldNewAccountValue,
}

// TransactionsPolicy implements the authorization contract for the
// append-only transactions ledger.
type TransactionsPolicy struct{}

// NewTransactionsPolicy creates a new TransactionsPolicy
func NewTransactionsPolicy() *TransactionsPolicy {
	return &TransactionsPolicy{}
}

func (p *TransactionsPolicy) Collection() string {
	return model.CollectionTransactions
}

func (p *TransactionsPolicy) Evaluate(ctx context.Context, req *repository.AccessRequest, roles model.Roles, reader repository.DocumentReader) repository.RuleResult {
	switch req.Operation {
	case repository.OperationGet:
		return p.evaluateGet(ctx, req, roles, reader)
	case repository.OperationCreate:
		return p.evaluateCreate(ctx, req, roles, reader)
	case repository.OperationUpdate, repository.OperationDelete:
		return repository.Deny(repository.CauseInvariantViolation, "transactions are immutable once created")
	default:
		return repository.Deny(repository.CauseRoleDenied, "no rule allows this operation on transactions")
	}
}

// evaluateGet allows the user and the employee recorded on the transaction,
// and admins.
func (p *TransactionsPolicy) evaluateGet(ctx context.Context, req *repository.AccessRequest, roles model.Roles, reader repository.DocumentReader) repository.RuleResult {
	if roles.IsAdmin {
		return repository.Allow()
	}

	txn, err := priorDocument(ctx, req, reader)
	if err != nil {
		return repository.Deny(repository.CauseRoleDenied, "transaction lookup failed")
	}
	if roles.UID != "" {
		if userID, ok := txn.String(model.FieldUserID); ok && userID == roles.UID {
			return repository.Allow()
		}
		if employeeID, ok := txn.String(model.FieldEmployeeID); ok && employeeID == roles.UID {
			return repository.Allow()
		}
	}
	return repository.Deny(repository.CauseRoleDenied, "transactions are readable by their participants and admins")
}

// evaluateCreate admits a new ledger entry only from the employee it names,
// for their own shop, with consistent arithmetic. Every clause must hold;
// there is no partial acceptance.
func (p *TransactionsPolicy) evaluateCreate(ctx context.Context, req *repository.AccessRequest, roles model.Roles, reader repository.DocumentReader) repository.RuleResult {
	if !roles.IsEmployee {
		return repository.Deny(repository.CauseRoleDenied, "only employees may create transactions")
	}
	prior, err := priorDocument(ctx, req, reader)
	if err != nil {
		return repository.Deny(repository.CauseRoleDenied, "transaction lookup failed")
	}
	if prior.Exists() {
		return repository.Deny(repository.CauseInvariantViolation, "transaction already exists")
	}

	for _, field := range transactionStringFields {
		v, present := req.Proposed[field]
		if !present {
			return repository.Deny(repository.CauseTypeMismatch, fmt.Sprintf("transaction field %s is required", field))
		}
		if result := checkSafeString(field, v); !result.Decision.Allowed() {
			return result
		}
	}
	for _, field := range transactionIntegerFields {
		v, present := req.Proposed[field]
		if !present {
			return repository.Deny(repository.CauseTypeMismatch, fmt.Sprintf("transaction field %s is required", field))
		}
		if !model.IsInteger(v) {
			return repository.Deny(repository.CauseTypeMismatch, fmt.Sprintf("transaction field %s must be an integer", field))
		}
	}

	if employeeID, _ := req.Proposed.String(model.FieldEmployeeID); employeeID != roles.UID {
		return repository.Deny(repository.CauseInvariantViolation, "employeeId must be the creating employee")
	}
	if shopID, _ := req.Proposed.String(model.FieldShopID); shopID != roles.ShopID {
		return repository.Deny(repository.CauseInvariantViolation, "shopId must be the creating employee's shop")
	}
	if shopName, _ := req.Proposed.String(model.FieldShopName); shopName != roles.ShopName {
		return repository.Deny(repository.CauseInvariantViolation, "shopName must be the creating employee's shop")
	}

	oldValue, _ := req.Proposed.Int(model.FieldOldAccountValue)
	newValue, _ := req.Proposed.Int(model.FieldNewAccountValue)
	increment, _ := req.Proposed.Int(model.FieldValueIncrement)
	if newValue != oldValue+increment {
		return repository.Deny(repository.CauseInvariantViolation, "newAccountValue must equal oldAccountValue plus valueIncrement")
	}

	return repository.Allow()
}
