package repository

import (
	"context"
	"time"

	"loyalty-rules/internal/rules/domain/model"
)

// OperationType defines the type of operation being authorized.
type OperationType string

const (
	OperationGet    OperationType = "get"
	OperationList   OperationType = "list"
	OperationCreate OperationType = "create"
	OperationUpdate OperationType = "update"
	OperationDelete OperationType = "delete"
)

// ValidOperation reports whether the operation is one the engine evaluates.
func ValidOperation(op OperationType) bool {
	switch op {
	case OperationGet, OperationList, OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// IsWrite reports whether the operation proposes new document state.
func (op OperationType) IsWrite() bool {
	return op == OperationCreate || op == OperationUpdate
}

// Decision is the only externally visible outcome of an evaluation.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionDeny  Decision = "deny"
)

// Allowed reports whether the decision grants the operation.
func (d Decision) Allowed() bool {
	return d == DecisionAllow
}

// DenialCause classifies a denial for internal logging and tests. It never
// crosses the engine boundary.
type DenialCause string

const (
	CauseNone               DenialCause = ""
	CauseRoleDenied         DenialCause = "role_denied"
	CauseTypeMismatch       DenialCause = "type_mismatch"
	CauseInvariantViolation DenialCause = "invariant_violation"
)

// AccessRequest carries everything a single evaluation may consume.
type AccessRequest struct {
	Principal  model.Principal `json:"principal"`
	Operation  OperationType   `json:"operation"`
	Collection string          `json:"collection"`
	DocumentID string          `json:"documentId,omitempty"`
	// Prior is the stored document state before the operation; nil when the
	// document does not exist.
	Prior model.Document `json:"prior,omitempty"`
	// Proposed is the merge payload of a write; nil for reads and deletes.
	Proposed model.Document `json:"proposed,omitempty"`
	// Query carries the declared filter clauses of a list request.
	Query *model.Query `json:"query,omitempty"`
}

// RuleResult is the internal outcome of evaluating one request.
type RuleResult struct {
	Decision Decision    `json:"decision"`
	Cause    DenialCause `json:"-"`
	Reason   string      `json:"-"`
}

// Allow is the affirmative rule result.
func Allow() RuleResult {
	return RuleResult{Decision: DecisionAllow}
}

// Deny builds a denial carrying its internal cause.
func Deny(cause DenialCause, reason string) RuleResult {
	return RuleResult{Decision: DecisionDeny, Cause: cause, Reason: reason}
}

// DocumentReader is the engine's only view of the document store: bounded
// synchronous point lookups. A missing document yields (nil, nil); any error
// must be treated as a denial by callers, never as an allowance.
type DocumentReader interface {
	Get(ctx context.Context, collection, documentID string) (model.Document, error)
}

// CollectionPolicy is the per-collection authorization contract. Evaluate
// receives the resolved capability set and may issue further point lookups
// through the reader; it must fail closed on any lookup error.
type CollectionPolicy interface {
	Collection() string
	Evaluate(ctx context.Context, req *AccessRequest, roles model.Roles, reader DocumentReader) RuleResult
}

// DecisionEvent is the audit record emitted for every evaluation.
type DecisionEvent struct {
	ID         string        `json:"id"`
	UID        string        `json:"uid"`
	Collection string        `json:"collection"`
	DocumentID string        `json:"documentId,omitempty"`
	Operation  OperationType `json:"operation"`
	Decision   Decision      `json:"decision"`
	Cause      DenialCause   `json:"cause,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// DecisionLogger records decision events for offline audit. Implementations
// must never influence the decision itself; recording failures are logged
// and swallowed by the caller.
type DecisionLogger interface {
	Record(ctx context.Context, event *DecisionEvent) error
}
