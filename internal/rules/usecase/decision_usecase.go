package usecase

import (
	"context"
	"time"

	"loyalty-rules/internal/rules/domain/model"
	"loyalty-rules/internal/rules/domain/repository"
	"loyalty-rules/internal/shared/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DecisionUseCase is the single decision point: it resolves the principal,
// gates list queries, dispatches to the target collection policy, and
// reduces everything to Allow or Deny. It holds no state of its own; each
// evaluation is a pure function of the request plus point-in-time lookups.
type DecisionUseCase struct {
	resolver    *PrincipalResolver
	gate        *QueryFilterGate
	policies    map[string]repository.CollectionPolicy
	reader      repository.DocumentReader
	decisionLog repository.DecisionLogger
	log         logger.Logger
}

// NewDecisionUseCase wires the resolver, the query gate and the five
// collection policies around the given lookup capability. The decision
// logger may be nil; decisions are then only logged locally.
func NewDecisionUseCase(reader repository.DocumentReader, decisionLog repository.DecisionLogger, log logger.Logger) *DecisionUseCase {
	policies := map[string]repository.CollectionPolicy{}
	for _, p := range []repository.CollectionPolicy{
		NewUsersPolicy(),
		NewShopsPolicy(),
		NewTransactionsPolicy(),
		NewLogsPolicy(),
		NewServicePolicy(),
	} {
		policies[p.Collection()] = p
	}

	return &DecisionUseCase{
		resolver:    NewPrincipalResolver(reader, log),
		gate:        NewQueryFilterGate(),
		policies:    policies,
		reader:      reader,
		decisionLog: decisionLog,
		log:         log,
	}
}

// Authorize evaluates one operation and returns the only externally visible
// outcome. Denial causes stay internal.
func (uc *DecisionUseCase) Authorize(ctx context.Context, req *repository.AccessRequest) repository.Decision {
	result := uc.Evaluate(ctx, req)
	uc.record(ctx, req, result)
	return result.Decision
}

// Evaluate runs the full evaluation and returns the internal rule result.
// Exposed for the engine's own tests and audit plumbing.
func (uc *DecisionUseCase) Evaluate(ctx context.Context, req *repository.AccessRequest) repository.RuleResult {
	if req == nil {
		return repository.Deny(repository.CauseInvariantViolation, "missing request")
	}
	if !repository.ValidOperation(req.Operation) {
		return repository.Deny(repository.CauseInvariantViolation, "unknown operation")
	}
	if !model.KnownCollection(req.Collection) {
		return repository.Deny(repository.CauseInvariantViolation, "unknown collection")
	}
	if req.Operation != repository.OperationList && req.DocumentID == "" {
		return repository.Deny(repository.CauseInvariantViolation, "missing document id")
	}

	// No anonymous capability exists anywhere in the rule set.
	if !req.Principal.Authenticated() {
		return repository.Deny(repository.CauseRoleDenied, "unauthenticated")
	}

	roles, err := uc.resolver.Resolve(ctx, req.Principal)
	if err != nil {
		// A failed auxiliary lookup is never "allowed by default".
		return repository.Deny(repository.CauseRoleDenied, "principal resolution failed")
	}

	if req.Operation.IsWrite() {
		if req.Proposed == nil {
			return repository.Deny(repository.CauseInvariantViolation, "write without proposed state")
		}
		if unknown := model.UnknownFields(req.Collection, req.Proposed); len(unknown) > 0 {
			return repository.Deny(repository.CauseTypeMismatch, "proposed write carries fields outside the collection schema")
		}
	}

	if req.Operation == repository.OperationList {
		return uc.gate.Evaluate(req, roles)
	}

	policy, ok := uc.policies[req.Collection]
	if !ok {
		return repository.Deny(repository.CauseRoleDenied, "no policy for collection")
	}
	return policy.Evaluate(ctx, req, roles, uc.reader)
}

// record logs the decision and appends it to the audit stream. Audit
// failures are swallowed; they must never influence the decision.
func (uc *DecisionUseCase) record(ctx context.Context, req *repository.AccessRequest, result repository.RuleResult) {
	uid := "anonymous"
	collection, documentID := "", ""
	var operation repository.OperationType
	if req != nil {
		if req.Principal.Authenticated() {
			uid = req.Principal.UID
		}
		collection = req.Collection
		documentID = req.DocumentID
		operation = req.Operation
	}

	if result.Decision.Allowed() {
		uc.log.Info("Access granted",
			zap.String("uid", uid),
			zap.String("collection", collection),
			zap.String("documentID", documentID),
			zap.String("operation", string(operation)))
	} else {
		uc.log.Warn("Access denied",
			zap.String("uid", uid),
			zap.String("collection", collection),
			zap.String("documentID", documentID),
			zap.String("operation", string(operation)),
			zap.String("cause", string(result.Cause)),
			zap.String("reason", result.Reason))
	}

	if uc.decisionLog == nil {
		return
	}
	event := &repository.DecisionEvent{
		ID:         uuid.NewString(),
		UID:        uid,
		Collection: collection,
		DocumentID: documentID,
		Operation:  operation,
		Decision:   result.Decision,
		Cause:      result.Cause,
		Reason:     result.Reason,
		Timestamp:  time.Now().UTC(),
	}
	if err := uc.decisionLog.Record(ctx, event); err != nil {
		uc.log.Error("Failed to record decision event",
			zap.String("decisionID", event.ID),
			zap.Error(err))
	}
}
