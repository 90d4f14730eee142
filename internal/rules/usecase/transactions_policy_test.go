package usecase

import (
	"context"
	"testing"

	"loyalty-rules/internal/rules/domain/model"
	"loyalty-rules/internal/rules/domain/repository"
	"loyalty-rules/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionsGet(t *testing.T) {
	uc := newTestDecisionPoint()
	ctx := context.Background()

	t.Run("recorded user reads their transaction", func(t *testing.T) {
		assert.Equal(t, repository.DecisionAllow, uc.Authorize(ctx, getRequest(seedDefaultUser, model.CollectionTransactions, "transaction1")))
	})
	t.Run("recorded employee reads their transaction", func(t *testing.T) {
		assert.Equal(t, repository.DecisionAllow, uc.Authorize(ctx, getRequest(seedEmployeeUser, model.CollectionTransactions, "transaction1")))
	})
	t.Run("admin reads any transaction", func(t *testing.T) {
		assert.Equal(t, repository.DecisionAllow, uc.Authorize(ctx, getRequest(seedAdminUser, model.CollectionTransactions, "transaction1")))
	})
	t.Run("uninvolved user is denied", func(t *testing.T) {
		result := uc.Evaluate(ctx, getRequest(seedDefaultUser2, model.CollectionTransactions, "transaction1"))
		assert.Equal(t, repository.DecisionDeny, result.Decision)
		assert.Equal(t, repository.CauseRoleDenied, result.Cause)
	})
	t.Run("uninvolved shop owner is denied", func(t *testing.T) {
		reader := NewSeededReader()
		reader.Docs[model.CollectionTransactions]["transaction2"] = validTransactionDoc(map[string]interface{}{
			"employeeId": "someOtherEmployee",
			"userId":     seedDefaultUser2,
		})
		uc := NewDecisionUseCase(reader, nil, logger.NewTestLogger())
		assert.Equal(t, repository.DecisionDeny, uc.Authorize(ctx, getRequest(seedShopOwner, model.CollectionTransactions, "transaction2")))
	})
}

func TestTransactionsCreate(t *testing.T) {
	uc := newTestDecisionPoint()
	ctx := context.Background()
	create := func(uid string, doc model.Document) repository.RuleResult {
		return uc.Evaluate(ctx, createRequest(uid, model.CollectionTransactions, "transaction2", doc))
	}

	t.Run("employee creates a consistent entry", func(t *testing.T) {
		assert.Equal(t, repository.DecisionAllow, create(seedEmployeeUser, validTransactionDoc(nil)).Decision)
	})
	t.Run("non-employees are denied", func(t *testing.T) {
		for _, uid := range []string{seedDefaultUser, seedDefaultUser2} {
			result := create(uid, validTransactionDoc(map[string]interface{}{"employeeId": uid}))
			assert.Equal(t, repository.DecisionDeny, result.Decision)
			assert.Equal(t, repository.CauseRoleDenied, result.Cause)
		}
	})
	t.Run("existing id is denied", func(t *testing.T) {
		result := uc.Evaluate(ctx, createRequest(seedEmployeeUser, model.CollectionTransactions, "transaction1", validTransactionDoc(nil)))
		assert.Equal(t, repository.DecisionDeny, result.Decision)
		assert.Equal(t, repository.CauseInvariantViolation, result.Cause)
	})
	t.Run("employeeId must match the requester", func(t *testing.T) {
		result := create(seedEmployeeUser, validTransactionDoc(map[string]interface{}{"employeeId": "someOtherEmployee"}))
		assert.Equal(t, repository.DecisionDeny, result.Decision)
		assert.Equal(t, repository.CauseInvariantViolation, result.Cause)
	})
	t.Run("foreign shop id is denied", func(t *testing.T) {
		result := create(seedEmployeeUser, validTransactionDoc(map[string]interface{}{"shopId": "shop2"}))
		assert.Equal(t, repository.DecisionDeny, result.Decision)
	})
	t.Run("foreign shop name is denied", func(t *testing.T) {
		result := create(seedEmployeeUser, validTransactionDoc(map[string]interface{}{"shopName": "Some Other Shop"}))
		assert.Equal(t, repository.DecisionDeny, result.Decision)
	})
	t.Run("arithmetic must balance", func(t *testing.T) {
		assert.Equal(t, repository.DecisionDeny, create(seedEmployeeUser, validTransactionDoc(map[string]interface{}{"newAccountValue": 11})).Decision)
		assert.Equal(t, repository.DecisionDeny, create(seedEmployeeUser, validTransactionDoc(map[string]interface{}{"oldAccountValue": 5})).Decision)
		assert.Equal(t, repository.DecisionAllow, create(seedEmployeeUser, validTransactionDoc(map[string]interface{}{
			"oldAccountValue": 5, "valueIncrement": 5, "newAccountValue": 10,
		})).Decision)
	})
	t.Run("every field is required", func(t *testing.T) {
		for field := range validTransactionDoc(nil) {
			doc := validTransactionDoc(nil)
			delete(doc, field)
			result := create(seedEmployeeUser, doc)
			assert.Equal(t, repository.DecisionDeny, result.Decision, "create without %s should be denied", field)
		}
	})
	t.Run("field types are enforced", func(t *testing.T) {
		for _, field := range []string{"shopId", "shopName", "employeeId", "userId"} {
			require.NoError(t, probeInvalidTypes(func(doc model.Document) repository.RuleResult {
				return create(seedEmployeeUser, validTransactionDoc(doc))
			}, field, "string"), field)
		}
		for _, field := range []string{"timestamp", "valueIncrement", "oldAccountValue", "newAccountValue"} {
			require.NoError(t, probeInvalidTypes(func(doc model.Document) repository.RuleResult {
				return create(seedEmployeeUser, validTransactionDoc(doc))
			}, field, "integer"), field)
		}
	})
	t.Run("unsafe strings are denied", func(t *testing.T) {
		result := create(seedEmployeeUser, validTransactionDoc(map[string]interface{}{"userId": "<script>alert(1)</script>"}))
		assert.Equal(t, repository.DecisionDeny, result.Decision)
		assert.Equal(t, repository.CauseInvariantViolation, result.Cause)
	})
	t.Run("integral float values are accepted", func(t *testing.T) {
		assert.Equal(t, repository.DecisionAllow, create(seedEmployeeUser, validTransactionDoc(map[string]interface{}{
			"oldAccountValue": float64(0), "valueIncrement": float64(10), "newAccountValue": float64(10),
		})).Decision)
	})
}

func TestTransactionsImmutable(t *testing.T) {
	uc := newTestDecisionPoint()
	ctx := context.Background()

	for _, uid := range []string{seedDefaultUser, seedEmployeeUser, seedShopOwner, seedAdminUser} {
		result := uc.Evaluate(ctx, updateRequest(uid, model.CollectionTransactions, "transaction1", model.Document{"valueIncrement": 20}))
		assert.Equal(t, repository.DecisionDeny, result.Decision, "update by %s should be denied", uid)
		assert.Equal(t, repository.CauseInvariantViolation, result.Cause)

		result = uc.Evaluate(ctx, deleteRequest(uid, model.CollectionTransactions, "transaction1"))
		assert.Equal(t, repository.DecisionDeny, result.Decision, "delete by %s should be denied", uid)
	}
}

func TestTransactionsList(t *testing.T) {
	uc := newTestDecisionPoint()
	ctx := context.Background()
	equal := func(field, value string) model.Filter {
		return model.Filter{Field: field, Operator: model.OperatorEqual, Value: value}
	}

	t.Run("admin lists unfiltered", func(t *testing.T) {
		assert.Equal(t, repository.DecisionAllow, uc.Authorize(ctx, listRequest(seedAdminUser, model.CollectionTransactions)))
	})
	t.Run("non-admin unfiltered is denied", func(t *testing.T) {
		assert.Equal(t, repository.DecisionDeny, uc.Authorize(ctx, listRequest(seedDefaultUser, model.CollectionTransactions)))
	})
	t.Run("user queries own transactions", func(t *testing.T) {
		assert.Equal(t, repository.DecisionAllow, uc.Authorize(ctx, listRequest(seedDefaultUser, model.CollectionTransactions, equal("userId", seedDefaultUser))))
	})
	t.Run("user queries someone else's transactions", func(t *testing.T) {
		result := uc.Evaluate(ctx, listRequest(seedDefaultUser2, model.CollectionTransactions, equal("userId", seedDefaultUser)))
		assert.Equal(t, repository.DecisionDeny, result.Decision)
		assert.Equal(t, repository.CauseRoleDenied, result.Cause)
	})
	t.Run("employee queries own ledger entries", func(t *testing.T) {
		assert.Equal(t, repository.DecisionAllow, uc.Authorize(ctx, listRequest(seedEmployeeUser, model.CollectionTransactions, equal("employeeId", seedEmployeeUser))))
	})
	t.Run("plain user cannot pose as employee", func(t *testing.T) {
		assert.Equal(t, repository.DecisionDeny, uc.Authorize(ctx, listRequest(seedDefaultUser, model.CollectionTransactions, equal("employeeId", seedDefaultUser))))
	})
	t.Run("shop owner queries own shop", func(t *testing.T) {
		assert.Equal(t, repository.DecisionAllow, uc.Authorize(ctx, listRequest(seedShopOwner, model.CollectionTransactions, equal("shopId", seedShopID))))
	})
	t.Run("shop owner queries another shop", func(t *testing.T) {
		assert.Equal(t, repository.DecisionDeny, uc.Authorize(ctx, listRequest(seedShopOwner, model.CollectionTransactions, equal("shopId", "shop2"))))
	})
	t.Run("employee cannot use the shop filter", func(t *testing.T) {
		assert.Equal(t, repository.DecisionDeny, uc.Authorize(ctx, listRequest(seedEmployeeUser, model.CollectionTransactions, equal("shopId", seedShopID))))
	})
	t.Run("non-equality operators are denied", func(t *testing.T) {
		result := uc.Evaluate(ctx, listRequest(seedDefaultUser, model.CollectionTransactions, model.Filter{Field: "userId", Operator: model.OperatorNotEqual, Value: seedDefaultUser}))
		assert.Equal(t, repository.DecisionDeny, result.Decision)
		assert.Equal(t, repository.CauseInvariantViolation, result.Cause)
	})
	t.Run("non-string comparisons are denied", func(t *testing.T) {
		result := uc.Evaluate(ctx, listRequest(seedDefaultUser, model.CollectionTransactions, model.Filter{Field: "userId", Operator: model.OperatorEqual, Value: 42}))
		assert.Equal(t, repository.DecisionDeny, result.Decision)
		assert.Equal(t, repository.CauseTypeMismatch, result.Cause)
	})
	t.Run("filters on other fields are denied", func(t *testing.T) {
		assert.Equal(t, repository.DecisionDeny, uc.Authorize(ctx, listRequest(seedDefaultUser, model.CollectionTransactions, equal("shopName", seedShopName))))
	})
	t.Run("conjunction must hold for every clause", func(t *testing.T) {
		assert.Equal(t, repository.DecisionAllow, uc.Authorize(ctx, listRequest(seedEmployeeUser, model.CollectionTransactions,
			equal("userId", seedEmployeeUser), equal("employeeId", seedEmployeeUser))))
		assert.Equal(t, repository.DecisionDeny, uc.Authorize(ctx, listRequest(seedEmployeeUser, model.CollectionTransactions,
			equal("employeeId", seedEmployeeUser), equal("userId", seedDefaultUser))))
	})
}
