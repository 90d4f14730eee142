// Centralized test helpers for rules usecase tests.
// Place shared fakes and seed fixtures here to avoid redeclaration errors.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"loyalty-rules/internal/rules/domain/model"
	"loyalty-rules/internal/rules/domain/repository"
)

// MemoryReader is an in-memory DocumentReader backed by a fixed fixture set.
type MemoryReader struct {
	Docs map[string]map[string]model.Document
	// Fail makes every lookup error, to exercise fail-closed behavior.
	Fail bool
}

func (m *MemoryReader) Get(ctx context.Context, collection, documentID string) (model.Document, error) {
	if m.Fail {
		return nil, errors.New("lookup unavailable")
	}
	docs, ok := m.Docs[collection]
	if !ok {
		return nil, nil
	}
	return docs[documentID], nil
}

// Seed identities used across the policy tests.
const (
	seedDefaultUser  = "defaultUser1"
	seedDefaultUser2 = "defaultUser2"
	seedAdminUser    = "adminUser1"
	seedEmployeeUser = "employeeUser1"
	seedShopOwner    = "shopOwnerUser1"
	seedShopID       = "shop1"
	seedShopName     = "Nights third leg syndrom"
)

// NewSeededReader reproduces the fixture data set the rule suite has always
// been exercised against.
func NewSeededReader() *MemoryReader {
	return &MemoryReader{Docs: map[string]map[string]model.Document{
		model.CollectionUsers: {
			seedDefaultUser: {
				"birth":  int64(631152000000),
				"joined": int64(1622505600000),
				"name":   "Dragon Uldrid",
				"value":  int64(10),
			},
			seedAdminUser: {
				"birth":   int64(631152000000),
				"joined":  int64(1622505600000),
				"name":    "Armin Unveil",
				"value":   int64(0),
				"isAdmin": true,
			},
			seedEmployeeUser: {
				"birth":      int64(788918400000),
				"joined":     int64(1633027200000),
				"name":       "Ester Undertake",
				"value":      int64(0),
				"shopId":     seedShopID,
				"shopName":   seedShopName,
				"isEmployee": true,
			},
			seedShopOwner: {
				"birth":       int64(946684800000),
				"joined":      int64(1640995200000),
				"name":        "Sylphie Olerson Unravel",
				"value":       int64(750),
				"shopId":      seedShopID,
				"shopName":    seedShopName,
				"isShopOwner": true,
				"isEmployee":  true,
			},
		},
		model.CollectionShops: {
			seedShopID: {
				"ownerId":     seedShopOwner,
				"joined":      int64(1640995200000),
				"employeeIds": []string{seedShopOwner, seedEmployeeUser},
				"name":        seedShopName,
				"key":         "nights-third-leg-syndrom",
			},
		},
		model.CollectionTransactions: {
			"transaction1": {
				"shopId":          seedShopID,
				"shopName":        seedShopName,
				"timestamp":       int64(1625011200000),
				"employeeId":      seedEmployeeUser,
				"userId":          seedDefaultUser,
				"valueIncrement":  int64(10),
				"oldAccountValue": int64(0),
				"newAccountValue": int64(10),
			},
		},
		model.CollectionLogs: {
			"log1": {
				"action":      model.LogActionAddShop,
				"timestamp":   int64(1625011200000),
				"shopName":    seedShopName,
				"shopId":      seedShopID,
				"adminId":     seedAdminUser,
				"shopOwnerId": seedShopOwner,
			},
		},
		model.CollectionService: {
			"admins": {
				"adminUserIds": []string{seedAdminUser},
			},
		},
	}}
}

// validTransactionDoc builds the canonical valid ledger entry used by the
// create probes, with overrides applied on top.
func validTransactionDoc(overrides map[string]interface{}) model.Document {
	doc := model.Document{
		"shopId":          seedShopID,
		"shopName":        seedShopName,
		"timestamp":       int64(1625011200000),
		"employeeId":      seedEmployeeUser,
		"userId":          seedDefaultUser,
		"valueIncrement":  int64(10),
		"oldAccountValue": int64(0),
		"newAccountValue": int64(10),
	}
	for k, v := range overrides {
		doc[k] = v
	}
	return doc
}

// typeProbes returns example values for each semantic type, mirroring the
// probe grid the rule suite runs for field type enforcement.
func typeProbes() map[string][]interface{} {
	return map[string][]interface{}{
		"string":  {"string123", "Hörg Hämsel"},
		"float":   {123.01, 0.989},
		"boolean": {true, false},
		"integer": {1, 0, int64(631152000000)},
		"null":    {nil},
	}
}

// probeInvalidTypes asserts that every probe value outside validType denies
// the write built by makeReq.
func probeInvalidTypes(evaluate func(model.Document) repository.RuleResult, field, validType string) error {
	for kind, values := range typeProbes() {
		if kind == validType {
			continue
		}
		for _, v := range values {
			if result := evaluate(model.Document{field: v}); result.Decision.Allowed() {
				return fmt.Errorf("probe %s=%v (%s) was allowed, want deny", field, v, kind)
			}
		}
	}
	return nil
}
