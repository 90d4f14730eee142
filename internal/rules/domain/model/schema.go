package model

// Collection names addressable by the decision engine.
const (
	CollectionUsers        = "users"
	CollectionShops        = "shops"
	CollectionTransactions = "transactions"
	CollectionLogs         = "logs"
	CollectionService      = "service"
)

// User document fields.
const (
	FieldBirth       = "birth"
	FieldJoined      = "joined"
	FieldName        = "name"
	FieldValue       = "value"
	FieldShopID      = "shopId"
	FieldShopName    = "shopName"
	FieldIsShopOwner = "isShopOwner"
	FieldIsEmployee  = "isEmployee"
	FieldIsAdmin     = "isAdmin"
)

// Shop document fields (FieldName and FieldJoined are shared with users).
const (
	FieldKey         = "key"
	FieldOwnerID     = "ownerId"
	FieldEmployeeIDs = "employeeIds"
)

// Transaction document fields.
const (
	FieldTimestamp       = "timestamp"
	FieldEmployeeID      = "employeeId"
	FieldUserID          = "userId"
	FieldValueIncrement  = "valueIncrement"
	FieldOldAccountValue = "oldAccountValue"
	FieldNewAccountValue = "newAccountValue"
)

// Log document fields beyond the shared ones.
const (
	FieldAction             = "action"
	FieldAdminID            = "adminId"
	FieldShopOwnerID        = "shopOwnerId"
	FieldRemovedEmployeeIDs = "removedEmployeeIds"
	FieldNewEmployeeIDs     = "newEmployeeIds"
)

// Service document fields.
const (
	FieldAdminUserIDs = "adminUserIds"
)

// Log actions form a tagged union over the audit entry variants.
const (
	LogActionAddShop         = "add-shop"
	LogActionDeleteShop      = "delete-shop"
	LogActionAddEmployee     = "add-employee"
	LogActionDeleteEmployees = "delete-employees"
)

// ValidLogAction reports whether the action names a known log variant.
func ValidLogAction(action string) bool {
	switch action {
	case LogActionAddShop, LogActionDeleteShop, LogActionAddEmployee, LogActionDeleteEmployees:
		return true
	}
	return false
}

var collectionSchemas = map[string]map[string]struct{}{
	CollectionUsers: {
		FieldBirth:       {},
		FieldJoined:      {},
		FieldName:        {},
		FieldValue:       {},
		FieldShopID:      {},
		FieldShopName:    {},
		FieldIsShopOwner: {},
		FieldIsEmployee:  {},
		FieldIsAdmin:     {},
	},
	CollectionShops: {
		FieldName:        {},
		FieldKey:         {},
		FieldOwnerID:     {},
		FieldJoined:      {},
		FieldEmployeeIDs: {},
	},
	CollectionTransactions: {
		FieldShopID:          {},
		FieldShopName:        {},
		FieldTimestamp:       {},
		FieldEmployeeID:      {},
		FieldUserID:          {},
		FieldValueIncrement:  {},
		FieldOldAccountValue: {},
		FieldNewAccountValue: {},
	},
	// Union over all four log variants.
	CollectionLogs: {
		FieldAction:             {},
		FieldTimestamp:          {},
		FieldAdminID:            {},
		FieldShopID:             {},
		FieldShopName:           {},
		FieldShopOwnerID:        {},
		FieldEmployeeID:         {},
		FieldRemovedEmployeeIDs: {},
		FieldNewEmployeeIDs:     {},
	},
	CollectionService: {
		FieldAdminUserIDs: {},
	},
}

// KnownCollection reports whether the engine evaluates the collection at all.
func KnownCollection(collection string) bool {
	_, ok := collectionSchemas[collection]
	return ok
}

// UnknownFields returns the fields of the proposed document that fall outside
// the collection's closed schema, in no particular order.
func UnknownFields(collection string, doc Document) []string {
	schema, ok := collectionSchemas[collection]
	if !ok {
		fields := make([]string, 0, len(doc))
		for f := range doc {
			fields = append(fields, f)
		}
		return fields
	}
	var unknown []string
	for f := range doc {
		if _, ok := schema[f]; !ok {
			unknown = append(unknown, f)
		}
	}
	return unknown
}
