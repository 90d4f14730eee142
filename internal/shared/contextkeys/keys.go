package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "loyalty-rules context key " + string(c)
}

// RequestIDKey is the key for the request ID in context.Context
const RequestIDKey = contextKey("requestID")

// UserIDKey is the key for the acting principal's uid in context.Context
const UserIDKey = contextKey("userID")

// ComponentKey is the key for the emitting component in context.Context
const ComponentKey = contextKey("component")

// OperationKey is the key for the evaluated operation in context.Context
const OperationKey = contextKey("operation")

// CollectionKey is the key for the target collection in context.Context
const CollectionKey = contextKey("collection")
