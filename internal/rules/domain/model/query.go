package model

// Query represents the declared shape of a list request. The engine never
// executes it; the filter clauses are inspected as an authorization surface.
type Query struct {
	Collection string   `json:"collection"`
	Filters    []Filter `json:"filters"`
	Limit      int      `json:"limit,omitempty"`
}

// Filter represents a single declared filter condition (where clause).
type Filter struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
}

// Operator types for filters.
const (
	OperatorEqual              = "=="
	OperatorNotEqual           = "!="
	OperatorLessThan           = "<"
	OperatorLessThanOrEqual    = "<="
	OperatorGreaterThan        = ">"
	OperatorGreaterThanOrEqual = ">="
	OperatorIn                 = "in"
	OperatorNotIn              = "not-in"
	OperatorArrayContains      = "array-contains"
)

// IsEquality reports whether the filter is a plain equality clause.
func (f Filter) IsEquality() bool {
	return f.Operator == OperatorEqual
}
