package model

import "sort"

// ChangeKind classifies how a write touches a single field.
type ChangeKind int

const (
	// FieldUnchanged means the write restates the prior value.
	FieldUnchanged ChangeKind = iota
	// FieldAdded means the field had no prior value.
	FieldAdded
	// FieldOverwritten means the write replaces a prior value.
	FieldOverwritten
	// FieldCleared means the write explicitly nulls a prior value.
	FieldCleared
)

func (k ChangeKind) String() string {
	switch k {
	case FieldUnchanged:
		return "unchanged"
	case FieldAdded:
		return "added"
	case FieldOverwritten:
		return "overwritten"
	case FieldCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// FieldChange describes one field touched by a merge write.
type FieldChange struct {
	Field    string
	Kind     ChangeKind
	Prior    interface{}
	Proposed interface{}
}

// Diff computes the per-field changes a merge write proposes. Only fields
// present in the proposed payload are reported; fields the payload does not
// mention are left untouched by a merge write. The result is sorted by field
// name so evaluation order is deterministic.
func Diff(prior, proposed Document) []FieldChange {
	changes := make([]FieldChange, 0, len(proposed))
	for field, newValue := range proposed {
		oldValue := prior.Field(field)
		change := FieldChange{Field: field, Prior: oldValue, Proposed: newValue}
		switch {
		case oldValue == nil && newValue == nil:
			change.Kind = FieldUnchanged
		case oldValue == nil:
			change.Kind = FieldAdded
		case newValue == nil:
			change.Kind = FieldCleared
		case ValuesEqual(oldValue, newValue):
			change.Kind = FieldUnchanged
		default:
			change.Kind = FieldOverwritten
		}
		changes = append(changes, change)
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}

// SymmetricDifference returns the elements present in exactly one of the two
// id sequences, treating them as sets.
func SymmetricDifference(a, b []string) []string {
	inA := make(map[string]struct{}, len(a))
	inB := make(map[string]struct{}, len(b))
	for _, s := range a {
		inA[s] = struct{}{}
	}
	for _, s := range b {
		inB[s] = struct{}{}
	}
	var diff []string
	for s := range inA {
		if _, ok := inB[s]; !ok {
			diff = append(diff, s)
		}
	}
	for s := range inB {
		if _, ok := inA[s]; !ok {
			diff = append(diff, s)
		}
	}
	sort.Strings(diff)
	return diff
}

// ContainsID reports whether the id sequence contains the given id.
func ContainsID(ids []string, id string) bool {
	for _, s := range ids {
		if s == id {
			return true
		}
	}
	return false
}
