package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_Classification(t *testing.T) {
	prior := Document{
		"birth": int64(631152000000),
		"name":  "Dragon Uldrid",
		"value": 10,
	}
	proposed := Document{
		"birth":  int64(631152000000), // restated
		"name":   nil,                 // cleared
		"value":  25,                  // overwritten
		"joined": int64(1622505600000),
	}

	changes := Diff(prior, proposed)
	assert.Len(t, changes, 4)

	byField := map[string]FieldChange{}
	for _, c := range changes {
		byField[c.Field] = c
	}
	assert.Equal(t, FieldUnchanged, byField["birth"].Kind)
	assert.Equal(t, FieldCleared, byField["name"].Kind)
	assert.Equal(t, FieldOverwritten, byField["value"].Kind)
	assert.Equal(t, FieldAdded, byField["joined"].Kind)
}

func TestDiff_NumericRepresentationsAreEqual(t *testing.T) {
	// BSON hands back int64, JSON hands in float64; a restated value must
	// still classify as unchanged.
	prior := Document{"value": int64(10)}
	proposed := Document{"value": float64(10)}

	changes := Diff(prior, proposed)
	assert.Len(t, changes, 1)
	assert.Equal(t, FieldUnchanged, changes[0].Kind)
}

func TestDiff_AgainstMissingDocument(t *testing.T) {
	changes := Diff(nil, Document{"birth": 1})
	assert.Len(t, changes, 1)
	assert.Equal(t, FieldAdded, changes[0].Kind)

	assert.Empty(t, Diff(nil, Document{}))
}

func TestDiff_DeterministicOrder(t *testing.T) {
	changes := Diff(nil, Document{"c": 1, "a": 2, "b": 3})
	assert.Equal(t, "a", changes[0].Field)
	assert.Equal(t, "b", changes[1].Field)
	assert.Equal(t, "c", changes[2].Field)
}

func TestSymmetricDifference(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
		want []string
	}{
		{"one added", []string{"owner"}, []string{"owner", "emp1"}, []string{"emp1"}},
		{"one removed", []string{"owner", "emp1"}, []string{"owner"}, []string{"emp1"}},
		{"no change", []string{"owner"}, []string{"owner"}, nil},
		{"swap counts twice", []string{"owner", "emp1"}, []string{"owner", "emp2"}, []string{"emp1", "emp2"}},
		{"duplicates collapse", []string{"owner", "owner"}, []string{"owner", "emp1", "emp1"}, []string{"emp1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SymmetricDifference(tc.a, tc.b))
		})
	}
}

func TestContainsID(t *testing.T) {
	assert.True(t, ContainsID([]string{"a", "b"}, "b"))
	assert.False(t, ContainsID([]string{"a", "b"}, "c"))
	assert.False(t, ContainsID(nil, "a"))
}
