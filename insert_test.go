package sqlfrag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsert_Golden(t *testing.T) {
	assertGolden(t, "insert", []goldenCase{
		{"plain", func() (Frag, error) {
			return Insert(Tbl("t"), Fields{F("a", 1), F("b", "x")})
		}},
		{"qualified_table", func() (Frag, error) {
			return Insert(Tbl("app", "users"), Fields{F("name", "it's")})
		}},
		{"map_update", func() (Frag, error) {
			return InsertMap(Tbl("t"), map[string]any{"a": 1}, OnDuplicateKey(DuplicateKeyUpdate))
		}},
		{"map_update_many", func() (Frag, error) {
			return InsertMap(Tbl("t"), map[string]any{"b": 2, "a": 1}, OnDuplicateKey(DuplicateKeyUpdate))
		}},
		{"dup_ignore", func() (Frag, error) {
			return InsertMap(Tbl("t"), map[string]any{"a": 1, "b": 2}, OnDuplicateKey(DuplicateKeyIgnore))
		}},
		{"insert_ignore", func() (Frag, error) {
			return InsertMap(Tbl("t"), map[string]any{"a": 1}, Ignore())
		}},
		{"insert_ignore_update", func() (Frag, error) {
			return InsertMap(Tbl("t"), map[string]any{"a": 1}, Ignore(), OnDuplicateKey(DuplicateKeyUpdate))
		}},
		{"explicit_error_policy", func() (Frag, error) {
			return InsertMap(Tbl("t"), map[string]any{"a": 1}, OnDuplicateKey(DuplicateKeyError))
		}},
		{"same_policy_twice", func() (Frag, error) {
			return InsertMap(Tbl("t"), map[string]any{"a": 1},
				OnDuplicateKey(DuplicateKeyUpdate), OnDuplicateKey(DuplicateKeyUpdate))
		}},
		{"absent_dropped", func() (Frag, error) {
			return Insert(Tbl("t"), Fields{F("a", Absent), F("b", nil), F("c", []byte{1})},
				OnDuplicateKey(DuplicateKeyIgnore))
		}},
		{"nil_option", func() (Frag, error) {
			return Insert(Tbl("t"), Fields{F("a", true)}, nil)
		}},
	})
}

func TestInsert_Errors(t *testing.T) {
	_, err := InsertMap(Tbl("t"), map[string]any{"a": 1},
		OnDuplicateKey(DuplicateKeyIgnore), OnDuplicateKey(DuplicateKeyUpdate))
	require.ErrorIs(t, err, ErrIncompatibleOptions)
	assert.Contains(t, err.Error(), "ignore vs update")

	_, err = InsertMap(Tbl("t"), map[string]any{})
	assert.ErrorIs(t, err, ErrEmptyFieldSet)

	_, err = Insert(Tbl("t"), Fields{F("a", Absent)})
	assert.ErrorIs(t, err, ErrEmptyFieldSet)

	_, err = InsertMap(Tbl("a", "b", "c"), map[string]any{"x": 1})
	assert.ErrorIs(t, err, ErrInvalidIdentifierShape)

	_, err = Insert(nil, Fields{F("x", 1)})
	assert.ErrorIs(t, err, ErrInvalidIdentifierShape)
}

func TestParseDuplicateKey(t *testing.T) {
	tests := []struct {
		in   string
		want DuplicateKey
	}{
		{"", DuplicateKeyError},
		{"error", DuplicateKeyError},
		{"ignore", DuplicateKeyIgnore},
		{"update", DuplicateKeyUpdate},
	}
	for _, tt := range tests {
		got, err := ParseDuplicateKey(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		if tt.in != "" {
			assert.Equal(t, tt.in, got.String())
		}
	}

	_, err := ParseDuplicateKey("replace")
	assert.ErrorIs(t, err, ErrIncompatibleOptions)
	assert.Equal(t, "DuplicateKey(7)", DuplicateKey(7).String())
}
