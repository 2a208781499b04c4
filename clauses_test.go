package sqlfrag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClauses_Golden(t *testing.T) {
	assertGolden(t, "clauses", []goldenCase{
		{"set_map", func() (Frag, error) {
			return SetMap(map[string]any{"a": 1, "b.c": "x"})
		}},
		{"set_order", func() (Frag, error) {
			return Set(Fields{F("z", 1), F("a", "b")})
		}},
		{"set_absent", func() (Frag, error) {
			return Set(Fields{F("a", 1), F("b", Absent), F("c", nil)})
		}},
		{"set_strict_column", func() (Frag, error) {
			return Set(Fields{{Column: Col("t", "x.y"), Value: Int(2)}})
		}},
		{"alias", func() (Frag, error) {
			return Alias(As(Col("u", "id"), "user id"), As(Raw("count(*)"), "n"))
		}},
		{"alias_map", func() (Frag, error) {
			return AliasMap(map[string]Ident{"b": Loose("t.b"), "a": Col("x")})
		}},
		{"columns", func() (Frag, error) {
			return Columns(Col("a"), Loose("t.b"), Name("c`d"))
		}},
		{"values", func() (Frag, error) {
			return Values([]Value{Int(1), String("2")}, []Value{Int(3), Null})
		}},
		{"cond_eq", func() (Frag, error) {
			return Cond(Col("id"), "=", Int(5))
		}},
		{"cond_lowercase_op", func() (Frag, error) {
			return Cond(Col("name"), "not  like", String("a%"))
		}},
		{"cond_in", func() (Frag, error) {
			return Cond(Col("id"), "IN", List{Int(1), Int(2)})
		}},
		{"cond_in_scalar", func() (Frag, error) {
			return Cond(Col("id"), "in", Int(1))
		}},
		{"cond_in_empty", func() (Frag, error) {
			return Cond(Col("id"), "NOT IN", List{})
		}},
		{"cond_between", func() (Frag, error) {
			return Cond(Col("age"), "BETWEEN", List{Int(18), Int(65)})
		}},
		{"cond_is_null", func() (Frag, error) {
			return Cond(Col("deleted_at"), "IS", Null)
		}},
		{"like_default", func() (Frag, error) {
			p, err := EscapeLike("100%_off", "")
			if err != nil {
				return Frag{}, err
			}
			return Like("%"+p+"%", "")
		}},
		{"like_custom_escape", func() (Frag, error) {
			p, err := EscapeLike("50%!", "!")
			if err != nil {
				return Frag{}, err
			}
			return Like(p+"%", "!")
		}},
		{"point", func() (Frag, error) {
			return Point(1.5, -2), nil
		}},
		{"polygon_open", func() (Frag, error) {
			return Polygon([]PointXY{{0, 0}, {1, 0}, {1, 1}}, false)
		}},
		{"polygon_closed", func() (Frag, error) {
			return Polygon([]PointXY{{0, 0}, {1, 0}, {1, 1}}, true)
		}},
		{"polygon_already_closed", func() (Frag, error) {
			return Polygon([]PointXY{{0, 0}, {1, 0}, {0, 0}}, true)
		}},
		{"interval_duration", func() (Frag, error) {
			return Interval(90*time.Second + 5*time.Microsecond), nil
		}},
		{"interval_day", func() (Frag, error) {
			return IntervalOf(-3, Day)
		}},
		{"interval_quarter", func() (Frag, error) {
			return IntervalOf(1, Quarter)
		}},
	})
}

func TestClauses_Errors(t *testing.T) {
	_, err := Set(nil)
	assert.ErrorIs(t, err, ErrEmptyFieldSet)

	_, err = Set(Fields{F("a", Absent)})
	assert.ErrorIs(t, err, ErrEmptyFieldSet)

	_, err = SetMap(map[string]any{})
	assert.ErrorIs(t, err, ErrEmptyFieldSet)

	_, err = SetMap(map[string]any{"a..b": 1})
	assert.ErrorIs(t, err, ErrInvalidIdentifierShape)

	_, err = SetMap(map[string]any{"a": make(chan int)})
	assert.ErrorIs(t, err, ErrUnsupportedValueType)

	_, err = Alias()
	assert.ErrorIs(t, err, ErrEmptyFieldSet)

	_, err = Alias(As(Col("a"), ""))
	assert.ErrorIs(t, err, ErrInvalidIdentifierShape)

	_, err = Columns()
	assert.ErrorIs(t, err, ErrEmptyFieldSet)

	_, err = Values()
	assert.ErrorIs(t, err, ErrEmptyFieldSet)

	_, err = Values([]Value{Int(1)}, []Value{})
	assert.ErrorIs(t, err, ErrEmptyFieldSet)

	_, err = Values([]Value{List{Int(1)}})
	assert.ErrorIs(t, err, ErrUnsupportedValueType)

	_, err = Cond(Col("id"), "; DROP TABLE users", Int(1))
	assert.ErrorIs(t, err, ErrInvalidOperator)

	_, err = Cond(Col("id"), "BETWEEN", List{Int(1)})
	assert.ErrorIs(t, err, ErrInvalidBetween)

	_, err = Cond(Col("id"), "BETWEEN", Int(1))
	assert.ErrorIs(t, err, ErrInvalidBetween)

	_, err = Cond(Col("a", "b", "c", "d"), "=", Int(1))
	assert.ErrorIs(t, err, ErrInvalidIdentifierShape)

	_, err = Polygon(nil, true)
	assert.ErrorIs(t, err, ErrEmptyFieldSet)

	_, err = IntervalOf(1, IntervalUnit(42))
	assert.ErrorIs(t, err, ErrUnsupportedValueType)
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, esc, want string
	}{
		{"plain", "", "plain"},
		{"100%", "", `100\%`},
		{"a_b", "", `a\_b`},
		{`back\slash`, "", `back\\slash`},
		{"50%!", "!", "50!%!!"},
		{"ğ_ü", "ü", "ğü_üü"},
	}

	for _, tt := range tests {
		got, err := EscapeLike(tt.in, tt.esc)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "EscapeLike(%q, %q)", tt.in, tt.esc)
	}

	for _, bad := range []string{"%", "_", "ab"} {
		_, err := EscapeLike("x", bad)
		assert.ErrorIs(t, err, ErrBadEscapeCharacter, "esc %q", bad)

		_, err = Like("x", bad)
		assert.ErrorIs(t, err, ErrBadEscapeCharacter, "esc %q", bad)
	}
}

func TestIntervalUnit_String(t *testing.T) {
	assert.Equal(t, "MICROSECOND", Microsecond.String())
	assert.Equal(t, "YEAR", Year.String())
	assert.Equal(t, "IntervalUnit(99)", IntervalUnit(99).String())
}

func TestPolygon_DoesNotMutateInput(t *testing.T) {
	points := make([]PointXY, 3, 8)
	copy(points, []PointXY{{0, 0}, {1, 0}, {1, 1}})

	_, err := Polygon(points, true)
	require.NoError(t, err)
	assert.Equal(t, PointXY{}, points[:4][3])
}
