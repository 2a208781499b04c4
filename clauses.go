package sqlfrag

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/biyonik/go-sqlfrag/internal/validation"
)

/*
 * ----------------------------------------------------------------------------
 * CLAUSE BUILDERS
 * ----------------------------------------------------------------------------
 *
 * Sık kullanılan SQL cümle parçalarını (SET listesi, alias listesi, VALUES
 * satırları, koşullar, geometri ve aralık ifadeleri) üreten saf fonksiyonlar.
 * Hepsi ya tam bir Frag ya da hata döndürür; yarım kalmış SQL üretilmez.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// ----------------------------------------------------------------------------
// Fields
// ----------------------------------------------------------------------------

// Field, tek bir kolon = değer atamasıdır.
type Field struct {
	Column Ident
	Value  Value
}

// Fields, sıralı atama listesidir. Çıktı sırası liste sırasıdır.
type Fields []Field

// F, düz string kolon adı ve yerel Go değeriyle bir Field oluşturur.
// Kolon adı loose modda yazılır ("b.c" → `b`.`c`). Değer dönüştürülemezse
// hata, alan yazılırken döner.
func F(column string, v any) Field {
	return Field{Column: Loose(column), Value: mustValue(v)}
}

// fieldsFromMap, map anahtarlarını sıralayarak deterministik bir liste üretir.
func fieldsFromMap(m map[string]any) Fields {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fields := make(Fields, len(keys))
	for i, k := range keys {
		fields[i] = F(k, m[k])
	}
	return fields
}

// present, Absent işaretli alanları ayıklar.
func (fs Fields) present() Fields {
	out := make(Fields, 0, len(fs))
	for _, f := range fs {
		if _, skip := f.Value.(absentValue); skip {
			continue
		}
		out = append(out, f)
	}
	return out
}

// renderedField, SET ve ON DUPLICATE KEY bölümlerinin paylaştığı kolon metnidir.
type renderedField struct {
	column string
	value  []byte
}

func renderFields(fields Fields) ([]renderedField, error) {
	usable := fields.present()
	if len(usable) == 0 {
		return nil, ErrEmptyFieldSet
	}
	out := make([]renderedField, len(usable))
	for i, f := range usable {
		col, err := appendIdent(nil, f.Column)
		if err != nil {
			return nil, err
		}
		val, err := appendValue(nil, f.Value)
		if err != nil {
			return nil, err
		}
		out[i] = renderedField{column: string(col), value: val}
	}
	return out, nil
}

func appendAssignments(dst []byte, rendered []renderedField) []byte {
	for i, f := range rendered {
		if i > 0 {
			dst = append(dst, ", "...)
		}
		dst = append(dst, f.column...)
		dst = append(dst, '=')
		dst = append(dst, f.value...)
	}
	return dst
}

// Set, `a`=1, `b`='x' biçiminde bir atama listesi üretir.
// Absent değerli alanlar atlanır; geriye alan kalmazsa ErrEmptyFieldSet döner.
func Set(fields Fields) (Frag, error) {
	rendered, err := renderFields(fields)
	if err != nil {
		return Frag{}, err
	}
	return Frag{sql: string(appendAssignments(nil, rendered))}, nil
}

// SetMap, Set'in map sürümüdür. Anahtarlar loose modda ve sıralı yazılır.
//
// Örnek:
//
//	sqlfrag.SetMap(map[string]any{"a": 1, "b.c": "x"})
//	// `a`=1, `b`.`c`='x'
func SetMap(m map[string]any) (Frag, error) {
	return Set(fieldsFromMap(m))
}

// ----------------------------------------------------------------------------
// Alias / Columns / Values
// ----------------------------------------------------------------------------

// AliasPair, "ifade AS takma_ad" çiftidir.
type AliasPair struct {
	Expr  Ident
	Alias string
}

// As, bir AliasPair oluşturur. Yön her zaman ifade AS takma addır.
func As(expr Ident, alias string) AliasPair {
	return AliasPair{Expr: expr, Alias: alias}
}

// Alias, `col` AS `alias`, ... listesini üretir. Takma ad strict tek parça isimdir.
func Alias(pairs ...AliasPair) (Frag, error) {
	if len(pairs) == 0 {
		return Frag{}, ErrEmptyFieldSet
	}
	var dst []byte
	var err error
	for i, p := range pairs {
		if i > 0 {
			dst = append(dst, ", "...)
		}
		if dst, err = appendIdent(dst, p.Expr); err != nil {
			return Frag{}, err
		}
		dst = append(dst, " AS "...)
		if dst, err = appendIdent(dst, Name(p.Alias)); err != nil {
			return Frag{}, err
		}
	}
	return Frag{sql: string(dst)}, nil
}

// AliasMap, takma ad → ifade eşlemesinden takma ada göre sıralı bir liste üretir.
func AliasMap(m map[string]Ident) (Frag, error) {
	aliases := make([]string, 0, len(m))
	for a := range m {
		aliases = append(aliases, a)
	}
	slices.Sort(aliases)

	pairs := make([]AliasPair, len(aliases))
	for i, a := range aliases {
		pairs[i] = As(m[a], a)
	}
	return Alias(pairs...)
}

// Columns, isimleri virgül ve boşlukla birleştirir: `a`, `b`.
func Columns(ids ...Ident) (Frag, error) {
	if len(ids) == 0 {
		return Frag{}, ErrEmptyFieldSet
	}
	var dst []byte
	var err error
	for i, id := range ids {
		if i > 0 {
			dst = append(dst, ", "...)
		}
		if dst, err = appendIdent(dst, id); err != nil {
			return Frag{}, err
		}
	}
	return Frag{sql: string(dst)}, nil
}

// Values, toplu INSERT için (1,'2'),(3,'4') biçiminde satır listesi üretir.
// Her satır bağımsız kaçışlanır; boş satır veya boş liste ErrEmptyFieldSet döndürür.
func Values(rows ...[]Value) (Frag, error) {
	if len(rows) == 0 {
		return Frag{}, ErrEmptyFieldSet
	}
	var dst []byte
	var err error
	for i, row := range rows {
		if len(row) == 0 {
			return Frag{}, ErrEmptyFieldSet
		}
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '(')
		if dst, err = List(row).appendSQL(dst); err != nil {
			return Frag{}, err
		}
		dst = append(dst, ')')
	}
	return Frag{sql: string(dst)}, nil
}

// ----------------------------------------------------------------------------
// Conditions
// ----------------------------------------------------------------------------

// Cond, `kolon` OP değer biçiminde bir koşul üretir.
//
// Operatör beyaz listeden gelmelidir (=, !=, <>, <, >, <=, >=, <=>, LIKE, NOT LIKE,
// IN, NOT IN, BETWEEN, NOT BETWEEN, IS, IS NOT). IN ailesi değeri parantez içine
// alır; boş liste hiçbir satırla eşleşmeyen (/*empty*/NULL) olur.
// BETWEEN iki elemanlı bir List bekler.
func Cond(column Ident, op string, v Value) (Frag, error) {
	op, err := validation.NormalizeOperator(op)
	if err != nil {
		return Frag{}, err
	}

	dst, err := appendIdent(nil, column)
	if err != nil {
		return Frag{}, err
	}
	dst = append(dst, ' ')
	dst = append(dst, op...)
	dst = append(dst, ' ')

	switch {
	case validation.IsSetOperator(op):
		list, ok := v.(List)
		if !ok {
			list = List{v}
		}
		dst = append(dst, '(')
		if dst, err = list.appendSQL(dst); err != nil {
			return Frag{}, err
		}
		dst = append(dst, ')')

	case validation.IsRangeOperator(op):
		bounds, ok := v.(List)
		if !ok || len(bounds) != 2 {
			return Frag{}, ErrInvalidBetween
		}
		if dst, err = appendValue(dst, bounds[0]); err != nil {
			return Frag{}, err
		}
		dst = append(dst, " AND "...)
		if dst, err = appendValue(dst, bounds[1]); err != nil {
			return Frag{}, err
		}

	default:
		if dst, err = appendValue(dst, v); err != nil {
			return Frag{}, err
		}
	}
	return Frag{sql: string(dst)}, nil
}

// EscapeLike, s içindeki %, _ ve kaçış karakterinin kendisini kaçışlar.
// esc boşsa ters bölü kullanılır. Sonuç, Like ile aynı kaçış karakteriyle kullanılmalıdır.
//
// Örnek:
//
//	p, _ := sqlfrag.EscapeLike("100%", "")
//	f, _ := sqlfrag.Like("%"+p+"%", "")
//	// '%100\\%%'
func EscapeLike(s, esc string) (string, error) {
	if err := validation.ValidateEscapeChar(esc); err != nil {
		return "", err
	}
	if esc == "" {
		esc = `\`
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		c := string(r)
		if c == "%" || c == "_" || c == esc {
			b.WriteString(esc)
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// Like, bir LIKE desenini tırnaklar. Kaçış karakteri ters bölü değilse
// ESCAPE '<c>' eklenir.
func Like(pattern, esc string) (Frag, error) {
	if err := validation.ValidateEscapeChar(esc); err != nil {
		return Frag{}, err
	}
	dst := grammar.AppendString(nil, pattern)
	if esc != "" && esc != `\` {
		dst = append(dst, " ESCAPE "...)
		dst = grammar.AppendString(dst, esc)
	}
	return Frag{sql: string(dst)}, nil
}

// ----------------------------------------------------------------------------
// Geometry
// ----------------------------------------------------------------------------

// PointXY, düzlemde bir noktadır.
type PointXY struct {
	X, Y float64
}

// Point, PointFromText('POINT(x y)') ifadesini üretir.
func Point(x, y float64) Frag {
	wkt := appendCoord(append([]byte(nil), "POINT("...), PointXY{x, y})
	wkt = append(wkt, ')')
	return Frag{sql: "PointFromText(" + string(grammar.AppendString(nil, string(wkt))) + ")"}
}

// Polygon, PolyFromText('POLYGON((...))') ifadesini üretir. close true ise ve
// ilk nokta son noktaya eşit değilse halka kapatılır.
func Polygon(points []PointXY, close bool) (Frag, error) {
	if len(points) == 0 {
		return Frag{}, ErrEmptyFieldSet
	}
	if close && points[0] != points[len(points)-1] {
		points = append(slices.Clip(points), points[0])
	}
	wkt := []byte("POLYGON((")
	for i, p := range points {
		if i > 0 {
			wkt = append(wkt, ',')
		}
		wkt = appendCoord(wkt, p)
	}
	wkt = append(wkt, "))"...)
	return Frag{sql: "PolyFromText(" + string(grammar.AppendString(nil, string(wkt))) + ")"}, nil
}

func appendCoord(dst []byte, p PointXY) []byte {
	dst = appendFloat(dst, p.X)
	dst = append(dst, ' ')
	return appendFloat(dst, p.Y)
}

// ----------------------------------------------------------------------------
// Intervals
// ----------------------------------------------------------------------------

// IntervalUnit, INTERVAL ifadesinin birimidir.
type IntervalUnit int

const (
	Microsecond IntervalUnit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Quarter
	Year
)

var intervalUnitNames = [...]string{
	Microsecond: "MICROSECOND",
	Second:      "SECOND",
	Minute:      "MINUTE",
	Hour:        "HOUR",
	Day:         "DAY",
	Week:        "WEEK",
	Month:       "MONTH",
	Quarter:     "QUARTER",
	Year:        "YEAR",
}

// String, birimin SQL adını döndürür.
func (u IntervalUnit) String() string {
	if u < 0 || int(u) >= len(intervalUnitNames) {
		return "IntervalUnit(" + strconv.Itoa(int(u)) + ")"
	}
	return intervalUnitNames[u]
}

// Interval, süreyi mikrosaniye hassasiyetinde INTERVAL n MICROSECOND olarak yazar.
func Interval(d time.Duration) Frag {
	return Frag{sql: "INTERVAL " + strconv.FormatInt(d.Microseconds(), 10) + " MICROSECOND"}
}

// IntervalOf, INTERVAL n UNIT ifadesini üretir.
func IntervalOf(n int64, unit IntervalUnit) (Frag, error) {
	if unit < 0 || int(unit) >= len(intervalUnitNames) {
		return Frag{}, unsupported(unit, "unknown interval unit")
	}
	return Frag{sql: "INTERVAL " + strconv.FormatInt(n, 10) + " " + intervalUnitNames[unit]}, nil
}
