package sqlfrag

import (
	"database/sql/driver"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"time"

	"github.com/biyonik/go-sqlfrag/dialect"
)

/*
 * ----------------------------------------------------------------------------
 * VALUE: KAÇIŞI YAPILABİLEN DEĞERLER
 * ----------------------------------------------------------------------------
 *
 * Value, SQL literal'ine çevrilebilen kapalı (sealed) bir tip kümesidir.
 * Arayüzün tek metodu dışa kapalı olduğu için paket dışında yeni bir varyant
 * tanımlanamaz; her varyant kendi kaçış kuralını appendSQL içinde taşır.
 *
 * Varyantlar: Null, Bool, Int, Uint, Float, BigInt, String, Bytes, Timestamp,
 * Date, Frag, List, Absent ve tüm Ident tipleri.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// grammar, literal üretiminde kullanılan sözcüksel kurallardır.
var grammar dialect.Grammar = dialect.MySQL()

// Value, SQL literal'ine çevrilebilen bir değerdir.
type Value interface {
	appendSQL(dst []byte) ([]byte, error)
}

type (
	// Bool, 1 veya 0 olarak yazılır.
	Bool bool

	// Int, işaretli tamsayıdır.
	Int int64

	// Uint, işaretsiz tamsayıdır.
	Uint uint64

	// Float, ondalıklı sayıdır. NaN ve sonsuz değerlerin SQL karşılığı yoktur.
	Float float64

	// String, tek tırnaklı ve kaçışlı metin literal'idir.
	String string

	// Bytes, x'..' hex literal'i olarak yazılır.
	Bytes []byte

	// List, virgülle ayrılmış değer listesidir. Parantez eklenmez.
	// Elemanlar List olamaz.
	List []Value
)

// BigInt, keyfi hassasiyetli tamsayıdır. Nil işaretçi NULL yazılır.
type BigInt struct {
	Int *big.Int
}

type nullValue struct{}

type absentValue struct{}

// invalidValue, ValueOf dönüşümünde oluşan hatayı render anına taşır.
type invalidValue struct {
	err error
}

var (
	// Null, SQL NULL değeridir.
	Null Value = nullValue{}

	// Absent, Set ve Insert tarafından atlanan alanı işaretler.
	// Başka bir bağlamda kullanılırsa hata üretir.
	Absent Value = absentValue{}
)

func (nullValue) appendSQL(dst []byte) ([]byte, error) {
	return append(dst, "NULL"...), nil
}

func (absentValue) appendSQL([]byte) ([]byte, error) {
	return nil, unsupported(Absent, "absent marker outside of a field set")
}

func (v invalidValue) appendSQL([]byte) ([]byte, error) {
	return nil, v.err
}

func (v Bool) appendSQL(dst []byte) ([]byte, error) {
	if v {
		return append(dst, '1'), nil
	}
	return append(dst, '0'), nil
}

func (v Int) appendSQL(dst []byte) ([]byte, error) {
	return strconv.AppendInt(dst, int64(v), 10), nil
}

func (v Uint) appendSQL(dst []byte) ([]byte, error) {
	return strconv.AppendUint(dst, uint64(v), 10), nil
}

func (v Float) appendSQL(dst []byte) ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, unsupported(v, "NaN and infinity have no SQL literal")
	}
	return appendFloat(dst, f), nil
}

// appendFloat, en kısa geri-dönüşümlü ondalık gösterimi yazar.
// |f| >= 1e21 veya |f| < 1e-6 için üslü gösterim kullanılır (2e+300).
func appendFloat(dst []byte, f float64) []byte {
	if f == 0 {
		return append(dst, '0')
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.AppendFloat(dst, f, 'g', -1, 64)
	}
	return strconv.AppendFloat(dst, f, 'f', -1, 64)
}

func (v BigInt) appendSQL(dst []byte) ([]byte, error) {
	if v.Int == nil {
		return append(dst, "NULL"...), nil
	}
	return v.Int.Append(dst, 10), nil
}

func (v String) appendSQL(dst []byte) ([]byte, error) {
	return grammar.AppendString(dst, string(v)), nil
}

func (v Bytes) appendSQL(dst []byte) ([]byte, error) {
	return grammar.AppendBytes(dst, v), nil
}

func (l List) appendSQL(dst []byte) ([]byte, error) {
	if len(l) == 0 {
		return append(dst, grammar.EmptyList()...), nil
	}
	var err error
	for i, item := range l {
		if _, nested := item.(List); nested {
			return nil, unsupported(l, "list element "+strconv.Itoa(i)+" is itself a list")
		}
		if i > 0 {
			dst = append(dst, ',')
		}
		if dst, err = appendValue(dst, item); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// appendValue, nil arayüzü ve nil işaretçiyi (*Timestamp(nil) gibi) NULL
// kabul ederek değeri yazar.
func appendValue(dst []byte, v Value) ([]byte, error) {
	if v == nil || isNilPointer(v) {
		return append(dst, "NULL"...), nil
	}
	return v.appendSQL(dst)
}

// isNilPointer, v'nin tipli bir nil işaretçi olup olmadığını bildirir.
// Değer alıcılı metotlar nil işaretçi üzerinden çağrılırsa panic üretir.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// ValueOf, yerel bir Go değerini Value'ya çevirir.
//
// Desteklenen tipler:
//   - nil, nil işaretçiler → Null
//   - bool, tüm int/uint genişlikleri, float32/64, big.Int, *big.Int
//   - string, []byte, time.Time (AutoFSP, UTC)
//   - Frag, Ident ve diğer tüm Value'lar olduğu gibi
//   - []any ve yukarıdaki tiplerin dilimleri → List
//   - driver.Valuer (Value() bir kez çağrılır)
//
// Diğer tipler ErrUnsupportedValueType ile eşleşen bir *ValueError döndürür.
func ValueOf(v any) (Value, error) {
	if isNilPointer(v) {
		return Null, nil
	}
	switch x := v.(type) {
	case nil:
		return Null, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(x), nil
	case int8:
		return Int(x), nil
	case int16:
		return Int(x), nil
	case int32:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case uint:
		return Uint(x), nil
	case uint8:
		return Uint(x), nil
	case uint16:
		return Uint(x), nil
	case uint32:
		return Uint(x), nil
	case uint64:
		return Uint(x), nil
	case float32:
		return Float(x), nil
	case float64:
		return Float(x), nil
	case *big.Int:
		return BigInt{Int: x}, nil
	case big.Int:
		return BigInt{Int: &x}, nil
	case string:
		return String(x), nil
	case []byte:
		return Bytes(x), nil
	case time.Time:
		return TS(x), nil
	case []any:
		return listOf(len(x), func(i int) any { return x[i] })
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return nil, &ValueError{Value: v, Reason: "driver.Valuer failed: " + err.Error(), Err: err}
		}
		if _, again := dv.(driver.Valuer); again {
			return nil, unsupported(v, "driver.Valuer returned another Valuer")
		}
		return ValueOf(dv)
	}
	return valueOfReflect(v)
}

// valueOfReflect, isimlendirilmiş tipleri (type Status string gibi) ve
// tipli dilimleri alttaki türlerine göre çevirir.
func valueOfReflect(v any) (Value, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return Null, nil
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return Bytes(b), nil
		}
		return listOf(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	}
	return nil, unsupported(v, "no SQL literal encoding")
}

func listOf(n int, at func(int) any) (Value, error) {
	list := make(List, n)
	for i := range n {
		item, err := ValueOf(at(i))
		if err != nil {
			return nil, err
		}
		if _, nested := item.(List); nested {
			return nil, unsupported(at(i), "nested lists are not allowed")
		}
		list[i] = item
	}
	return list, nil
}

// mustValue, dönüşüm hatasını render anına erteler.
func mustValue(v any) Value {
	val, err := ValueOf(v)
	if err != nil {
		return invalidValue{err: err}
	}
	return val
}
