package sqlfrag

import (
	"fmt"
	"strconv"
)

// DuplicateKey, INSERT sırasında benzersiz anahtar çakışmasında izlenecek politikadır.
type DuplicateKey int

const (
	// DuplicateKeyError, çakışmada sunucu hatası döner (varsayılan).
	DuplicateKeyError DuplicateKey = iota

	// DuplicateKeyIgnore, yeni satırı hata üretmeden yok sayar.
	// ON DUPLICATE KEY UPDATE `ilk_kolon`=`ilk_kolon` eklenir.
	DuplicateKeyIgnore

	// DuplicateKeyUpdate, mevcut satırı yeni değerlerle günceller.
	// Her alan için `kolon`=VALUES(`kolon`) eklenir.
	DuplicateKeyUpdate
)

// String, politikanın adını döndürür.
func (d DuplicateKey) String() string {
	switch d {
	case DuplicateKeyError:
		return "error"
	case DuplicateKeyIgnore:
		return "ignore"
	case DuplicateKeyUpdate:
		return "update"
	default:
		return "DuplicateKey(" + strconv.Itoa(int(d)) + ")"
	}
}

// ParseDuplicateKey, "error", "ignore" veya "update" metnini politikaya çevirir.
func ParseDuplicateKey(s string) (DuplicateKey, error) {
	switch s {
	case "", "error":
		return DuplicateKeyError, nil
	case "ignore":
		return DuplicateKeyIgnore, nil
	case "update":
		return DuplicateKeyUpdate, nil
	}
	return 0, fmt.Errorf("%w: unknown duplicate-key policy %q", ErrIncompatibleOptions, s)
}

type insertOptions struct {
	ignore    bool
	dup       DuplicateKey
	dupIsSet  bool
	conflicts []string
}

// InsertOption, Insert davranışını değiştiren fonksiyonel seçenektir.
type InsertOption func(*insertOptions)

// Ignore, INSERT IGNORE kullanır. Çakışma politikasından bağımsızdır.
func Ignore() InsertOption {
	return func(o *insertOptions) {
		o.ignore = true
	}
}

// OnDuplicateKey, anahtar çakışması politikasını seçer.
// Aynı çağrıda iki farklı politika verilirse Insert ErrIncompatibleOptions döndürür.
func OnDuplicateKey(policy DuplicateKey) InsertOption {
	return func(o *insertOptions) {
		if o.dupIsSet && o.dup != policy {
			o.conflicts = append(o.conflicts, o.dup.String()+" vs "+policy.String())
		}
		o.dup = policy
		o.dupIsSet = true
	}
}

// Insert, INSERT [IGNORE ]INTO <tablo> SET <atamalar> cümlesini üretir ve
// seçilen politikaya göre ON DUPLICATE KEY UPDATE bölümünü ekler.
//
// Örnek:
//
//	sqlfrag.Insert(sqlfrag.Tbl("t"), sqlfrag.Fields{sqlfrag.F("a", 1)},
//	    sqlfrag.OnDuplicateKey(sqlfrag.DuplicateKeyUpdate))
//	// INSERT INTO `t` SET `a`=1 ON DUPLICATE KEY UPDATE `a`=VALUES(`a`)
func Insert(table Ident, data Fields, opts ...InsertOption) (Frag, error) {
	var o insertOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if len(o.conflicts) > 0 {
		return Frag{}, fmt.Errorf("%w: duplicate-key policy %s", ErrIncompatibleOptions, o.conflicts[0])
	}

	rendered, err := renderFields(data)
	if err != nil {
		return Frag{}, err
	}

	dst := []byte("INSERT ")
	if o.ignore {
		dst = append(dst, "IGNORE "...)
	}
	dst = append(dst, "INTO "...)
	if dst, err = appendIdent(dst, table); err != nil {
		return Frag{}, err
	}
	dst = append(dst, " SET "...)
	dst = appendAssignments(dst, rendered)

	switch o.dup {
	case DuplicateKeyIgnore:
		col := rendered[0].column
		dst = append(dst, " ON DUPLICATE KEY UPDATE "...)
		dst = append(dst, col...)
		dst = append(dst, '=')
		dst = append(dst, col...)
	case DuplicateKeyUpdate:
		dst = append(dst, " ON DUPLICATE KEY UPDATE "...)
		for i, f := range rendered {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = append(dst, f.column...)
			dst = append(dst, "=VALUES("...)
			dst = append(dst, f.column...)
			dst = append(dst, ')')
		}
	}
	return Frag{sql: string(dst)}, nil
}

// InsertMap, Insert'in map sürümüdür. Anahtarlar loose modda ve sıralı yazılır.
func InsertMap(table Ident, data map[string]any, opts ...InsertOption) (Frag, error) {
	return Insert(table, fieldsFromMap(data), opts...)
}
