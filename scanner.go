package sqlfrag

import (
	"database/sql"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
)

//
// =====================================================================================
// SQLFRAG – SCANNER BİRİMİ
// -------------------------------------------------------------------------------------
// Bu dosya, sorgu sonuçlarının Record (kolon → değer) haritalarına çevrilmesini
// sağlar. MySQL metin protokolü her değeri bayt dizisi olarak taşır; Scanner,
// kolonun veritabanı tipine bakarak bu baytları anlamlı Go değerlerine dönüştürür.
//
// Dönüşüm tablosu:
//   TINYINT, SMALLINT, MEDIUMINT, INT, BIGINT, YEAR → int64 (taşarsa *big.Int)
//   FLOAT, DOUBLE                                  → float64
//   BIT(1)                                         → bool
//   BINARY, VARBINARY, *BLOB, GEOMETRY, BIT(n)     → []byte
//   DECIMAL, tarih/saat ve metin tipleri           → string (hassasiyet korunur)
//
// Struct'a tarama (Select / Get) sqlx'e bırakılır.
//
// YAZAR BİLGİSİ
// @author    Ahmet ALTUN
// @github    github.com/biyonik
// @linkedin  linkedin.com/in/biyonik
// @email     ahmet.altun60@gmail.com
// =====================================================================================
//

// Scanner, ham kolon değerlerini Go değerlerine çeviren sözleşmedir.
type Scanner interface {
	// Convert, tek bir kolon değerini çevirir. raw nil ise nil dönmelidir.
	Convert(col *sql.ColumnType, raw any) (any, error)
}

// columnKind, bir veritabanı tip adının dönüşüm sınıfıdır.
type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindUint
	kindFloat
	kindBit
	kindBinary
)

// DefaultScanner, kütüphanenin standart dönüştürücüsüdür.
// Tip adı → dönüşüm sınıfı eşlemesini önbellekte tutar.
type DefaultScanner struct {
	cache sync.Map // string → columnKind
}

var _ Scanner = (*DefaultScanner)(nil)

// NewDefaultScanner, varsayılan scanner'ı oluşturur.
func NewDefaultScanner() *DefaultScanner {
	return &DefaultScanner{}
}

func (s *DefaultScanner) kindOf(typeName string) columnKind {
	if k, ok := s.cache.Load(typeName); ok {
		return k.(columnKind)
	}
	k := classify(typeName)
	s.cache.Store(typeName, k)
	return k
}

func classify(typeName string) columnKind {
	name := strings.ToUpper(typeName)
	unsigned := strings.HasPrefix(name, "UNSIGNED ")
	name = strings.TrimPrefix(name, "UNSIGNED ")

	switch name {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT", "YEAR":
		if unsigned {
			return kindUint
		}
		return kindInt
	case "FLOAT", "DOUBLE", "REAL":
		return kindFloat
	case "BIT":
		return kindBit
	case "BINARY", "VARBINARY", "BLOB", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB", "GEOMETRY":
		return kindBinary
	default:
		return kindText
	}
}

// Convert, Scanner arayüzünü uygular.
func (s *DefaultScanner) Convert(col *sql.ColumnType, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}

	b, isBytes := raw.([]byte)
	if !isBytes {
		// İkili protokol değerleri zaten tiplidir.
		if f, ok := raw.(float32); ok {
			return float64(f), nil
		}
		return raw, nil
	}

	typeName := ""
	if col != nil {
		typeName = col.DatabaseTypeName()
	}

	switch s.kindOf(typeName) {
	case kindInt:
		return parseInteger(string(b), true)
	case kindUint:
		return parseInteger(string(b), false)
	case kindFloat:
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return nil, wrapError("convert "+typeName, err)
		}
		return f, nil
	case kindBit:
		if isSingleBit(col, b) {
			return b[0] != 0, nil
		}
		return append([]byte(nil), b...), nil
	case kindBinary:
		return append([]byte(nil), b...), nil
	default:
		return string(b), nil
	}
}

// parseInteger, int64'e sığmayan değerleri *big.Int olarak döndürür.
func parseInteger(text string, signed bool) (any, error) {
	if signed {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return n, nil
		}
	} else if n, err := strconv.ParseUint(text, 10, 64); err == nil && n <= 1<<63-1 {
		return int64(n), nil
	}
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, wrapError("convert integer", strconv.ErrSyntax)
	}
	return n, nil
}

// isSingleBit, kolonun BIT(1) olup olmadığını belirler. Sürücü uzunluk bilgisi
// vermiyorsa tek baytlık değer BIT(1) kabul edilir.
func isSingleBit(col *sql.ColumnType, b []byte) bool {
	if len(b) != 1 {
		return false
	}
	if col != nil {
		if n, ok := col.Length(); ok {
			return n == 1
		}
	}
	return true
}

// scanRecord, sqlx.Rows'un mevcut satırını Record'a çevirir.
func scanRecord(rows *sqlx.Rows, cols []*sql.ColumnType, sc Scanner) (Record, error) {
	raw, err := rows.SliceScan()
	if err != nil {
		return nil, wrapError("scan row", err)
	}
	if len(raw) != len(cols) {
		return nil, ErrColumnCount
	}
	rec := make(Record, len(raw))
	for i, v := range raw {
		conv, err := sc.Convert(cols[i], v)
		if err != nil {
			return nil, err
		}
		rec[cols[i].Name()] = conv
	}
	return rec, nil
}
