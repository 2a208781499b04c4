package sqlfrag

import (
	"fmt"
	"strings"
)

/*
 * ----------------------------------------------------------------------------
 * FRAG: GÜVENLİ SQL PARÇASI
 * ----------------------------------------------------------------------------
 *
 * Frag, zaten kaçışı yapılmış ve başka bir SQL metnine olduğu gibi eklenmesi
 * güvenli olan bir SQL parçasını taşır. Paketteki her builder bir Frag üretir;
 * şablonlara gömülen Frag'ler bir daha kaçışa uğramaz.
 *
 * Frag'in metnine ulaşmanın tek yolu SQL() metodudur. fmt, JSON veya text
 * kodlaması üzerinden "sessizce" string'e çevrilmesi engellenir; bu sayede
 * tamamlanmış bir SQL cümlesi sıradan uygulama verisi gibi loglanamaz,
 * hashlenemez veya serileştirilemez.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// Frag, değiştirilemez (immutable) ve güvenli bir SQL metni parçasıdır.
// Sıfır değeri boş SQL metnini temsil eder.
type Frag struct {
	sql string
}

var (
	_ Value = Frag{}
	_ Ident = Frag{}
)

// Raw, çağıranın güvenli olduğunu garanti ettiği metni Frag olarak sarar.
// Dış kaynaklı veriyle asla kullanılmamalıdır; değerler için Escape veya SQL kullanın.
//
// Örnek:
//
//	sqlfrag.Raw("NOW()")
func Raw(text string) Frag {
	return Frag{sql: text}
}

// SQL, parçanın metnini döndürür.
func (f Frag) SQL() string {
	return f.sql
}

// IsZero, parçanın boş olup olmadığını bildirir.
func (f Frag) IsZero() bool {
	return f.sql == ""
}

// Format, fmt paketinin Frag'i metin olarak basmasını engeller.
// fmt paniği yakalar ve çıktıya %!v(PANIC=Format method: ...) yazar.
func (f Frag) Format(fmt.State, rune) {
	panic(ErrFragNotText)
}

// MarshalText her zaman ErrFragNotText döndürür.
func (f Frag) MarshalText() ([]byte, error) {
	return nil, ErrFragNotText
}

// MarshalJSON her zaman ErrFragNotText döndürür.
func (f Frag) MarshalJSON() ([]byte, error) {
	return nil, ErrFragNotText
}

func (f Frag) appendSQL(dst []byte) ([]byte, error) {
	return append(dst, f.sql...), nil
}

func (f Frag) identSQL() (string, error) {
	return f.sql, nil
}

// Join, güvenilir parçaları ayraçla birleştirir.
func Join(sep string, frags ...Frag) Frag {
	parts := make([]string, len(frags))
	for i, f := range frags {
		parts[i] = f.sql
	}
	return Frag{sql: strings.Join(parts, sep)}
}
