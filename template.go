package sqlfrag

import (
	"fmt"
	"strings"
)

// Build, sabit metin parçalarını ve değerleri sırayla birleştirir.
// Metin parçaları olduğu gibi eklenir, değerler kaçışlanır.
//
// len(segments) == len(values)+1 olmalıdır; aksi programlama hatasıdır ve panic üretir.
//
// Örnek:
//
//	f, err := sqlfrag.Build([]string{"select * from t where id = ", ""}, sqlfrag.Int(4))
//	// select * from t where id = 4
func Build(segments []string, values ...Value) (Frag, error) {
	if len(segments) != len(values)+1 {
		panic(fmt.Sprintf("sqlfrag: Build called with %d segments for %d values", len(segments), len(values)))
	}

	size := 0
	for _, s := range segments {
		size += len(s)
	}
	dst := make([]byte, 0, size+16*len(values))

	var err error
	for i, v := range values {
		dst = append(dst, segments[i]...)
		if dst, err = appendValue(dst, v); err != nil {
			return Frag{}, err
		}
	}
	dst = append(dst, segments[len(segments)-1]...)
	return Frag{sql: string(dst)}, nil
}

// SQL, '?' yer tutucularını sırasıyla args ile doldurur. "??" tek bir '?' yazar.
// Değerler ValueOf ile çevrilir; Frag ve Ident argümanları kaçışsız yerleştirilir.
// Şablon, derleme zamanında sabit bir metin olmalıdır.
//
// Yer tutucu sayısı argüman sayısıyla eşleşmezse panic üretir.
//
// Örnek:
//
//	q, err := sqlfrag.SQL("select * from ? where name = ?", sqlfrag.Tbl("users"), "it's")
//	// select * from `users` where name = 'it''s'
func SQL(template string, args ...any) (Frag, error) {
	segments := splitTemplate(template)
	if len(segments) != len(args)+1 {
		panic(fmt.Sprintf("sqlfrag: SQL template has %d placeholders, got %d args", len(segments)-1, len(args)))
	}

	values := make([]Value, len(args))
	for i, a := range args {
		v, err := ValueOf(a)
		if err != nil {
			return Frag{}, err
		}
		values[i] = v
	}
	return Build(segments, values...)
}

// MustSQL, SQL gibi çalışır ancak hata durumunda panic üretir.
// Sabit cümleler için kullanılır.
func MustSQL(template string, args ...any) Frag {
	f, err := SQL(template, args...)
	if err != nil {
		panic(err)
	}
	return f
}

func splitTemplate(template string) []string {
	var segments []string
	var cur strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '?' {
			cur.WriteByte(c)
			continue
		}
		if i+1 < len(template) && template[i+1] == '?' {
			cur.WriteByte('?')
			i++
			continue
		}
		segments = append(segments, cur.String())
		cur.Reset()
	}
	return append(segments, cur.String())
}
