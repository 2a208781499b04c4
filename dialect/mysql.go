package dialect

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

/*
 * ----------------------------------------------------------------------------
 * MYSQL GRAMMAR IMPLEMENTATION
 * ----------------------------------------------------------------------------
 *
 * Bu dosya, Go değerlerini MySQL/MariaDB'nin anlayacağı literal metinlere
 * çeviren sözcüksel katmandır. Placeholder kullanılmaz; her değer, bulunduğu
 * tırnak bağlamından kaçamayacak şekilde kodlanır.
 *
 * Kurallar:
 * 1. Tanımlayıcılar backtick (`) ile sarılır, içerideki backtick'ler ikilenir.
 * 2. Metinler tek tırnakla sarılır; tek tırnak ikilenir (''), kontrol
 * karakterleri ve ters bölü (\) backslash dizileriyle kodlanır.
 * 3. İkili veri x'..' hex literal'i, zaman TIMESTAMP'..' literal'i olur.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// MySQLGrammar, Grammar arayüzünü MySQL ve MariaDB veritabanları için implemente eder.
type MySQLGrammar struct {
	BaseGrammar
}

var _ Grammar = (*MySQLGrammar)(nil)

// MySQL, yeni bir MySQL dilbilgisi örneği oluşturur.
func MySQL() *MySQLGrammar {
	return &MySQLGrammar{
		BaseGrammar: BaseGrammar{
			name:       "mysql",
			dateFormat: "2006-01-02 15:04:05",
		},
	}
}

// QuoteIdent, tek bir tanımlayıcı parçasını backtick ile sarar.
//
// Örnek: "foo`bar" -> "`foo``bar`", "foo.bar" -> "`foo.bar`"
func (g *MySQLGrammar) QuoteIdent(segment string) string {
	return "`" + strings.ReplaceAll(segment, "`", "``") + "`"
}

// QuoteIdentLoose, QuoteIdent gibi çalışır ancak noktaları nitelik ayracı kabul eder.
//
// Örnek: "users.name" -> "`users`.`name`"
func (g *MySQLGrammar) QuoteIdentLoose(name string) string {
	escaped := strings.ReplaceAll(name, "`", "``")
	return "`" + strings.ReplaceAll(escaped, ".", "`.`") + "`"
}

// AppendString, s'yi tek tırnaklı MySQL metin literal'i olarak dst'ye ekler.
//
// Yalnızca aşağıdaki baytlar dönüştürülür; geri kalan her bayt (çok baytlı
// UTF-8 dizileri dahil) olduğu gibi kopyalanır:
//
//	NUL -> \0, BS -> \b, LF -> \n, CR -> \r, TAB -> \t, 0x1A -> \Z, ' -> '', \ -> \\
func (g *MySQLGrammar) AppendString(dst []byte, s string) []byte {
	dst = append(dst, '\'')
	start := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case 0x00:
			esc = `\0`
		case '\b':
			esc = `\b`
		case '\n':
			esc = `\n`
		case '\r':
			esc = `\r`
		case '\t':
			esc = `\t`
		case 0x1A:
			esc = `\Z`
		case '\'':
			esc = `''`
		case '\\':
			esc = `\\`
		default:
			continue
		}
		dst = append(dst, s[start:i]...)
		dst = append(dst, esc...)
		start = i + 1
	}
	dst = append(dst, s[start:]...)
	return append(dst, '\'')
}

// AppendBytes, b'yi küçük harfli x'..' hex literal'i olarak ekler.
func (g *MySQLGrammar) AppendBytes(dst []byte, b []byte) []byte {
	dst = append(dst, "x'"...)
	dst = hex.AppendEncode(dst, b)
	return append(dst, '\'')
}

// AppendTimestamp, t'yi TIMESTAMP'YYYY-MM-DD HH:MM:SS[.f]' olarak ekler.
//
// fsp kesirli saniye basamak sayısıdır (0–6). Kesir yuvarlanmaz, kesilir.
// Aralık dışı değerler çağıran tarafından doğrulanmalıdır; burada 0–6'ya sıkıştırılır.
func (g *MySQLGrammar) AppendTimestamp(dst []byte, t time.Time, fsp int) []byte {
	dst = append(dst, "TIMESTAMP'"...)
	dst = t.AppendFormat(dst, g.DateFormat())
	if fsp > 6 {
		fsp = 6
	}
	if fsp > 0 {
		frac := strconv.Itoa(t.Nanosecond() + 1_000_000_000)[1:] // 9 basamak, baştaki sıfırlar korunur
		dst = append(dst, '.')
		dst = append(dst, frac[:fsp]...)
	}
	return append(dst, '\'')
}

// AppendDate, t'nin takvim gününü DATE'YYYY-MM-DD' olarak ekler.
func (g *MySQLGrammar) AppendDate(dst []byte, t time.Time) []byte {
	dst = append(dst, "DATE'"...)
	dst = t.AppendFormat(dst, "2006-01-02")
	return append(dst, '\'')
}
