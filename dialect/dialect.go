// Package dialect, SQL metni üretirken kullanılan sözcüksel (lexical) kuralları sağlar.
// Bu paket tanımlayıcıların (identifier) tırnaklanması, metin, ikili (binary) ve
// tarih/saat literal'lerinin biçimlendirilmesi gibi, motorun sözdizimine bağlı
// işlemleri tek bir yerde toplar.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package dialect

import "time"

// ----------------------------------------------------------------------------
// Grammar Interface
// ----------------------------------------------------------------------------

// Grammar, tek bir değeri veya tanımlayıcıyı motora özgü literal metne çevirir.
// Hiçbir metot I/O yapmaz; aynı girdi her zaman aynı çıktıyı üretir.
type Grammar interface {
	// Name, gramerin kimliğini döndürür (örn. "mysql").
	Name() string

	// QuoteIdent, tek bir tanımlayıcı parçasını tırnaklar (strict mod).
	// Parça içindeki nokta ayraç olarak yorumlanmaz.
	QuoteIdent(segment string) string

	// QuoteIdentLoose, noktalı bir ismi nitelik sınırlarından bölerek tırnaklar.
	// "foo.bar" → `foo`.`bar`
	QuoteIdentLoose(name string) string

	// AppendString, metni tırnaklı ve kaçışlı literal olarak dst'ye ekler.
	AppendString(dst []byte, s string) []byte

	// AppendBytes, ikili veriyi hex literal olarak dst'ye ekler.
	AppendBytes(dst []byte, b []byte) []byte

	// AppendTimestamp, zamanı verilen kesir hassasiyetiyle (0–6) TIMESTAMP literal'i olarak ekler.
	AppendTimestamp(dst []byte, t time.Time, fsp int) []byte

	// AppendDate, zamanın takvim gününü DATE literal'i olarak ekler.
	AppendDate(dst []byte, t time.Time) []byte

	// EmptyList, boş bir değer listesinin yerine geçen ifadeyi döndürür.
	EmptyList() string

	// DateFormat, tarih/saat için Go referans formatını döndürür.
	DateFormat() string
}

// ----------------------------------------------------------------------------
// Base Grammar (ortak fonksiyonlar)
// ----------------------------------------------------------------------------

// BaseGrammar, tüm gramer implementasyonları için ortak fonksiyonellik sağlar.
type BaseGrammar struct {
	name       string
	dateFormat string
}

// Name, gramerin adını döndürür.
func (g *BaseGrammar) Name() string {
	return g.name
}

// DateFormat, gramerin tarih formatını döndürür.
// Format belirtilmemişse varsayılan "2006-01-02 15:04:05" kullanılır.
func (g *BaseGrammar) DateFormat() string {
	if g.dateFormat == "" {
		return "2006-01-02 15:04:05"
	}
	return g.dateFormat
}

// EmptyList, boş liste işaretçisini döndürür. Sonuç, "x IN (...)" içinde
// geçerli SQL'dir ve hiçbir satırla eşleşmez.
func (g *BaseGrammar) EmptyList() string {
	return "/*empty*/NULL"
}
