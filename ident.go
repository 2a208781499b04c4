package sqlfrag

import (
	"strings"

	"github.com/biyonik/go-sqlfrag/internal/validation"
)

// Ident, backtick ile tırnaklanan bir SQL ismidir (veritabanı, tablo, kolon).
// Bir Ident aynı zamanda Value'dur; şablonlara doğrudan gömülebilir.
type Ident interface {
	Value
	identSQL() (string, error)
}

// qualified, her parçası ayrı tırnaklanan (strict) çok parçalı bir isimdir.
type qualified struct {
	kind   string
	parts  []string
	max    int
	maxLen int
}

// looseIdent, noktaları nitelik ayracı olarak yorumlanan kısa yazımdır.
type looseIdent string

var (
	_ Ident = qualified{}
	_ Ident = looseIdent("")
)

// Name, tek parçalı strict bir isim oluşturur. İçindeki nokta ayraç değildir:
// Name("foo.bar") → `foo.bar`.
func Name(name string) Ident {
	return qualified{kind: "identifier", parts: []string{name}, max: 1}
}

// ID, her parçası ayrı tırnaklanan nitelikli bir isim oluşturur.
// ID("foo", "bar") → `foo`.`bar`
func ID(parts ...string) Ident {
	return qualified{kind: "identifier", parts: parts}
}

// Database, veritabanı adıdır (tek parça).
func Database(name string) Ident {
	return qualified{kind: "database", parts: []string{name}, max: 1, maxLen: validation.MaxIdentifierLength}
}

// Tbl, tablo adıdır: [veritabanı.]tablo (1–2 parça).
func Tbl(parts ...string) Ident {
	return qualified{kind: "table", parts: parts, max: 2, maxLen: validation.MaxIdentifierLength}
}

// Col, kolon adıdır: [[veritabanı.]tablo.]kolon (1–3 parça).
func Col(parts ...string) Ident {
	return qualified{kind: "column", parts: parts, max: 3, maxLen: validation.MaxIdentifierLength}
}

// Loose, noktalı kısa yazımı parçalarına ayırarak tırnaklar.
// Loose("users.id") → `users`.`id`
func Loose(name string) Ident {
	return looseIdent(name)
}

func (q qualified) identSQL() (string, error) {
	if err := validation.ValidateParts(q.kind, q.parts, q.max); err != nil {
		return "", err
	}
	if err := validation.ValidateLength(q.kind, q.parts, q.maxLen); err != nil {
		return "", err
	}
	quoted := make([]string, len(q.parts))
	for i, p := range q.parts {
		quoted[i] = grammar.QuoteIdent(p)
	}
	return strings.Join(quoted, "."), nil
}

func (q qualified) appendSQL(dst []byte) ([]byte, error) {
	s, err := q.identSQL()
	if err != nil {
		return nil, err
	}
	return append(dst, s...), nil
}

func (l looseIdent) identSQL() (string, error) {
	if err := validation.ValidateLoose("identifier", string(l)); err != nil {
		return "", err
	}
	return grammar.QuoteIdentLoose(string(l)), nil
}

func (l looseIdent) appendSQL(dst []byte) ([]byte, error) {
	s, err := l.identSQL()
	if err != nil {
		return nil, err
	}
	return append(dst, s...), nil
}

// appendIdent, nil Ident'i reddederek ismi yazar.
func appendIdent(dst []byte, id Ident) ([]byte, error) {
	if id == nil || isNilPointer(id) {
		return nil, &validation.IdentifierError{Reason: "identifier is nil"}
	}
	s, err := id.identSQL()
	if err != nil {
		return nil, err
	}
	return append(dst, s...), nil
}
