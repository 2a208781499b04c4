// Package validation, SQL parçaları üretilmeden önce girdilerin biçimini denetleyen
// dahili yardımcı fonksiyonları sağlar. Kaçış (escaping) işlemi her karakteri güvenli
// hale getirir; buradaki kontroller ise SQL olarak anlamsız olacak şekilleri
// (boş tanımlayıcı parçası, fazla nitelikli isim, geçersiz operatör vb.) erkenden yakalar.
//
// Tüm fonksiyonlar, doğrulama başarısız olduğunda detaylı bir hata döndürür;
// hatalar errors.Is ile paket düzeyindeki sentinel değerlere eşlenebilir.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
package validation

import (
	"errors"
	"strconv"
	"strings"
)

// ErrIdentifierShape, tanımlayıcının parça sayısı veya içeriği bağlamına uymadığında döner.
var ErrIdentifierShape = errors.New("sqlfrag: invalid identifier shape")

// MaxIdentifierLength, MySQL'in veritabanı, tablo ve kolon adı parçası için
// kabul ettiği en uzun değerdir. Takma adlara ve genel isimlere (Name, ID,
// Loose) uygulanmaz.
const MaxIdentifierLength = 64

// ValidateParts, çok parçalı bir tanımlayıcının şeklini kontrol eder.
// max <= 0 ise parça sayısı sınırlandırılmaz.
//
// Kontroller:
//  1. En az bir parça olmalı.
//  2. Parça sayısı max'ı geçmemeli (db: 1, tablo: 2, kolon: 3).
//  3. Hiçbir parça boş olmamalı.
//
// Uzunluk burada denetlenmez; bkz. ValidateLength.
func ValidateParts(kind string, parts []string, max int) error {
	if len(parts) == 0 {
		return &IdentifierError{
			Kind:   kind,
			Reason: "at least one segment is required",
		}
	}

	if max > 0 && len(parts) > max {
		return &IdentifierError{
			Kind:       kind,
			Identifier: strings.Join(parts, "."),
			Reason:     "expected at most " + strconv.Itoa(max) + " segments, got " + strconv.Itoa(len(parts)),
		}
	}

	for i, part := range parts {
		if part == "" {
			return &IdentifierError{
				Kind:       kind,
				Identifier: strings.Join(parts, "."),
				Reason:     "segment " + strconv.Itoa(i+1) + " is empty",
			}
		}
	}

	return nil
}

// ValidateLength, her parçanın en fazla maxLen karakter olduğunu kontrol eder.
// maxLen <= 0 ise sınır yoktur.
func ValidateLength(kind string, parts []string, maxLen int) error {
	if maxLen <= 0 {
		return nil
	}
	for _, part := range parts {
		if len([]rune(part)) > maxLen {
			return &IdentifierError{
				Kind:       kind,
				Identifier: part,
				Reason:     "segment exceeds maximum length of " + strconv.Itoa(maxLen) + " characters",
			}
		}
	}
	return nil
}

// ValidateLoose, noktalı kısa yazımın (loose mod) boş parça içermediğini kontrol eder.
// "a..b", ".a" veya "a." gibi isimler tek tek tırnaklandığında `` üretir.
func ValidateLoose(kind, name string) error {
	return ValidateParts(kind, strings.Split(name, "."), 0)
}

// IdentifierError, tanımlayıcı doğrulama hatalarını temsil eder.
type IdentifierError struct {
	Kind       string
	Identifier string
	Reason     string
}

// Error, error arayüzünü uygular.
func (e *IdentifierError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "identifier"
	}
	if e.Identifier == "" {
		return "sqlfrag: invalid " + kind + ": " + e.Reason
	}
	return "sqlfrag: invalid " + kind + " '" + e.Identifier + "': " + e.Reason
}

// Is, hatayı ErrIdentifierShape ile eşler.
func (e *IdentifierError) Is(target error) bool {
	return target == ErrIdentifierShape
}
