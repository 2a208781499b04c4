package validation

import (
	"errors"
	"sort"
	"strings"
)

// ErrOperator, beyaz listede olmayan bir operatör kullanıldığında döner.
var ErrOperator = errors.New("sqlfrag: invalid SQL operator")

// allowedOperators, güvenli kabul edilen SQL operatörlerini tanımlar.
var allowedOperators = map[string]bool{
	// Karşılaştırma operatörleri
	"=":  true,
	"!=": true,
	"<>": true,
	"<":  true,
	">":  true,
	"<=": true,
	">=": true,

	// Desen eşleştirme operatörleri
	"LIKE":     true,
	"NOT LIKE": true,

	// NULL kontrolü operatörleri
	"IS":     true,
	"IS NOT": true,

	// Küme operatörleri
	"IN":          true,
	"NOT IN":      true,
	"BETWEEN":     true,
	"NOT BETWEEN": true,

	"<=>": true, // MySQL NULL güvenli eşitliği
}

// NormalizeOperator, bir operatörü standart biçime (büyük harf, tek boşluk) getirir.
// Geçersiz operatör girilirse hata döner.
func NormalizeOperator(op string) (string, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(op), " "))

	if !allowedOperators[normalized] {
		return "", &OperatorError{
			Operator: op,
			Reason:   "operator not in allowed list",
		}
	}

	return normalized, nil
}

// IsSetOperator, operatörün parantezli liste bekleyip beklemediğini (IN / NOT IN) döndürür.
func IsSetOperator(op string) bool {
	return op == "IN" || op == "NOT IN"
}

// IsRangeOperator, operatörün iki sınır değer bekleyip beklemediğini (BETWEEN / NOT BETWEEN) döndürür.
func IsRangeOperator(op string) bool {
	return op == "BETWEEN" || op == "NOT BETWEEN"
}

// IsNullOperator, operatörün NULL kontrolü (IS / IS NOT) olup olmadığını döndürür.
func IsNullOperator(op string) bool {
	return op == "IS" || op == "IS NOT"
}

// AllowedOperators, izin verilen tüm operatörleri sıralı olarak döndürür.
func AllowedOperators() []string {
	ops := make([]string, 0, len(allowedOperators))
	for op := range allowedOperators {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// OperatorError, operatör doğrulama hatasını temsil eder.
type OperatorError struct {
	Operator string
	Reason   string
}

// Error, error arayüzünü uygular.
func (e *OperatorError) Error() string {
	return "sqlfrag: invalid operator '" + e.Operator + "': " + e.Reason
}

// Is, hatayı ErrOperator ile eşler.
func (e *OperatorError) Is(target error) bool {
	return target == ErrOperator
}
