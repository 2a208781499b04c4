package validation

import (
	"errors"
	"strconv"
	"unicode/utf8"
)

var (
	// ErrEscapeChar, LIKE kaçış karakteri joker karakter veya birden fazla karakter olduğunda döner.
	ErrEscapeChar = errors.New("sqlfrag: bad LIKE escape character")

	// ErrPrecision, kesirli saniye hassasiyeti 0–6 aralığı dışında olduğunda döner.
	ErrPrecision = errors.New("sqlfrag: fractional seconds precision out of range")
)

// MaxFSP, MySQL'in TIMESTAMP/DATETIME için desteklediği en yüksek kesirli saniye hassasiyetidir.
const MaxFSP = 6

// ValidateEscapeChar, LIKE ifadesinde kullanılacak kaçış karakterini kontrol eder.
// Boş string varsayılan ters bölü anlamına gelir ve geçerlidir.
func ValidateEscapeChar(esc string) error {
	if esc == "" {
		return nil
	}
	if utf8.RuneCountInString(esc) != 1 {
		return &PatternError{Escape: esc, Reason: "escape must be a single character"}
	}
	if esc == "%" || esc == "_" {
		return &PatternError{Escape: esc, Reason: "escape cannot be a wildcard character"}
	}
	return nil
}

// ValidateFSP, kesirli saniye hassasiyetinin 0–6 aralığında olduğunu kontrol eder.
func ValidateFSP(fsp int) error {
	if fsp < 0 || fsp > MaxFSP {
		return &PrecisionError{FSP: fsp}
	}
	return nil
}

// PatternError, LIKE kaçış karakteri hatasını temsil eder.
type PatternError struct {
	Escape string
	Reason string
}

// Error, error arayüzünü uygular.
func (e *PatternError) Error() string {
	return "sqlfrag: bad escape character " + strconv.Quote(e.Escape) + ": " + e.Reason
}

// Is, hatayı ErrEscapeChar ile eşler.
func (e *PatternError) Is(target error) bool {
	return target == ErrEscapeChar
}

// PrecisionError, geçersiz kesirli saniye hassasiyetini temsil eder.
type PrecisionError struct {
	FSP int
}

// Error, error arayüzünü uygular.
func (e *PrecisionError) Error() string {
	return "sqlfrag: fsp out of range: " + strconv.Itoa(e.FSP) + " (want 0-6)"
}

// Is, hatayı ErrPrecision ile eşler.
func (e *PrecisionError) Is(target error) bool {
	return target == ErrPrecision
}
