package sqlfrag

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/biyonik/go-sqlfrag/internal/validation"
)

// Sentinel errors for go-sqlfrag.
// These errors can be checked using errors.Is().
var (
	// ErrUnsupportedValueType is returned when a Go value has no SQL literal encoding.
	ErrUnsupportedValueType = errors.New("sqlfrag: unsupported value type")

	// ErrInvalidIdentifierShape is returned when an identifier has more segments than
	// its context allows or contains an empty segment.
	ErrInvalidIdentifierShape = validation.ErrIdentifierShape

	// ErrBadEscapeCharacter is returned when a LIKE escape character is a wildcard
	// or longer than one character.
	ErrBadEscapeCharacter = validation.ErrEscapeChar

	// ErrIncompatibleOptions is returned when mutually exclusive options are combined.
	ErrIncompatibleOptions = errors.New("sqlfrag: incompatible options")

	// ErrEmptyFieldSet is returned when a clause builder has no usable fields.
	ErrEmptyFieldSet = errors.New("sqlfrag: empty field set")

	// ErrInvalidPrecision is returned when a timestamp precision is outside 0-6.
	ErrInvalidPrecision = validation.ErrPrecision

	// ErrInvalidOperator is returned when an unsupported SQL operator is used.
	ErrInvalidOperator = validation.ErrOperator

	// ErrInvalidBetween is returned when BETWEEN doesn't receive exactly 2 values.
	ErrInvalidBetween = errors.New("sqlfrag: BETWEEN requires exactly 2 values")

	// ErrFragNotText is returned when a Frag is used as ordinary text.
	ErrFragNotText = errors.New("sqlfrag: Frag cannot be converted to text implicitly, use SQL()")

	// ErrNoRows is returned when a query returns no rows.
	ErrNoRows = errors.New("sqlfrag: no rows in result set")

	// ErrColumnCount is returned when a single-value query returns other than one column.
	ErrColumnCount = errors.New("sqlfrag: expected exactly one column")

	// ErrConnReleased is returned when a released connection is used.
	ErrConnReleased = errors.New("sqlfrag: connection already released")

	// ErrTxAlreadyClosed is returned when trying to use a closed transaction.
	ErrTxAlreadyClosed = errors.New("sqlfrag: transaction already closed")
)

// ValueError describes a value that could not be escaped.
type ValueError struct {
	Value  any
	Reason string
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("sqlfrag: cannot escape %T: %s", e.Value, e.Reason)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

func unsupported(v any, reason string) error {
	return &ValueError{Value: v, Reason: reason, Err: ErrUnsupportedValueType}
}

// QueryError wraps a driver error with the SQL text that caused it.
type QueryError struct {
	Op    string
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return "sqlfrag: " + e.Op + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// StatementError is one failed statement of a batch.
type StatementError struct {
	Index int
	SQL   string
	Err   error
}

func (e StatementError) Error() string {
	return "statement " + strconv.Itoa(e.Index) + ": " + e.Err.Error()
}

func (e StatementError) Unwrap() error {
	return e.Err
}

// BatchError reports every statement that failed inside a batch transaction.
// The whole batch was rolled back.
type BatchError struct {
	Failures []StatementError
}

func (e *BatchError) Error() string {
	var b strings.Builder
	b.WriteString("sqlfrag: batch failed (")
	b.WriteString(strconv.Itoa(len(e.Failures)))
	b.WriteString(" statements)")
	for _, f := range e.Failures {
		b.WriteString("; ")
		b.WriteString(f.Error())
	}
	return b.String()
}

// Unwrap exposes every failure to errors.Is / errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// wrapError annotates err with the failed operation, keeping it matchable.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("sqlfrag: %s: %w", op, err)
}
