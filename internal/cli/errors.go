package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Çıkış kodları.
const (
	ExitSuccess   = 0
	ExitGeneral   = 1
	ExitConfig    = 2
	ExitRender    = 3
	ExitDBConnect = 4
)

// ExitError, bir hatayı süreç çıkış koduyla birlikte taşır.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode, hatanın çıkış kodunu döndürür. ExitError değilse ExitGeneral döner.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneral
}

// ExitWithError, hatayı w'ye yazar ve uygun kodla süreci sonlandırır.
func ExitWithError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
	os.Exit(ExitCode(err))
}

// ConfigError, ExitConfig kodlu bir ExitError oluşturur.
func ConfigError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitConfig, Message: msg, Err: err}
}

// RenderError, SQL parçası üretilemediğinde ExitRender kodlu bir ExitError oluşturur.
func RenderError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitRender, Message: msg, Err: err}
}

// DBConnectError, ExitDBConnect kodlu bir ExitError oluşturur.
func DBConnectError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitDBConnect, Message: msg, Err: err}
}

// GeneralError, ExitGeneral kodlu bir ExitError oluşturur.
func GeneralError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitGeneral, Message: msg, Err: err}
}
