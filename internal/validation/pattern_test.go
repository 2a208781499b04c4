package validation

import (
	"errors"
	"testing"
)

func TestValidateEscapeChar(t *testing.T) {
	tests := []struct {
		esc     string
		wantErr bool
	}{
		{"", false},
		{`\`, false},
		{"!", false},
		{"#", false},
		{"ü", false},
		{"%", true},
		{"_", true},
		{"!!", true},
		{`\\`, true},
	}

	for _, tt := range tests {
		t.Run(tt.esc, func(t *testing.T) {
			err := ValidateEscapeChar(tt.esc)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEscapeChar(%q) error = %v, wantErr %v", tt.esc, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrEscapeChar) {
				t.Errorf("ValidateEscapeChar(%q) error %v does not match ErrEscapeChar", tt.esc, err)
			}
		})
	}
}

func TestValidateFSP(t *testing.T) {
	for fsp := 0; fsp <= MaxFSP; fsp++ {
		if err := ValidateFSP(fsp); err != nil {
			t.Errorf("ValidateFSP(%d) = %v, want nil", fsp, err)
		}
	}

	for _, fsp := range []int{-2, -1, 7, 9} {
		err := ValidateFSP(fsp)
		if !errors.Is(err, ErrPrecision) {
			t.Errorf("ValidateFSP(%d) = %v, want ErrPrecision", fsp, err)
		}
	}

	want := "sqlfrag: fsp out of range: 7 (want 0-6)"
	if got := ValidateFSP(7).Error(); got != want {
		t.Errorf("ValidateFSP(7).Error() = %q, want %q", got, want)
	}
}
