package sqlfrag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var plus3 = time.FixedZone("UTC+3", 3*60*60)

func TestTimestamp(t *testing.T) {
	base := time.Date(2009, 2, 13, 23, 31, 30, 0, time.UTC)

	tests := []struct {
		name  string
		input Timestamp
		want  string
	}{
		{"whole seconds", TS(base), "TIMESTAMP'2009-02-13 23:31:30'"},
		{"milliseconds", TS(base.Add(123 * time.Millisecond)), "TIMESTAMP'2009-02-13 23:31:30.123'"},
		{"leading zero millis", TS(base.Add(5 * time.Millisecond)), "TIMESTAMP'2009-02-13 23:31:30.005'"},
		{"microseconds kept", TS(base.Add(123456 * time.Microsecond)), "TIMESTAMP'2009-02-13 23:31:30.123456'"},
		{"nanoseconds truncated", TS(base.Add(123456789)), "TIMESTAMP'2009-02-13 23:31:30.123456'"},
		{"explicit fsp 0", TS(base.Add(999 * time.Millisecond)).WithFSP(0), "TIMESTAMP'2009-02-13 23:31:30'"},
		{"explicit fsp 2 truncates", TS(base.Add(199 * time.Millisecond)).WithFSP(2), "TIMESTAMP'2009-02-13 23:31:30.19'"},
		{"explicit fsp 6 pads", TS(base).WithFSP(6), "TIMESTAMP'2009-02-13 23:31:30.000000'"},
		{"output zone", TS(base).In(plus3), "TIMESTAMP'2009-02-14 02:31:30'"},
		{"input zone ignored", TS(base.In(plus3)), "TIMESTAMP'2009-02-13 23:31:30'"},
		{"zero value struct keeps millis", Timestamp{Time: base.Add(123 * time.Millisecond)}, "TIMESTAMP'2009-02-13 23:31:30.123'"},
		{"zero value struct keeps micros", Timestamp{Time: base.Add(1500 * time.Microsecond), Location: plus3}, "TIMESTAMP'2009-02-14 02:31:30.001500'"},
		{"explicit fsp reset to auto", TS(base.Add(5 * time.Millisecond)).WithFSP(0).WithFSP(AutoFSP), "TIMESTAMP'2009-02-13 23:31:30.005'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Escape(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.SQL())
		})
	}
}

func TestTimestamp_FSP(t *testing.T) {
	base := time.Date(2009, 2, 13, 23, 31, 30, 0, time.UTC)

	assert.Equal(t, AutoFSP, Timestamp{Time: base}.FSP())
	assert.Equal(t, AutoFSP, TS(base).FSP())
	assert.Equal(t, 0, TS(base).WithFSP(0).FSP())
	assert.Equal(t, 6, TS(base).WithFSP(6).FSP())
}

func TestTimestamp_InvalidPrecision(t *testing.T) {
	base := time.Date(2009, 2, 13, 23, 31, 30, 0, time.UTC)
	for _, fsp := range []int{-2, 7, 100} {
		_, err := Escape(TS(base).WithFSP(fsp))
		assert.ErrorIs(t, err, ErrInvalidPrecision, "fsp %d", fsp)
	}
}

func TestDate(t *testing.T) {
	// 01:00 at UTC+3 is the previous day in UTC.
	ts := time.Date(2020, 1, 2, 1, 0, 0, 0, plus3)

	f, err := Escape(Date{Time: ts})
	require.NoError(t, err)
	assert.Equal(t, "DATE'2020-01-01'", f.SQL())

	f, err = Escape(Date{Time: ts, Location: plus3})
	require.NoError(t, err)
	assert.Equal(t, "DATE'2020-01-02'", f.SQL())
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		text string
		in   *time.Location
		want string
	}{
		{"space layout in zone", "2020-01-02 03:04:05.5", plus3, "TIMESTAMP'2020-01-02 03:04:05.500'"},
		{"T layout utc", "2020-01-02T03:04:05", nil, "TIMESTAMP'2020-01-02 03:04:05'"},
		{"date only", "2020-01-02", nil, "TIMESTAMP'2020-01-02 00:00:00'"},
		{"rfc3339 rendered in zone", "2020-01-02T00:00:00Z", plus3, "TIMESTAMP'2020-01-02 03:00:00'"},
		{"microseconds", "2020-01-02 03:04:05.000001", nil, "TIMESTAMP'2020-01-02 03:04:05.000001'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := ParseTimestamp(tt.text, tt.in)
			require.NoError(t, err)
			f, err := Escape(ts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.SQL())
		})
	}

	ts, err := ParseTimestamp("2020-01-02 03:04:05", plus3)
	require.NoError(t, err)
	assert.True(t, ts.Time.Equal(time.Date(2020, 1, 2, 0, 4, 5, 0, time.UTC)))

	_, err = ParseTimestamp("yesterday", nil)
	assert.ErrorIs(t, err, ErrUnsupportedValueType)
}
