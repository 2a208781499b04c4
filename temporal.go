package sqlfrag

import (
	"errors"
	"time"

	"github.com/biyonik/go-sqlfrag/internal/validation"
)

// AutoFSP, kesirli saniye hassasiyetinin değerden çıkarılacağını belirtir:
// kesir yoksa 0, tam milisaniye ise 3, aksi halde 6 basamak.
// WithFSP(AutoFSP) sabitlenmiş bir hassasiyeti geri alır.
const AutoFSP = -1

// Timestamp, TIMESTAMP'YYYY-MM-DD HH:MM:SS[.f]' olarak yazılan bir andır.
//
// Location çıktı saat dilimidir; nil ise UTC kullanılır. Süreç yerel saat
// dilimi hiçbir zaman örtük olarak devreye girmez. Sıfır değerli bir
// Timestamp{Time: t} otomatik hassasiyet kullanır; kesir ancak WithFSP ile
// açıkça istenirse kısaltılır (yuvarlanmaz).
type Timestamp struct {
	Time     time.Time
	Location *time.Location

	// fsp, WithFSP ile verilen basamak sayısının bir fazlasıdır; 0 otomatiktir.
	fsp int
}

// TS, t için otomatik hassasiyetli ve UTC çıktılı bir Timestamp oluşturur.
func TS(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// In, çıktı saat dilimini değiştirir.
func (v Timestamp) In(loc *time.Location) Timestamp {
	v.Location = loc
	return v
}

// WithFSP, kesirli saniye hassasiyetini 0–6 basamağa sabitler.
// Aralık dışı değerler yazım sırasında ErrInvalidPrecision döndürür.
func (v Timestamp) WithFSP(fsp int) Timestamp {
	v.fsp = fsp + 1
	return v
}

// FSP, sabitlenmiş hassasiyeti döndürür. Otomatik modda AutoFSP döner.
func (v Timestamp) FSP() int {
	return v.fsp - 1
}

func (v Timestamp) appendSQL(dst []byte) ([]byte, error) {
	t := v.Time.In(locationOrUTC(v.Location))
	fsp := v.FSP()
	if fsp == AutoFSP {
		fsp = autoFSP(t)
	} else if err := validation.ValidateFSP(fsp); err != nil {
		return nil, err
	}
	return grammar.AppendTimestamp(dst, t, fsp), nil
}

func autoFSP(t time.Time) int {
	ns := t.Nanosecond()
	switch {
	case ns == 0:
		return 0
	case ns%int(time.Millisecond) == 0:
		return 3
	default:
		return 6
	}
}

// Date, yalnızca takvim gününü DATE'YYYY-MM-DD' olarak yazar.
// Gün, Location'a (nil ise UTC) çevrildikten sonra belirlenir.
type Date struct {
	Time     time.Time
	Location *time.Location
}

func (v Date) appendSQL(dst []byte) ([]byte, error) {
	return grammar.AppendDate(dst, v.Time.In(locationOrUTC(v.Location))), nil
}

func locationOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp, metni verilen giriş saat diliminde bir Timestamp'e çevirir.
// Kabul edilen biçimler: "YYYY-MM-DD HH:MM:SS[.f]", "YYYY-MM-DDTHH:MM:SS[.f]",
// "YYYY-MM-DD" ve RFC 3339 (kendi ofsetini taşır, in yok sayılır).
// Dönen değerin çıktı dilimi de in olarak ayarlanır.
func ParseTimestamp(text string, in *time.Location) (Timestamp, error) {
	loc := locationOrUTC(in)
	if t, err := time.Parse(time.RFC3339Nano, text); err == nil {
		return TS(t).In(loc), nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return TS(t).In(loc), nil
		}
	}
	return Timestamp{}, &ValueError{
		Value:  text,
		Reason: "unrecognised timestamp format",
		Err:    errors.Join(ErrUnsupportedValueType, errTimestampFormat),
	}
}

var errTimestampFormat = errors.New("expected YYYY-MM-DD[ HH:MM:SS[.f]] or RFC 3339")
