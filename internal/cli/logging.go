package cli

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// NewLogger, -v sayısına göre seviyesi belirlenen bir zap.Logger oluşturur:
// 0 → info, 1 → debug. Terminalde renkli konsol çıktısı, aksi halde JSON yazılır.
// Loglar her zaman stderr'e gider; stdout komut çıktısına ayrılmıştır.
func NewLogger(verbosity int) *zap.Logger {
	atom := zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	writer := zapcore.Lock(os.Stderr)

	var encoder zapcore.Encoder
	if term.IsTerminal(int(os.Stderr.Fd())) {
		encoder = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			MessageKey: "message",

			LevelKey:    "level",
			EncodeLevel: zapcore.CapitalColorLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.ISO8601TimeEncoder,

			NameKey: "logger",

			EncodeDuration: zapcore.StringDurationEncoder,
		})
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	return zap.New(zapcore.NewCore(encoder, writer, atom))
}
