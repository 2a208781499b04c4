package sqlfrag

import (
	"time"

	"go.uber.org/zap"
)

// ZapLogger, sorgu kayıtlarını bir zap.Logger'a yazar.
// Başarılı sorgular Debug, hatalı sorgular Error seviyesinde yazılır.
type ZapLogger struct {
	l *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// NewZapLogger, l için bir Logger adaptörü oluşturur. l nil ise zap.L() kullanılır.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.L()
	}
	return &ZapLogger{l: l.Named("sqlfrag")}
}

// Log, Logger arayüzünü uygular.
func (z *ZapLogger) Log(query string, elapsed time.Duration, err error) {
	if err != nil {
		z.l.Error("query failed",
			zap.String("query", query),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return
	}
	z.l.Debug("query",
		zap.String("query", query),
		zap.Duration("elapsed", elapsed))
}
