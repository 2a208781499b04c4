package sqlfrag

// -----------------------------------------------------------------------------
//  Bu dosya, DB davranışını kurulum anında değiştiren fonksiyonel seçenekleri
//  (Option) içerir. Her With* fonksiyonu NewDB veya Connect çağrısına eklenir.
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// Option, bir *DB örneği üzerinde çalışan yapılandırma fonksiyonudur.
type Option func(*DB)

// WithScanner, sonuç değerlerini Record'a çeviren dönüştürücüyü değiştirir.
//
// Örnek:
//
//	db := sqlfrag.NewDB(sqlxDB, sqlfrag.WithScanner(customScanner))
func WithScanner(s Scanner) Option {
	return func(d *DB) {
		if s != nil {
			d.scanner = s
		}
	}
}

// WithDebug, debug modunu açar veya kapatır.
// Debug açıkken çalışan her sorgu Logger'a gönderilir.
func WithDebug(enabled bool) Option {
	return func(d *DB) {
		d.debug = enabled
	}
}

// WithLogger, sorgu loglayıcısını ayarlar. WithDebug(true) ile birlikte kullanılır.
//
// Örnek:
//
//	db := sqlfrag.NewDB(sqlxDB,
//	    sqlfrag.WithDebug(true),
//	    sqlfrag.WithLogger(sqlfrag.NewZapLogger(zapLogger)),
//	)
func WithLogger(logger Logger) Option {
	return func(d *DB) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithRetries, DB.Transaction'ın deadlock / lock-wait sonrası kaç kez yeniden
// deneyeceğini belirler. 0 yeniden denemeyi kapatır.
func WithRetries(n int) Option {
	return func(d *DB) {
		if n >= 0 {
			d.retries = n
		}
	}
}

// WithMetrics, havuz göstergelerini ve sorgu sürelerini collector'a bağlar.
// Bir Collector yalnızca bir DB'ye bağlanabilir.
func WithMetrics(c *Collector) Option {
	return func(d *DB) {
		if c != nil {
			c.stats = d.Stats
			d.metrics = c
		}
	}
}

// applyOptions, verilen seçenekleri sırayla uygular; nil seçenekler atlanır.
func applyOptions(d *DB, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
}
