// Package sqlfrag, tip güvenli değerlerden placeholder kullanmadan güvenli SQL
// metni üreten ve bu metni bağlantı havuzu üzerinden çalıştıran bir kütüphanedir.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package sqlfrag

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Version, go-sqlfrag kütüphanesinin mevcut sürümünü belirtir.
const Version = "0.2.0"

// Connect, verilen DSN ile yeni bir havuz açar, bağlantıyı doğrular ve DB döndürür.
// Kaçışı bozan charset, collation veya sql_mode içeren DSN'ler ErrIncompatibleOptions
// ile reddedilir (bkz. ValidateDSN).
//
// Örnek:
//
//	db, err := sqlfrag.Connect(ctx, "user:pass@tcp(localhost:3306)/dbname")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
func Connect(ctx context.Context, dsn string, opts ...Option) (*DB, error) {
	if err := ValidateDSN(dsn); err != nil {
		return nil, wrapError("connect", err)
	}

	sqlxDB, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, wrapError("connect", err)
	}

	if err := sqlxDB.PingContext(ctx); err != nil {
		_ = sqlxDB.Close()
		return nil, wrapError("ping", err)
	}

	return NewDB(sqlxDB, opts...), nil
}

// ConnectWithConfig, Config'i doğrular, DSN üretir ve havuz ayarlarını uygular.
// cfg nil ise DefaultConfig kullanılır. Config.Retries, WithRetries ile ezilebilir.
//
// Örnek:
//
//	cfg := sqlfrag.DefaultConfig()
//	cfg.Database = "app"
//	cfg.Username = "app"
//	db, err := sqlfrag.ConnectWithConfig(ctx, cfg)
func ConnectWithConfig(ctx context.Context, cfg *Config, opts ...Option) (*DB, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts = append([]Option{WithRetries(cfg.Retries)}, opts...)
	db, err := Connect(ctx, cfg.DSN(), opts...)
	if err != nil {
		return nil, err
	}

	// Bağlantı havuz ayarlarını uygula
	if cfg.MaxOpenConns > 0 {
		db.db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLife > 0 {
		db.db.SetConnMaxLifetime(cfg.ConnMaxLife)
	}
	if cfg.ConnMaxIdle > 0 {
		db.db.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	}

	return db, nil
}
