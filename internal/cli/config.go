// Package cli, sqlfrag komut satırı aracının yapılandırma, loglama ve hata
// yardımcılarını içerir.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	sqlfrag "github.com/biyonik/go-sqlfrag"
)

const maxWalkDepth = 25

// configNames, otomatik keşifte sırayla aranan dosya adlarıdır.
var configNames = []string{"sqlfrag.yaml", "sqlfrag.yml"}

// Config, sqlfrag.yaml dosyasının karşılığıdır.
type Config struct {
	// DSN doluysa Database alanları yok sayılır.
	DSN      string         `mapstructure:"dsn"`
	Database sqlfrag.Config `mapstructure:"database"`
	Debug    bool           `mapstructure:"debug"`
}

// LoadConfig, ayarları şu öncelikle yükler: ortam değişkenleri (SQLFRAG_*) >
// yapılandırma dosyası > varsayılanlar.
//
// Yüklenen ayarları, bulunan dosyanın yolunu (yoksa boş) ve hatayı döndürür.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("SQLFRAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	d := sqlfrag.DefaultConfig()

	v.SetDefault("dsn", "")
	v.SetDefault("debug", false)

	v.SetDefault("database.driver", d.Driver)
	v.SetDefault("database.host", d.Host)
	v.SetDefault("database.port", d.Port)
	v.SetDefault("database.database", "")
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.charset", d.Charset)
	v.SetDefault("database.collation", d.Collation)
	v.SetDefault("database.sql_modes", []string{})
	v.SetDefault("database.max_open_conns", d.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", d.MaxIdleConns)
	v.SetDefault("database.conn_max_life", d.ConnMaxLife)
	v.SetDefault("database.conn_max_idle", d.ConnMaxIdle)
	v.SetDefault("database.timeout", d.Timeout)
	v.SetDefault("database.retries", d.Retries)
	v.SetDefault("database.tls", d.TLS)
}

// findConfigFile, kullanılacak yapılandırma dosyasını bulur.
// explicitPath verilmişse dosyanın varlığını doğrular. Aksi halde çalışma
// dizininden yukarı doğru sqlfrag.yaml / sqlfrag.yml arar; .git dizininde
// veya maxWalkDepth seviyede durur.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// Open, bağlantıyı şu öncelikle kurar: flagDSN, dsn alanı, database bölümü.
// İlk iki durumda yalnızca retries ayarı uygulanır; database bölümü
// kullanıldığında havuz ayarları da devreye girer ve bölüm doğrulanır.
func (c *Config) Open(ctx context.Context, flagDSN string, opts ...sqlfrag.Option) (*sqlfrag.DB, error) {
	dsn := flagDSN
	if dsn == "" {
		dsn = c.DSN
	}

	if dsn != "" {
		opts = append([]sqlfrag.Option{sqlfrag.WithRetries(c.Database.Retries)}, opts...)
		db, err := sqlfrag.Connect(ctx, dsn, opts...)
		if errors.Is(err, sqlfrag.ErrIncompatibleOptions) {
			return nil, ConfigError("unsafe dsn", err)
		}
		if err != nil {
			return nil, DBConnectError("connecting", err)
		}
		return db, nil
	}

	if c.Database.Database == "" {
		return nil, ConfigError("no connection configured", errors.New("set --dsn, dsn or database.database"))
	}
	if err := c.Database.Validate(); err != nil {
		return nil, ConfigError("invalid database section", err)
	}

	db, err := sqlfrag.ConnectWithConfig(ctx, &c.Database, opts...)
	if err != nil {
		return nil, DBConnectError("connecting", err)
	}
	return db, nil
}
