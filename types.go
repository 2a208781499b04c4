package sqlfrag

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/biyonik/go-sqlfrag/dialect"
)

/*
 * ----------------------------------------------------------------------------
 * SQLFRAG TYPE DEFINITIONS
 * ----------------------------------------------------------------------------
 *
 * Bu dosya, bağlantı havuzu katmanının veri taşıma ve yapılandırma tiplerini
 * içerir: Exec sonucu, havuz göstergeleri, satır kaydı, bağlantı ayarları ve
 * sorgu loglayıcı arayüzü.
 *
 * Config, MySQL sürücüsünün kendi DSN biçimlendiricisini kullanır ve metin
 * kaçışını geçersiz kılacak oturum ayarlarını (bazı çok baytlı karakter setleri,
 * NO_BACKSLASH_ESCAPES) bağlantı kurulmadan önce reddeder.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// ----------------------------------------------------------------------------
// Query Result Types
// ----------------------------------------------------------------------------

// QueryResult, bir INSERT, UPDATE veya DELETE işlemi sonucunda veritabanından dönen
// ham yanıtı sarmalar.
type QueryResult struct {
	result sql.Result
}

// NewQueryResult, ham sql.Result nesnesini sarmalar.
func NewQueryResult(result sql.Result) *QueryResult {
	return &QueryResult{result: result}
}

// LastInsertID, son eklenen AUTO_INCREMENT değerini döndürür.
func (r *QueryResult) LastInsertID() (int64, error) {
	if r == nil || r.result == nil {
		return 0, ErrNoRows
	}
	return r.result.LastInsertId()
}

// RowsAffected, sorgudan etkilenen satır sayısını döndürür.
func (r *QueryResult) RowsAffected() (int64, error) {
	if r == nil || r.result == nil {
		return 0, ErrNoRows
	}
	return r.result.RowsAffected()
}

// Record, tek bir sonuç satırıdır: kolon adı → Scanner tarafından çevrilmiş değer.
type Record map[string]any

// PoolStats, bağlantı havuzunun anlık göstergeleridir.
type PoolStats struct {
	Active  int // kullanımdaki bağlantılar
	Idle    int // boşta bekleyen bağlantılar
	Total   int // açık bağlantıların toplamı
	Pending int // bağlantı almak için bekleyen çağrılar
}

// ----------------------------------------------------------------------------
// Configuration Types
// ----------------------------------------------------------------------------

// Config, veritabanı bağlantısının ve havuzun ayarlarıdır.
type Config struct {
	Driver       string            `mapstructure:"driver"`
	Host         string            `mapstructure:"host"`
	Port         int               `mapstructure:"port"`
	Database     string            `mapstructure:"database"`
	Username     string            `mapstructure:"username"`
	Password     string            `mapstructure:"password"`
	Charset      string            `mapstructure:"charset"`
	Collation    string            `mapstructure:"collation"`
	SQLModes     []dialect.SQLMode `mapstructure:"sql_modes"`
	MaxOpenConns int               `mapstructure:"max_open_conns"`
	MaxIdleConns int               `mapstructure:"max_idle_conns"`
	ConnMaxLife  time.Duration     `mapstructure:"conn_max_life"`
	ConnMaxIdle  time.Duration     `mapstructure:"conn_max_idle"`
	Timeout      time.Duration     `mapstructure:"timeout"`
	Retries      int               `mapstructure:"retries"` // deadlock / lock-wait sonrası tekrar sayısı
	TLS          bool              `mapstructure:"tls"`
}

// DefaultConfig, üretim ortamına uygun varsayılan ayarları döndürür.
func DefaultConfig() *Config {
	return &Config{
		Driver:       "mysql",
		Host:         "localhost",
		Port:         3306,
		Charset:      "utf8mb4",
		Collation:    "utf8mb4_unicode_ci",
		MaxOpenConns: 25,
		MaxIdleConns: 5,
		ConnMaxLife:  5 * time.Minute,
		ConnMaxIdle:  5 * time.Minute,
		Timeout:      10 * time.Second,
		Retries:      3,
	}
}

// Validate, kaçış kurallarıyla uyumsuz ayarları reddeder.
//
// big5, cp932, gb2312, gbk, gb18030 ve sjis karakter setlerinde bir çok baytlı
// karakterin ikinci baytı ters bölü olabilir; NO_BACKSLASH_ESCAPES ise ters
// bölüyü sıradan karaktere çevirir. Her iki durumda da üretilen literal'ler
// farklı yorumlanır.
func (c *Config) Validate() error {
	if c.Driver != "" && c.Driver != "mysql" {
		return fmt.Errorf("%w: driver %q (only mysql is supported)", ErrIncompatibleOptions, c.Driver)
	}
	if err := checkCharset(c.Charset, c.Collation); err != nil {
		return err
	}
	for _, m := range c.SQLModes {
		if m.BreaksEscaping() {
			return fmt.Errorf("%w: sql mode %s disables backslash escapes", ErrIncompatibleOptions, m)
		}
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: negative retry count %d", ErrIncompatibleOptions, c.Retries)
	}
	return nil
}

// ValidateDSN, ham bir DSN'e Config.Validate ile aynı kaçış kontrollerini
// uygular: charset listesi, collation'ın karakter seti ve sql_mode.
// Connect her DSN'i bağlanmadan önce buradan geçirir.
func ValidateDSN(dsn string) error {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return err
	}

	// Sürücü charset değerini dışa açık bir alanda tutmaz.
	for _, cs := range strings.Split(dsnParam(dsn, "charset"), ",") {
		if err := checkCharset(cs, ""); err != nil {
			return err
		}
	}
	if err := checkCharset("", mc.Collation); err != nil {
		return err
	}

	// sql_mode bir ifade de olabilir: CONCAT(@@sql_mode, ',NO_BACKSLASH_ESCAPES')
	mode := strings.ToUpper(mc.Params["sql_mode"])
	if strings.Contains(mode, string(dialect.NoBackslashEscapes)) {
		return fmt.Errorf("%w: sql_mode %q disables backslash escapes", ErrIncompatibleOptions, mc.Params["sql_mode"])
	}
	return nil
}

// checkCharset, karakter setini ve collation'ın ön ekindeki karakter setini denetler.
func checkCharset(charset, collation string) error {
	if cs := strings.TrimSpace(charset); dialect.IsUnsafeCharset(cs) {
		return fmt.Errorf("%w: charset %q can swallow escape backslashes", ErrIncompatibleOptions, cs)
	}
	if cs, _, _ := strings.Cut(collation, "_"); dialect.IsUnsafeCharset(cs) {
		return fmt.Errorf("%w: collation %q uses charset %s", ErrIncompatibleOptions, collation, cs)
	}
	return nil
}

// dsnParam, DSN'in ? sonrasındaki parametrelerinden key'in çözülmüş değerini
// döndürür. Parametreler son '/' işaretinden sonra başlar.
func dsnParam(dsn, key string) string {
	_, query, ok := strings.Cut(dsn[strings.LastIndexByte(dsn, '/')+1:], "?")
	if !ok {
		return ""
	}
	for _, pair := range strings.Split(query, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if k != key {
			continue
		}
		if unescaped, err := url.QueryUnescape(v); err == nil {
			return unescaped
		}
		return v
	}
	return ""
}

// MySQLConfig, ayarları sürücünün kendi yapılandırma tipine çevirir.
func (c *Config) MySQLConfig() *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = c.Host
	if c.Port > 0 {
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	}
	mc.DBName = c.Database
	mc.Collation = c.Collation
	mc.Timeout = c.Timeout
	if c.TLS {
		mc.TLSConfig = "true"
	}

	mc.Params = map[string]string{}
	if c.Charset != "" {
		mc.Params["charset"] = c.Charset
	}
	if len(c.SQLModes) > 0 {
		mc.Params["sql_mode"] = "'" + dialect.JoinModes(c.SQLModes) + "'"
	}
	return mc
}

// DSN, sürücünün anlayacağı bağlantı dizesini üretir:
// user:pass@tcp(host:port)/db?charset=...&collation=...
func (c *Config) DSN() string {
	return c.MySQLConfig().FormatDSN()
}

// ----------------------------------------------------------------------------
// Logger Interface
// ----------------------------------------------------------------------------

// Logger, çalışan SQL metnini, süresini ve olası hatayı kaydeder.
type Logger interface {
	Log(query string, elapsed time.Duration, err error)
}

// NopLogger, tüm kayıtları yok sayar.
type NopLogger struct{}

// Log, NopLogger'ın implementasyonudur.
func (NopLogger) Log(string, time.Duration, error) {}
