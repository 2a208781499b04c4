package sqlfrag

import (
	"context"
	"database/sql"
	"errors"
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
)

/*
=======================================================================================================================
  SQLFRAG – Bağlantı Havuzu Katmanı

  Bu dosya, Frag olarak üretilmiş SQL metinlerini çalıştıran ince havuz katmanını içerir.
  Protokol, kimlik doğrulama ve TLS go-sql-driver/mysql'e; havuzlama database/sql'e;
  struct tarama sqlx'e bırakılır.

  Kurallar:
  - DB üzerindeki her çağrı havuzdan tek bir bağlantı alır ve her çıkış yolunda geri bırakır.
  - Bağlantı almak için bekleyen çağrılar sayılır (PoolStats.Pending).
  - Conn, çağıranın elinde tuttuğu sabitlenmiş bir bağlantıdır; Release sonrası kullanılamaz.
  - Transaction tek bir bağlantı üzerinde çalışır.

  @author    Ahmet ALTUN
  @github    github.com/biyonik
  @linkedin  linkedin.com/in/biyonik
  @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// QueryExecutor, *sqlx.DB, *sqlx.Conn ve *sqlx.Tx'in ortak çalıştırma yüzeyidir.
type QueryExecutor interface {
	sqlx.ExecerContext
	sqlx.QueryerContext
}

var (
	_ QueryExecutor = (*sqlx.DB)(nil)
	_ QueryExecutor = (*sqlx.Conn)(nil)
	_ QueryExecutor = (*sqlx.Tx)(nil)
)

// DB, *sqlx.DB havuzunu sarar ve Frag tabanlı çalıştırma metotları sunar.
type DB struct {
	db      *sqlx.DB
	scanner Scanner
	logger  Logger
	debug   bool
	retries int
	metrics *Collector

	pending atomic.Int64
}

// NewDB, mevcut bir sqlx havuzunu sarar.
func NewDB(db *sqlx.DB, opts ...Option) *DB {
	d := &DB{
		db:      db,
		scanner: NewDefaultScanner(),
		logger:  NopLogger{},
		retries: 3,
	}
	applyOptions(d, opts)
	return d
}

// Sqlx, alttaki *sqlx.DB'yi döndürür.
func (d *DB) Sqlx() *sqlx.DB {
	return d.db
}

// Scanner, aktif değer dönüştürücüsünü döndürür.
func (d *DB) Scanner() Scanner {
	return d.scanner
}

// Logger, aktif loglayıcıyı döndürür.
func (d *DB) Logger() Logger {
	return d.logger
}

// IsDebug, sorguların loglanıp loglanmadığını bildirir.
func (d *DB) IsDebug() bool {
	return d.debug
}

// Close, havuzu kapatır.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping, bağlantının canlı olduğunu kontrol eder.
func (d *DB) Ping(ctx context.Context) error {
	return wrapError("ping", d.db.PingContext(ctx))
}

// Stats, havuzun anlık göstergelerini döndürür.
func (d *DB) Stats() PoolStats {
	s := d.db.Stats()
	return PoolStats{
		Active:  s.InUse,
		Idle:    s.Idle,
		Total:   s.OpenConnections,
		Pending: int(d.pending.Load()),
	}
}

// Conn, havuzdan bir bağlantı alır ve sabitler. Çağıran Release etmelidir.
func (d *DB) Conn(ctx context.Context) (*Conn, error) {
	d.pending.Add(1)
	conn, err := d.db.Connx(ctx)
	d.pending.Add(-1)
	if err != nil {
		return nil, &QueryError{Op: "acquire connection", Err: err}
	}

	c := &Conn{conn: conn}
	c.session = session{x: conn, db: d, check: c.check}
	return c, nil
}

// withConn, fn'i havuzdan alınan tek bir bağlantıda çalıştırır ve bağlantıyı bırakır.
func (d *DB) withConn(ctx context.Context, fn func(*Conn) error) error {
	c, err := d.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = c.Release() }()
	return fn(c)
}

// Query, sorguyu çalıştırır ve tüm satırları Record olarak döndürür.
func (d *DB) Query(ctx context.Context, q Frag) (records []Record, err error) {
	err = d.withConn(ctx, func(c *Conn) error {
		records, err = c.Query(ctx, q)
		return err
	})
	return records, err
}

// Select, satırları sqlx ile dest dilimine tarar.
func (d *DB) Select(ctx context.Context, dest any, q Frag) error {
	return d.withConn(ctx, func(c *Conn) error {
		return c.Select(ctx, dest, q)
	})
}

// Get, tek satırı sqlx ile dest struct'ına tarar. Satır yoksa ErrNoRows döner.
func (d *DB) Get(ctx context.Context, dest any, q Frag) error {
	return d.withConn(ctx, func(c *Conn) error {
		return c.Get(ctx, dest, q)
	})
}

// Row, sorgunun ilk satırını döndürür. Satır yoksa ErrNoRows döner.
func (d *DB) Row(ctx context.Context, q Frag) (rec Record, err error) {
	err = d.withConn(ctx, func(c *Conn) error {
		rec, err = c.Row(ctx, q)
		return err
	})
	return rec, err
}

// Value, tek kolonlu sorgunun ilk değerini döndürür.
func (d *DB) Value(ctx context.Context, q Frag) (v any, err error) {
	err = d.withConn(ctx, func(c *Conn) error {
		v, err = c.Value(ctx, q)
		return err
	})
	return v, err
}

// Exists, sorgunun en az bir satır döndürüp döndürmediğini bildirir.
func (d *DB) Exists(ctx context.Context, q Frag) (ok bool, err error) {
	err = d.withConn(ctx, func(c *Conn) error {
		ok, err = c.Exists(ctx, q)
		return err
	})
	return ok, err
}

// Count, sorgunun döndüreceği satır sayısını hesaplar.
func (d *DB) Count(ctx context.Context, q Frag) (n int64, err error) {
	err = d.withConn(ctx, func(c *Conn) error {
		n, err = c.Count(ctx, q)
		return err
	})
	return n, err
}

// Exec, satır döndürmeyen bir komutu çalıştırır.
func (d *DB) Exec(ctx context.Context, q Frag) (res *QueryResult, err error) {
	err = d.withConn(ctx, func(c *Conn) error {
		res, err = c.Exec(ctx, q)
		return err
	})
	return res, err
}

// Stream, satırları tek tek üretir. Bağlantı döngü boyunca sabit kalır ve
// döngü bittiğinde (erken çıkış dahil) bırakılır.
//
// Örnek:
//
//	for rec, err := range db.Stream(ctx, q) {
//	    if err != nil {
//	        return err
//	    }
//	    process(rec)
//	}
func (d *DB) Stream(ctx context.Context, q Frag) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		c, err := d.Conn(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		defer func() { _ = c.Release() }()

		for rec, err := range c.Stream(ctx, q) {
			if !yield(rec, err) {
				return
			}
		}
	}
}

// ----------------------------------------------------------------------------
// Conn
// ----------------------------------------------------------------------------

// Conn, havuzdan alınmış ve çağırana sabitlenmiş bir bağlantıdır.
// Release birden çok kez çağrılabilir; sonrasında tüm metotlar ErrConnReleased döndürür.
type Conn struct {
	session
	conn *sqlx.Conn

	mu       sync.Mutex
	released bool
}

func (c *Conn) check() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return ErrConnReleased
	}
	return nil
}

// Release, bağlantıyı havuza geri bırakır.
func (c *Conn) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return nil
	}
	c.released = true
	return wrapError("release connection", c.conn.Close())
}

// BeginTx, bu bağlantı üzerinde bir transaction başlatır.
// Transaction kapandığında bağlantı sabit kalmaya devam eder.
func (c *Conn) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Transaction, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	tx, err := c.conn.BeginTxx(ctx, opts)
	if err != nil {
		return nil, &QueryError{Op: "begin transaction", Err: err}
	}
	return newTransaction(tx, c.db, nil), nil
}

// ----------------------------------------------------------------------------
// session: Conn ve Transaction'ın ortak sorgu metotları
// ----------------------------------------------------------------------------

type session struct {
	x     QueryExecutor
	db    *DB
	check func() error
}

func (s *session) observe(op, query string, start time.Time, err error) {
	elapsed := time.Since(start)
	if errors.Is(err, ErrNoRows) {
		err = nil
	}
	if s.db.debug {
		s.db.logger.Log(query, elapsed, err)
	}
	if s.db.metrics != nil {
		s.db.metrics.observe(op, elapsed, err)
	}
}

func (s *session) fail(op, query string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	return &QueryError{Op: op, Query: query, Err: err}
}

// Query, sorguyu çalıştırır ve tüm satırları Record olarak döndürür.
func (s *session) Query(ctx context.Context, q Frag) ([]Record, error) {
	records := make([]Record, 0)
	for rec, err := range s.Stream(ctx, q) {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Stream, satırları tek tek üretir.
func (s *session) Stream(ctx context.Context, q Frag) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		if err := s.check(); err != nil {
			yield(nil, err)
			return
		}

		query := q.SQL()
		start := time.Now()
		var err error
		defer func() { s.observe("query", query, start, err) }()

		rows, err := s.x.QueryxContext(ctx, query)
		if err != nil {
			err = s.fail("query", query, err)
			yield(nil, err)
			return
		}
		defer rows.Close()

		cols, err := rows.ColumnTypes()
		if err != nil {
			err = s.fail("query", query, err)
			yield(nil, err)
			return
		}

		for rows.Next() {
			var rec Record
			if rec, err = scanRecord(rows, cols, s.db.scanner); err != nil {
				yield(nil, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err = rows.Err(); err != nil {
			err = s.fail("query", query, err)
			yield(nil, err)
		}
	}
}

// first, sorgunun ilk satırını ve kolon bilgisini döndürür.
func (s *session) first(ctx context.Context, op string, q Frag) (rec Record, cols []*sql.ColumnType, err error) {
	if err = s.check(); err != nil {
		return nil, nil, err
	}

	query := q.SQL()
	start := time.Now()
	defer func() { s.observe(op, query, start, err) }()

	rows, err := s.x.QueryxContext(ctx, query)
	if err != nil {
		return nil, nil, s.fail(op, query, err)
	}
	defer rows.Close()

	if cols, err = rows.ColumnTypes(); err != nil {
		return nil, nil, s.fail(op, query, err)
	}
	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, cols, s.fail(op, query, err)
		}
		return nil, cols, ErrNoRows
	}
	rec, err = scanRecord(rows, cols, s.db.scanner)
	return rec, cols, err
}

// Select, satırları sqlx ile dest dilimine tarar.
func (s *session) Select(ctx context.Context, dest any, q Frag) (err error) {
	if err = s.check(); err != nil {
		return err
	}
	query := q.SQL()
	start := time.Now()
	defer func() { s.observe("select", query, start, err) }()

	if err = sqlx.SelectContext(ctx, s.x, dest, query); err != nil {
		return s.fail("select", query, err)
	}
	return nil
}

// Get, tek satırı sqlx ile dest'e tarar. Satır yoksa ErrNoRows döner.
func (s *session) Get(ctx context.Context, dest any, q Frag) (err error) {
	if err = s.check(); err != nil {
		return err
	}
	query := q.SQL()
	start := time.Now()
	defer func() { s.observe("get", query, start, err) }()

	if err = sqlx.GetContext(ctx, s.x, dest, query); err != nil {
		return s.fail("get", query, err)
	}
	return nil
}

// Row, sorguyu select * from (...) _query limit 1 ile sarar ve ilk satırı döndürür.
func (s *session) Row(ctx context.Context, q Frag) (Record, error) {
	rec, _, err := s.first(ctx, "row", wrapQuery("select * from (", q, ") _query limit 1"))
	return rec, err
}

// Value, tek kolonlu sorgunun ilk değerini döndürür.
// Kolon sayısı birden farklıysa ErrColumnCount, satır yoksa ErrNoRows döner.
func (s *session) Value(ctx context.Context, q Frag) (any, error) {
	rec, cols, err := s.first(ctx, "value", q)
	if cols != nil && len(cols) != 1 {
		return nil, ErrColumnCount
	}
	if err != nil {
		return nil, err
	}
	return rec[cols[0].Name()], nil
}

// Exists, select exists(...) sonucunu döndürür.
func (s *session) Exists(ctx context.Context, q Frag) (bool, error) {
	v, err := s.Value(ctx, wrapQuery("select exists(", q, ")"))
	if err != nil {
		return false, err
	}
	n, err := asInt64(v)
	return n != 0, err
}

// Count, select count(*) from (...) _count sonucunu döndürür.
func (s *session) Count(ctx context.Context, q Frag) (int64, error) {
	v, err := s.Value(ctx, wrapQuery("select count(*) from (", q, ") _count"))
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// Exec, satır döndürmeyen bir komutu çalıştırır.
func (s *session) Exec(ctx context.Context, q Frag) (res *QueryResult, err error) {
	if err = s.check(); err != nil {
		return nil, err
	}
	query := q.SQL()
	start := time.Now()
	defer func() { s.observe("exec", query, start, err) }()

	r, err := s.x.ExecContext(ctx, query)
	if err != nil {
		return nil, s.fail("exec", query, err)
	}
	return NewQueryResult(r), nil
}

func wrapQuery(prefix string, q Frag, suffix string) Frag {
	return Frag{sql: prefix + q.sql + suffix}
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case string:
		i, err := parseInteger(n, true)
		if err != nil {
			return 0, err
		}
		if i, ok := i.(int64); ok {
			return i, nil
		}
	}
	return 0, unsupported(v, "expected an integer result")
}
