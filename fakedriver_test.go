package sqlfrag

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
)

// fakeColumn is a result column with its MySQL type name.
type fakeColumn struct {
	name     string
	typeName string
}

// fakeResult is what the fake server answers for one statement.
type fakeResult struct {
	columns      []fakeColumn
	rows         [][]driver.Value
	lastInsertID int64
	rowsAffected int64
	err          error
}

// fakeServer records every statement it receives, including transaction
// control, and answers through handler.
type fakeServer struct {
	mu      sync.Mutex
	log     []string
	handler func(query string) fakeResult
}

func (s *fakeServer) record(query string) {
	s.mu.Lock()
	s.log = append(s.log, query)
	s.mu.Unlock()
}

// Queries returns a copy of the statement log.
func (s *fakeServer) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.log...)
}

func (s *fakeServer) answer(query string) fakeResult {
	s.record(query)
	if s.handler == nil {
		return fakeResult{}
	}
	return s.handler(query)
}

var (
	fakeServers sync.Map // dsn → *fakeServer
	fakeSeq     atomic.Int64
)

func init() {
	sql.Register("sqlfrag-fake", fakeDriver{})
}

// newFakeDB opens a pool against a fresh fake server.
func newFakeDB(t *testing.T, handler func(query string) fakeResult, opts ...Option) (*DB, *fakeServer) {
	t.Helper()

	srv := &fakeServer{handler: handler}
	dsn := "fake-" + strconv.FormatInt(fakeSeq.Add(1), 10)
	fakeServers.Store(dsn, srv)

	sqlDB, err := sql.Open("sqlfrag-fake", dsn)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	db := NewDB(sqlx.NewDb(sqlDB, "mysql"), opts...)
	t.Cleanup(func() {
		_ = db.Close()
		fakeServers.Delete(dsn)
	})
	return db, srv
}

// rowsOf builds a single-column result whose values arrive as text, the way
// the MySQL text protocol delivers them.
func rowsOf(name, typeName string, values ...string) fakeResult {
	res := fakeResult{columns: []fakeColumn{{name, typeName}}}
	for _, v := range values {
		res.rows = append(res.rows, []driver.Value{[]byte(v)})
	}
	return res
}

type fakeDriver struct{}

func (fakeDriver) Open(dsn string) (driver.Conn, error) {
	srv, ok := fakeServers.Load(dsn)
	if !ok {
		return nil, errors.New("fake: unknown server " + dsn)
	}
	return &fakeConn{srv: srv.(*fakeServer)}, nil
}

type fakeConn struct {
	srv *fakeServer
}

var (
	_ driver.QueryerContext = (*fakeConn)(nil)
	_ driver.ExecerContext  = (*fakeConn)(nil)
	_ driver.ConnBeginTx    = (*fakeConn)(nil)
)

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("fake: prepared statements are not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *fakeConn) BeginTx(_ context.Context, _ driver.TxOptions) (driver.Tx, error) {
	if res := c.srv.answer("BEGIN"); res.err != nil {
		return nil, res.err
	}
	return &fakeTx{srv: c.srv}, nil
}

func (c *fakeConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, errors.New("fake: unexpected placeholder arguments")
	}
	res := c.srv.answer(query)
	if res.err != nil {
		return nil, res.err
	}
	return &fakeRows{columns: res.columns, rows: res.rows}, nil
}

func (c *fakeConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, errors.New("fake: unexpected placeholder arguments")
	}
	res := c.srv.answer(query)
	if res.err != nil {
		return nil, res.err
	}
	return fakeExecResult{id: res.lastInsertID, affected: res.rowsAffected}, nil
}

type fakeTx struct {
	srv *fakeServer
}

func (tx *fakeTx) Commit() error {
	return tx.srv.answer("COMMIT").err
}

func (tx *fakeTx) Rollback() error {
	return tx.srv.answer("ROLLBACK").err
}

type fakeExecResult struct {
	id, affected int64
}

func (r fakeExecResult) LastInsertId() (int64, error) { return r.id, nil }
func (r fakeExecResult) RowsAffected() (int64, error) { return r.affected, nil }

type fakeRows struct {
	columns []fakeColumn
	rows    [][]driver.Value
	pos     int
}

var _ driver.RowsColumnTypeDatabaseTypeName = (*fakeRows)(nil)

func (r *fakeRows) Columns() []string {
	names := make([]string, len(r.columns))
	for i, c := range r.columns {
		names[i] = c.name
	}
	return names
}

func (r *fakeRows) ColumnTypeDatabaseTypeName(i int) string {
	return r.columns[i].typeName
}

func (r *fakeRows) Close() error { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}
