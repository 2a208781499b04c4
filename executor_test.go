package sqlfrag

import (
	"context"
	"database/sql/driver"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersResult() fakeResult {
	return fakeResult{
		columns: []fakeColumn{
			{"id", "BIGINT"},
			{"name", "VARCHAR"},
			{"active", "BIT"},
			{"avatar", "BLOB"},
			{"score", "DOUBLE"},
			{"balance", "DECIMAL"},
			{"note", "TEXT"},
		},
		rows: [][]driver.Value{
			{[]byte("1"), []byte("ayşe"), []byte{1}, []byte{0xde, 0xad}, []byte("1.5"), []byte("10.10"), nil},
			{[]byte("2"), []byte("it's"), []byte{0}, []byte{}, []byte("-2"), []byte("0.00"), []byte("x")},
		},
	}
}

func TestDB_Query(t *testing.T) {
	db, srv := newFakeDB(t, func(string) fakeResult { return usersResult() })
	ctx := context.Background()

	q := MustSQL("select * from ? where id in (?)", Tbl("users"), []int{1, 2})
	records, err := db.Query(ctx, q)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{
		"id":      int64(1),
		"name":    "ayşe",
		"active":  true,
		"avatar":  []byte{0xde, 0xad},
		"score":   1.5,
		"balance": "10.10",
		"note":    nil,
	}, records[0])
	assert.Equal(t, "it's", records[1]["name"])
	assert.Equal(t, false, records[1]["active"])

	assert.Equal(t, []string{"select * from `users` where id in (1,2)"}, srv.Queries())
	assert.Equal(t, 0, db.Stats().Active)
}

func TestDB_Query_Empty(t *testing.T) {
	db, _ := newFakeDB(t, func(string) fakeResult { return rowsOf("id", "INT") })

	records, err := db.Query(context.Background(), Raw("select id from t where 0"))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDB_Query_Error(t *testing.T) {
	boom := errors.New("table does not exist")
	db, _ := newFakeDB(t, func(string) fakeResult { return fakeResult{err: boom} })

	_, err := db.Query(context.Background(), Raw("select * from missing"))
	require.ErrorIs(t, err, boom)

	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "query", qe.Op)
	assert.Equal(t, "select * from missing", qe.Query)
	assert.Equal(t, 0, db.Stats().Active)
}

func TestDB_Row(t *testing.T) {
	db, srv := newFakeDB(t, func(q string) fakeResult {
		if q == "select * from (select id from empty) _query limit 1" {
			return rowsOf("id", "INT")
		}
		return rowsOf("id", "INT", "7", "8")
	})
	ctx := context.Background()

	rec, err := db.Row(ctx, Raw("select id from t"))
	require.NoError(t, err)
	assert.Equal(t, Record{"id": int64(7)}, rec)
	assert.Equal(t, "select * from (select id from t) _query limit 1", srv.Queries()[0])

	_, err = db.Row(ctx, Raw("select id from empty"))
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestDB_Value(t *testing.T) {
	db, _ := newFakeDB(t, func(q string) fakeResult {
		switch q {
		case "select two":
			return fakeResult{
				columns: []fakeColumn{{"a", "INT"}, {"b", "INT"}},
				rows:    [][]driver.Value{{[]byte("1"), []byte("2")}},
			}
		case "select none":
			return rowsOf("a", "INT")
		case "select huge":
			return rowsOf("n", "UNSIGNED BIGINT", "18446744073709551615")
		}
		return rowsOf("now", "DATETIME", "2020-01-02 03:04:05")
	})
	ctx := context.Background()

	v, err := db.Value(ctx, Raw("select now()"))
	require.NoError(t, err)
	assert.Equal(t, "2020-01-02 03:04:05", v)

	_, err = db.Value(ctx, Raw("select two"))
	assert.ErrorIs(t, err, ErrColumnCount)

	_, err = db.Value(ctx, Raw("select none"))
	assert.ErrorIs(t, err, ErrNoRows)

	v, err = db.Value(ctx, Raw("select huge"))
	require.NoError(t, err)
	want, _ := new(big.Int).SetString("18446744073709551615", 10)
	assert.Equal(t, 0, want.Cmp(v.(*big.Int)))
}

func TestDB_ExistsAndCount(t *testing.T) {
	db, srv := newFakeDB(t, func(q string) fakeResult {
		switch q {
		case "select exists(select 1 from t)":
			return rowsOf("e", "BIGINT", "1")
		case "select exists(select 1 from empty)":
			return rowsOf("e", "BIGINT", "0")
		}
		return rowsOf("c", "BIGINT", "42")
	})
	ctx := context.Background()

	ok, err := db.Exists(ctx, Raw("select 1 from t"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.Exists(ctx, Raw("select 1 from empty"))
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := db.Count(ctx, Raw("select id from t"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.Equal(t, "select count(*) from (select id from t) _count", srv.Queries()[2])
}

func TestDB_Exec(t *testing.T) {
	db, srv := newFakeDB(t, func(string) fakeResult {
		return fakeResult{lastInsertID: 11, rowsAffected: 1}
	})

	q, err := InsertMap(Tbl("users"), map[string]any{"name": "it's"})
	require.NoError(t, err)

	res, err := db.Exec(context.Background(), q)
	require.NoError(t, err)

	id, err := res.LastInsertID()
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, []string{"INSERT INTO `users` SET `name`='it''s'"}, srv.Queries())
}

func TestQueryResult_Nil(t *testing.T) {
	var r *QueryResult
	_, err := r.LastInsertID()
	assert.ErrorIs(t, err, ErrNoRows)
	_, err = r.RowsAffected()
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestDB_SelectAndGet(t *testing.T) {
	type user struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
	}

	db, _ := newFakeDB(t, func(q string) fakeResult {
		if q == "select none" {
			return fakeResult{columns: []fakeColumn{{"id", "BIGINT"}, {"name", "VARCHAR"}}}
		}
		return fakeResult{
			columns: []fakeColumn{{"id", "BIGINT"}, {"name", "VARCHAR"}},
			rows: [][]driver.Value{
				{[]byte("1"), []byte("a")},
				{[]byte("2"), []byte("b")},
			},
		}
	})
	ctx := context.Background()

	var users []user
	require.NoError(t, db.Select(ctx, &users, Raw("select id, name from users")))
	assert.Equal(t, []user{{1, "a"}, {2, "b"}}, users)

	var u user
	require.NoError(t, db.Get(ctx, &u, Raw("select id, name from users")))
	assert.Equal(t, user{1, "a"}, u)

	err := db.Get(ctx, &u, Raw("select none"))
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestDB_Stream(t *testing.T) {
	db, _ := newFakeDB(t, func(string) fakeResult {
		return rowsOf("n", "INT", "1", "2", "3", "4")
	})
	ctx := context.Background()

	var got []int64
	for rec, err := range db.Stream(ctx, Raw("select n from t")) {
		require.NoError(t, err)
		got = append(got, rec["n"].(int64))
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int64{1, 2}, got)
	assert.Equal(t, 0, db.Stats().Active, "early break must release the connection")
}

func TestDB_Stream_Error(t *testing.T) {
	boom := errors.New("boom")
	db, _ := newFakeDB(t, func(string) fakeResult { return fakeResult{err: boom} })

	calls := 0
	for rec, err := range db.Stream(context.Background(), Raw("select 1")) {
		calls++
		assert.Nil(t, rec)
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, 1, calls)
}

func TestConn_Release(t *testing.T) {
	db, srv := newFakeDB(t, func(string) fakeResult { return rowsOf("n", "INT", "1") })
	ctx := context.Background()

	c, err := db.Conn(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, db.Stats().Active)

	_, err = c.Query(ctx, Raw("select 1"))
	require.NoError(t, err)
	_, err = c.Exec(ctx, Raw("set @a = 1"))
	require.NoError(t, err)

	require.NoError(t, c.Release())
	require.NoError(t, c.Release())
	assert.Equal(t, 0, db.Stats().Active)

	_, err = c.Query(ctx, Raw("select 2"))
	assert.ErrorIs(t, err, ErrConnReleased)
	_, err = c.Exec(ctx, Raw("select 2"))
	assert.ErrorIs(t, err, ErrConnReleased)
	_, err = c.BeginTx(ctx, nil)
	assert.ErrorIs(t, err, ErrConnReleased)

	assert.Equal(t, []string{"select 1", "set @a = 1"}, srv.Queries())
}

func TestConn_BeginTxKeepsConnection(t *testing.T) {
	db, srv := newFakeDB(t, nil)
	ctx := context.Background()

	c, err := db.Conn(ctx)
	require.NoError(t, err)
	defer func() { _ = c.Release() }()

	tx, err := c.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = tx.Exec(ctx, Raw("update t set a = 1"))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, 1, db.Stats().Active)
	_, err = c.Exec(ctx, Raw("select 1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"BEGIN", "update t set a = 1", "COMMIT", "select 1"}, srv.Queries())
}

func TestDB_PendingAcquires(t *testing.T) {
	db, _ := newFakeDB(t, nil)
	db.Sqlx().SetMaxOpenConns(1)
	ctx := context.Background()

	held, err := db.Conn(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := db.Exec(ctx, Raw("select 1"))
		assert.NoError(t, err)
	}()

	require.Eventually(t, func() bool { return db.Stats().Pending == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 1, db.Stats().Active)

	require.NoError(t, held.Release())
	wg.Wait()
	assert.Equal(t, 0, db.Stats().Pending)
}

func TestDB_AcquireCancelled(t *testing.T) {
	db, _ := newFakeDB(t, nil)
	db.Sqlx().SetMaxOpenConns(1)

	held, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer func() { _ = held.Release() }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = db.Query(ctx, Raw("select 1"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, db.Stats().Pending)
}

type recordingLogger struct {
	mu      sync.Mutex
	queries []string
	errs    []error
}

func (l *recordingLogger) Log(query string, _ time.Duration, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, query)
	l.errs = append(l.errs, err)
}

func TestDB_DebugLogging(t *testing.T) {
	boom := errors.New("boom")
	handler := func(q string) fakeResult {
		if q == "select fail" {
			return fakeResult{err: boom}
		}
		return rowsOf("n", "INT")
	}
	ctx := context.Background()

	quiet := &recordingLogger{}
	db, _ := newFakeDB(t, handler, WithLogger(quiet))
	_, _ = db.Query(ctx, Raw("select 1"))
	assert.Empty(t, quiet.queries)
	assert.False(t, db.IsDebug())

	logger := &recordingLogger{}
	db, _ = newFakeDB(t, handler, WithDebug(true), WithLogger(logger))
	assert.Same(t, logger, db.Logger())

	_, err := db.Query(ctx, Raw("select 1"))
	require.NoError(t, err)
	_, err = db.Row(ctx, Raw("select 2"))
	require.ErrorIs(t, err, ErrNoRows)
	_, err = db.Exec(ctx, Raw("select fail"))
	require.Error(t, err)

	assert.Equal(t, []string{
		"select 1",
		"select * from (select 2) _query limit 1",
		"select fail",
	}, logger.queries)
	assert.NoError(t, logger.errs[0])
	assert.NoError(t, logger.errs[1], "no rows is not a failure")
	assert.ErrorIs(t, logger.errs[2], boom)
}

func TestNewDB_Defaults(t *testing.T) {
	db, _ := newFakeDB(t, nil, nil, WithScanner(nil), WithLogger(nil), WithRetries(-1))

	assert.IsType(t, &DefaultScanner{}, db.Scanner())
	assert.Equal(t, NopLogger{}, db.Logger())
	assert.Equal(t, 3, db.retries)
	require.NoError(t, db.Ping(context.Background()))
}
