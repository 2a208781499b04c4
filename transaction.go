package sqlfrag

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// -----------------------------------------------------------------------------
//  Transaction Yapısı
//
//  Bir transaction, tek bir bağlantı üzerinde çalışan ve bir bütün olarak
//  onaylanan (Commit) ya da geri alınan (Rollback) sorgular dizisidir.
//
//   • Commit veya Rollback sonrası transaction kapanır
//   • Rollback idempotenttir
//   • Savepoint / RollbackTo / ReleaseSavepoint ile kısmi geri dönüş yapılabilir
//   • DB.Transaction, deadlock (1213) ve lock-wait timeout (1205) hatalarında
//     bütün işi baştan dener
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// MySQL sunucu hata kodları.
const (
	errLockWaitTimeout uint16 = 1205
	errLockDeadlock    uint16 = 1213
)

// Transaction, tek bir *sqlx.Tx üzerinde çalışan sorgu oturumudur.
// Sorgu metotları Conn ile aynıdır.
type Transaction struct {
	session
	tx *sqlx.Tx

	// onClose, DB.BeginTx ile alınan bağlantıyı commit/rollback sonrası bırakır.
	onClose func() error

	mu     sync.Mutex
	closed bool
}

func newTransaction(tx *sqlx.Tx, db *DB, onClose func() error) *Transaction {
	t := &Transaction{tx: tx, onClose: onClose}
	t.session = session{x: tx, db: db, check: t.check}
	return t
}

func (t *Transaction) check() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTxAlreadyClosed
	}
	return nil
}

// finish, transaction'ı kapatır ve gerekiyorsa bağlantıyı bırakır.
// Çağıran t.mu'yu tutmalıdır.
func (t *Transaction) finish(op string, end func() error) error {
	t.closed = true
	err := end()
	if t.onClose != nil {
		if relErr := t.onClose(); relErr != nil && err == nil {
			err = relErr
		}
	}
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return wrapError(op, err)
	}
	return nil
}

// Commit, tüm işlemleri kalıcı hale getirir. Kapalı transaction'da ErrTxAlreadyClosed döner.
func (t *Transaction) Commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrTxAlreadyClosed
	}
	return t.finish("commit transaction", t.tx.Commit)
}

// Rollback, tüm değişiklikleri geri alır. Tekrar çağrılması hata üretmez.
func (t *Transaction) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	return t.finish("rollback transaction", t.tx.Rollback)
}

// IsClosed, transaction'ın commit ya da rollback ile kapanıp kapanmadığını bildirir.
func (t *Transaction) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// Tx, alttaki *sqlx.Tx'e doğrudan erişim sağlar.
func (t *Transaction) Tx() *sqlx.Tx {
	return t.tx
}

// Savepoint, transaction içinde bir dönüş noktası oluşturur.
// İsim strict bir tanımlayıcı olarak tırnaklanır.
func (t *Transaction) Savepoint(ctx context.Context, name string) error {
	return t.savepointStmt(ctx, "create savepoint", "SAVEPOINT ", name)
}

// RollbackTo, transaction'ı bütünüyle geri almadan savepoint'e döner.
func (t *Transaction) RollbackTo(ctx context.Context, name string) error {
	return t.savepointStmt(ctx, "rollback to savepoint", "ROLLBACK TO SAVEPOINT ", name)
}

// ReleaseSavepoint, savepoint'i serbest bırakır; transaction açık kalır.
func (t *Transaction) ReleaseSavepoint(ctx context.Context, name string) error {
	return t.savepointStmt(ctx, "release savepoint", "RELEASE SAVEPOINT ", name)
}

func (t *Transaction) savepointStmt(ctx context.Context, op, prefix, name string) error {
	id, err := EscapeIdent(Name(name))
	if err != nil {
		return err
	}
	if _, err := t.Exec(ctx, Raw(prefix+id.SQL())); err != nil {
		return wrapError(op, err)
	}
	return nil
}

// ----------------------------------------------------------------------------
// DB transaction helpers
// ----------------------------------------------------------------------------

// BeginTx, havuzdan bir bağlantı alıp üzerinde transaction başlatır.
// Bağlantı Commit veya Rollback ile birlikte bırakılır.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Transaction, error) {
	c, err := d.Conn(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := c.conn.BeginTxx(ctx, opts)
	if err != nil {
		_ = c.Release()
		return nil, &QueryError{Op: "begin transaction", Err: err}
	}
	return newTransaction(tx, d, c.Release), nil
}

// Begin, varsayılan ayarlarla transaction başlatır.
func (d *DB) Begin(ctx context.Context) (*Transaction, error) {
	return d.BeginTx(ctx, nil)
}

// Transaction, fn'i bir transaction içinde çalıştırır. fn nil dönerse commit,
// hata dönerse ya da panic olursa rollback yapılır. Deadlock veya lock-wait
// timeout durumunda tüm iş, WithRetries ile belirlenen sayıda yeniden denenir.
//
// fn yan etkisiz olmalıdır; birden fazla kez çalışabilir.
func (d *DB) Transaction(ctx context.Context, fn func(*Transaction) error) error {
	var err error
	for attempt := 0; attempt <= d.retries; attempt++ {
		if attempt > 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return errors.Join(err, ctxErr)
			}
			time.Sleep(retryBackoff(attempt))
		}
		err = d.runTransaction(ctx, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}
	return fmt.Errorf("sqlfrag: transaction failed after %d attempts: %w", d.retries+1, err)
}

func (d *DB) runTransaction(ctx context.Context, fn func(*Transaction) error) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, wrapError("rollback after error", rbErr))
		}
		return err
	}
	return tx.Commit()
}

// IsRetryable, hatanın deadlock veya lock-wait timeout olup olmadığını bildirir.
func IsRetryable(err error) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	return myErr.Number == errLockDeadlock || myErr.Number == errLockWaitTimeout
}

func retryBackoff(attempt int) time.Duration {
	return time.Duration(attempt*attempt) * 10 * time.Millisecond
}
