package sqlfrag

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Batch, cümleleri tek bir transaction üzerinde eşzamanlı çalıştırır.
//
// Tüm cümleler başarılıysa transaction onaylanır ve sonuçlar giriş sırasıyla döner.
// Bir veya daha fazla cümle başarısız olursa transaction geri alınır ve her
// başarısız cümlenin sırasını, SQL metnini ve hatasını içeren *BatchError döner.
// Bir cümlenin hatası diğerlerini iptal etmez.
func (d *DB) Batch(ctx context.Context, stmts ...Frag) ([]*QueryResult, error) {
	if len(stmts) == 0 {
		return nil, ErrEmptyFieldSet
	}

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	results := make([]*QueryResult, len(stmts))
	stmtErrs := make([]error, len(stmts))

	// Group context'i kullanılmaz: ilk hata kalan cümleleri iptal etmemeli.
	var g errgroup.Group
	for i, stmt := range stmts {
		g.Go(func() error {
			res, err := tx.Exec(ctx, stmt)
			if err != nil {
				stmtErrs[i] = StatementError{Index: i, SQL: stmt.SQL(), Err: err}
				return stmtErrs[i]
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		batchErr := &BatchError{Failures: collectFailures(stmtErrs)}
		if rbErr := tx.Rollback(); rbErr != nil {
			return nil, errors.Join(batchErr, rbErr)
		}
		return nil, batchErr
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return results, nil
}

// collectFailures, cümle sırasıyla dizilmiş hata yuvalarından başarısız olanları toplar.
func collectFailures(errs []error) []StatementError {
	var failures []StatementError
	for _, err := range errs {
		var se StatementError
		if errors.As(err, &se) {
			failures = append(failures, se)
		}
	}
	return failures
}
