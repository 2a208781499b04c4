// Command sqlfrag, go-sqlfrag kütüphanesinin komut satırı arayüzüdür.
//
// Alt komutlar:
//   - escape: değerleri MySQL literal'i olarak yazar
//   - ident: tanımlayıcıları ters tırnaklı olarak yazar
//   - insert: INSERT ... SET cümlesi üretir, istenirse çalıştırır
//   - query: ham SQL çalıştırır ve sonucu YAML olarak yazar
//   - version: sürüm bilgisini yazar
//
// Veritabanı gerektiren komutlar bağlantıyı --dsn, SQLFRAG_DSN veya
// sqlfrag.yaml dosyasından alır.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/biyonik/go-sqlfrag/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, &app{stdout: os.Stdout, stderr: os.Stderr}, os.Args[1:]...)
	stop()
	if err != nil {
		cli.ExitWithError(os.Stderr, err)
	}
}

// run, kök komutu verilen argümanlarla çalıştırır. Argümanlar program adını içermez.
func run(ctx context.Context, a *app, args ...string) error {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
