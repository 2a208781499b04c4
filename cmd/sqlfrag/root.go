package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sqlfrag "github.com/biyonik/go-sqlfrag"
	"github.com/biyonik/go-sqlfrag/internal/cli"
)

// app, komutların ortak bağımlılıklarını taşır. Testler stdout ve stderr
// yerine tampon verir.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	dsn        string
	verbosity  int

	logger *zap.Logger
}

// Output, fmt.Printf gibi çalışır ve her zaman satır sonu ekler.
func (a *app) Output(format string, args ...any) {
	fmt.Fprintf(a.stdout, format+"\n", args...)
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a.logger
}

// connect, yapılandırmayı yükler ve bir bağlantı havuzu açar.
func (a *app) connect(ctx context.Context) (*sqlfrag.DB, error) {
	cfg, path, err := cli.LoadConfig(a.configPath)
	if err != nil {
		return nil, cli.ConfigError("loading config", err)
	}
	if path != "" {
		a.log().Debug("using config file", zap.String("path", path))
	}

	return cfg.Open(ctx, a.dsn,
		sqlfrag.WithLogger(sqlfrag.NewZapLogger(a.log())),
		sqlfrag.WithDebug(cfg.Debug || a.verbosity > 0),
	)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "sqlfrag",
		Short:             "Render and run injection-safe MySQL fragments",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.logger == nil {
				a.logger = cli.NewLogger(a.verbosity)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to sqlfrag.yaml (default: search upward from cwd)")
	flags.StringVar(&a.dsn, "dsn", "", "MySQL DSN, overrides the config file")
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(
		newEscapeCmd(a),
		newIdentCmd(a),
		newInsertCmd(a),
		newQueryCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}
