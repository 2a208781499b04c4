package main

import (
	"fmt"
	"io"
	"math/big"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sqlfrag "github.com/biyonik/go-sqlfrag"
	"github.com/biyonik/go-sqlfrag/internal/cli"
)

// printable, kayıt değerlerini YAML'ın okunabilir yazacağı türlere çevirir.
// İkili veriler hex literal'i, büyük tamsayılar ondalık metin olur.
func printable(v any) any {
	switch x := v.(type) {
	case []byte:
		if f, err := sqlfrag.Escape(sqlfrag.Bytes(x)); err == nil {
			return f.SQL()
		}
		return x
	case *big.Int:
		return x.String()
	case sqlfrag.Record:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = printable(val)
		}
		return out
	case []sqlfrag.Record:
		out := make([]any, len(x))
		for i, r := range x {
			out[i] = printable(r)
		}
		return out
	}
	return v
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(printable(v)); err != nil {
		return err
	}
	return enc.Close()
}

func newQueryCmd(a *app) *cobra.Command {
	var (
		count  bool
		exists bool
		row    bool
		value  bool
	)

	cmd := &cobra.Command{
		Use:   "query SQL",
		Short: "Run raw SQL and print the result as YAML",
		Long: `Run raw SQL and print the result as YAML.

The statement is sent as-is. Use the escape and ident commands to build
literals for untrusted input.`,
		Example: `  sqlfrag query "select id, name from users"
  sqlfrag query --count "select * from users where active = 1"
  sqlfrag query --dsn 'root:secret@tcp(localhost:3306)/app' --row "select now()"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			q := sqlfrag.Raw(args[0])

			db, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			var result any
			switch {
			case count:
				result, err = db.Count(ctx, q)
			case exists:
				result, err = db.Exists(ctx, q)
			case row:
				result, err = db.Row(ctx, q)
			case value:
				result, err = db.Value(ctx, q)
			default:
				result, err = db.Query(ctx, q)
			}
			if err != nil {
				return cli.GeneralError("running query", err)
			}

			if err := writeYAML(a.stdout, result); err != nil {
				return cli.GeneralError("writing result", fmt.Errorf("encoding yaml: %w", err))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&count, "count", false, "print the number of rows the query returns")
	cmd.Flags().BoolVar(&exists, "exists", false, "print whether the query returns any row")
	cmd.Flags().BoolVar(&row, "row", false, "print the single row the query returns")
	cmd.Flags().BoolVar(&value, "value", false, "print the single value the query returns")
	cmd.MarkFlagsMutuallyExclusive("count", "exists", "row", "value")

	return cmd
}
