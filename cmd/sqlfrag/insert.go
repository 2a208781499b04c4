package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	sqlfrag "github.com/biyonik/go-sqlfrag"
	"github.com/biyonik/go-sqlfrag/internal/cli"
)

// parseAssignment, "kolon=metin" veya "kolon:=yaml" argümanını bir Field'a çevirir.
// İlk biçimde değer her zaman metindir; ikincisinde YAML skaleri veya listesi
// olarak çözülür (42, 1.5, true, null, [1, 2]).
func parseAssignment(arg string) (sqlfrag.Field, error) {
	col, text, ok := strings.Cut(arg, "=")
	if !ok {
		return sqlfrag.Field{}, fmt.Errorf("expected col=value or col:=yaml, got %q", arg)
	}

	if typed, isTyped := strings.CutSuffix(col, ":"); isTyped {
		var v any
		if err := yaml.Unmarshal([]byte(text), &v); err != nil {
			return sqlfrag.Field{}, fmt.Errorf("column %s: %w", typed, err)
		}
		val, err := sqlfrag.ValueOf(v)
		if err != nil {
			return sqlfrag.Field{}, fmt.Errorf("column %s: %w", typed, err)
		}
		return sqlfrag.F(typed, val), nil
	}
	return sqlfrag.F(col, text), nil
}

func newInsertCmd(a *app) *cobra.Command {
	var (
		table       string
		ignore      bool
		onDuplicate string
		exec        bool
	)

	cmd := &cobra.Command{
		Use:   "insert --table TABLE col=value...",
		Short: "Render an INSERT ... SET statement",
		Long: `Render an INSERT ... SET statement from column assignments.

col=value always inserts value as a string. col:=value decodes value
as YAML, so numbers, booleans, null and flat lists keep their type.
Column order follows the arguments.`,
		Example: `  sqlfrag insert --table app.users name="O'Brien" age:=42
  sqlfrag insert --table users --on-duplicate update id:=1 name=ayşe --exec`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := make(sqlfrag.Fields, 0, len(args))
			for _, arg := range args {
				f, err := parseAssignment(arg)
				if err != nil {
					return cli.GeneralError("parsing assignment", err)
				}
				fields = append(fields, f)
			}

			var opts []sqlfrag.InsertOption
			if ignore {
				opts = append(opts, sqlfrag.Ignore())
			}
			if onDuplicate != "" {
				policy, err := sqlfrag.ParseDuplicateKey(onDuplicate)
				if err != nil {
					return cli.GeneralError("parsing --on-duplicate", err)
				}
				opts = append(opts, sqlfrag.OnDuplicateKey(policy))
			}

			q, err := sqlfrag.Insert(sqlfrag.Loose(table), fields, opts...)
			if err != nil {
				return cli.RenderError("rendering insert", err)
			}

			if !exec {
				a.Output("%s", q.SQL())
				return nil
			}

			ctx := cmd.Context()
			db, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			res, err := db.Exec(ctx, q)
			if err != nil {
				return cli.GeneralError("executing insert", err)
			}
			affected, _ := res.RowsAffected()
			lastID, _ := res.LastInsertID()
			a.log().Debug("insert executed", zap.Int64("rows_affected", affected))
			a.Output("rows affected: %d, last insert id: %d", affected, lastID)
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "target table, dots separate database and table")
	cmd.Flags().BoolVar(&ignore, "ignore", false, "use INSERT IGNORE")
	cmd.Flags().StringVar(&onDuplicate, "on-duplicate", "", "duplicate-key policy: error|ignore|update")
	cmd.Flags().BoolVar(&exec, "exec", false, "execute the statement instead of printing it")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}
