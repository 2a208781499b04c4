package main

import (
	"github.com/spf13/cobra"

	sqlfrag "github.com/biyonik/go-sqlfrag"
	"github.com/biyonik/go-sqlfrag/internal/cli"
)

func newIdentCmd(a *app) *cobra.Command {
	var (
		loose     bool
		qualified bool
	)

	cmd := &cobra.Command{
		Use:   "ident NAME...",
		Short: "Print backtick-quoted identifiers",
		Long: `Print backtick-quoted identifiers.

By default each NAME is one identifier and dots are part of the name.
With --loose, dots split the name into parts. With --qualified, all
arguments form a single qualified identifier.`,
		Example: `  sqlfrag ident users
  sqlfrag ident --loose app.users
  sqlfrag ident --qualified app users id`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if qualified {
				frag, err := sqlfrag.EscapeIdent(sqlfrag.ID(args...))
				if err != nil {
					return cli.RenderError("quoting identifier", err)
				}
				a.Output("%s", frag.SQL())
				return nil
			}

			for _, name := range args {
				id := sqlfrag.Name(name)
				if loose {
					id = sqlfrag.Loose(name)
				}
				frag, err := sqlfrag.EscapeIdent(id)
				if err != nil {
					return cli.RenderError("quoting identifier", err)
				}
				a.Output("%s", frag.SQL())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&loose, "loose", false, "treat dots as qualification separators")
	cmd.Flags().BoolVar(&qualified, "qualified", false, "join all arguments into one qualified identifier")
	cmd.MarkFlagsMutuallyExclusive("loose", "qualified")

	return cmd
}
