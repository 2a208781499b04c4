package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	sqlfrag "github.com/biyonik/go-sqlfrag"
	"github.com/biyonik/go-sqlfrag/internal/cli"
)

var valueTypes = []string{"string", "int", "uint", "float", "bool", "null", "hex", "timestamp", "date"}

// parseTyped, komut satırı metnini istenen türde bir Value'ya çevirir.
// Zaman türleri loc diliminde okunur ve aynı dilimde yazılır.
func parseTyped(kind, text string, loc *time.Location) (sqlfrag.Value, error) {
	switch kind {
	case "string":
		return sqlfrag.String(text), nil
	case "int":
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, err
		}
		return sqlfrag.Int(n), nil
	case "uint":
		n, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, err
		}
		return sqlfrag.Uint(n), nil
	case "float":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
		return sqlfrag.Float(f), nil
	case "bool":
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, err
		}
		return sqlfrag.Bool(b), nil
	case "null":
		return sqlfrag.Null, nil
	case "hex":
		b, err := hex.DecodeString(strings.TrimPrefix(text, "0x"))
		if err != nil {
			return nil, err
		}
		return sqlfrag.Bytes(b), nil
	case "timestamp":
		return sqlfrag.ParseTimestamp(text, loc)
	case "date":
		ts, err := sqlfrag.ParseTimestamp(text, loc)
		if err != nil {
			return nil, err
		}
		return sqlfrag.Date{Time: ts.Time, Location: loc}, nil
	}
	return nil, fmt.Errorf("unknown type %q (want one of %s)", kind, strings.Join(valueTypes, ", "))
}

func newEscapeCmd(a *app) *cobra.Command {
	var (
		kind string
		tz   string
	)

	cmd := &cobra.Command{
		Use:   "escape VALUE...",
		Short: "Print values as escaped MySQL literals",
		Example: `  sqlfrag escape "it's"
  sqlfrag escape --type int 42 -7
  sqlfrag escape --type timestamp --tz Europe/Istanbul "2024-01-02 03:04:05.5"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return cli.ConfigError("loading time zone", err)
			}

			for _, arg := range args {
				v, err := parseTyped(kind, arg, loc)
				if err != nil {
					return cli.GeneralError(fmt.Sprintf("parsing %q as %s", arg, kind), err)
				}
				frag, err := sqlfrag.Escape(v)
				if err != nil {
					return cli.RenderError("escaping value", err)
				}
				a.Output("%s", frag.SQL())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "string", "value type: "+strings.Join(valueTypes, "|"))
	cmd.Flags().StringVar(&tz, "tz", "UTC", "IANA time zone for timestamp and date values")

	return cmd
}
