package main

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	sqlfrag "github.com/biyonik/go-sqlfrag"
)

// ldflags ile derleme sırasında atanır.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func init() {
	// go install ile kurulduysa sürüm modül bilgisinden okunur.
	if version != "dev" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
			if len(commit) > 7 {
				commit = commit[:7]
			}
		case "vcs.time":
			date = setting.Value
		}
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.Output("sqlfrag %s (library %s, commit: %s, built: %s)", version, sqlfrag.Version, commit, date)
			return nil
		},
	}
}
