package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "check_required_vars %s\n", Version)
			fmt.Fprintf(stdout, "Commit: %s\n", Commit)
			fmt.Fprintf(stdout, "Built: %s\n", BuildDate)
			fmt.Fprintf(stdout, "Go: %s\n", runtime.Version())
		},
	}
}
