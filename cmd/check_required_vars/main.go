// Command check_required_vars validates the cluster group_vars and inventory of this repo.
//
// Exit codes: 0 all checks pass, 1 a check failed, 2 no YAML decoder available.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time via ldflags)
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// exitError carries a process exit status out of a cobra RunE.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(stderr, err)
	return 1
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "check_required_vars",
		Short: "Validate cluster group_vars and inventory",
		Long: `Checks group_vars/windows_cluster_nodes.yml and inventory/hosts.ini:
  - cluster_name and cluster_ip are non-empty strings
  - cluster_nodes lists at least two hostnames
  - quorum_witness_path is set when quorum_mode needs a file share witness
  - [windows_cluster_nodes] holds at least two hosts

The repository root is the working directory unless WINCLUSTER_ROOT is set.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(stdout, stderr)
			if err != nil {
				return err
			}
			defer a.close()
			if code := a.check(); code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}
	root.AddCommand(newWatchCmd(stdout, stderr), newVersionCmd(stdout))
	return root
}
