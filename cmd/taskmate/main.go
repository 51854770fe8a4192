// Command taskmate is the terminal client of the taskmate API.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// options are the global flags.
type options struct {
	configPath string
	apiBase    string
	verbose    bool
	noColor    bool
	systemDark bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{}
	a := &app{}

	root := &cobra.Command{
		Use:           "taskmate",
		Short:         "TaskMate - manage your tasks from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context(), opts, out, errOut)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default <user config dir>/taskmate/config.yaml)")
	flags.StringVar(&opts.apiBase, "api", "", "API base URL, overrides api_base from the config file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.systemDark, "system-dark", false, "use the dark theme when no theme has been chosen")

	root.AddCommand(
		listCmd(a),
		showCmd(a),
		addCmd(a),
		editCmd(a),
		toggleCmd(a),
		rmCmd(a),
		clearDoneCmd(a),
		clearAllCmd(a),
		filterCmd(a),
		categoriesCmd(a),
		progressCmd(a),
		themeCmd(a),
		diagCmd(a),
	)
	return root
}
