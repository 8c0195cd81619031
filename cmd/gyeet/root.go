package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-colorable"
	logging "github.com/shenwei356/go-logging"
	"github.com/spf13/cobra"
)

// log is the package-level leveled logger every subcommand writes
// through, set up once here exactly as the teacher's own CLI tools wire
// shenwei356/go-logging + mattn/go-colorable (the common boilerplate
// shared across that author's command-line tools, not unique to any one
// file in the retrieval pack, but the declared dependency pair this
// expansion's ambient-stack section commits to).
var log = logging.MustGetLogger("gyeet")

// RootCmd is the gyeet root command; build.go and map.go register their
// subcommands onto it from their own init().
var RootCmd = &cobra.Command{
	Use:   "gyeet",
	Short: "index and map sequences against a variation graph",
	Long: `gyeet - index and map sequences against a variation graph

  build   build an on-disk index from a graph
  map     map query sequences against a built index
`,
}

func init() {
	format := logging.MustStringFormatter(
		`%{color}[%{level:.4s}]%{color:reset} %{message}`,
	)
	backend := logging.NewLogBackend(colorable.NewColorableStderr(), "", 0)
	backendFormatter := logging.NewBackendFormatter(backend, format)
	logging.SetBackend(backendFormatter)
}

// Execute runs the root command, exiting non-zero on any returned error
// (build/load errors are fatal and reported with the offending path,
// spec.md §7's propagation policy for those two error classes).
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func checkError(err error) {
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
