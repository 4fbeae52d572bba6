// Command lintcore is a manual smoke-test harness for the linting core
// (spec.md §1 Non-goals: not a replacement for a real lint CLI — no
// config discovery, globbing, or caching).
package main

import (
	"os"

	"github.com/nam-hle/eslint/cmd/lintcore/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args[1:]))
}
