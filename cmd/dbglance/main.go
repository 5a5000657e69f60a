// Command dbglance serves a local web UI for exploring SQLite database
// files, with CLI equivalents for schema inspection and ad-hoc queries.
package main

import (
	"os"

	"github.com/dbglance/dbglance/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
