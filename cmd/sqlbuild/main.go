// Package main provides the sqlbuild command.
package main

import (
	"os"

	"github.com/mitranim/sqlbuilder/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
