// Package main provides the geodesk CLI application.
// geodesk is a local-first workbench for tabular and geospatial data
// backed by single-file analytical datastores.
package main

import (
	"os"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
