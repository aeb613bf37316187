// Package main provides the entry point for the carbonstmt CLI application.
package main

import (
	"os"

	"greenspend/carbonstmt/cmd/analyze"
	"greenspend/carbonstmt/cmd/categorize"
	"greenspend/carbonstmt/cmd/factors"
	"greenspend/carbonstmt/cmd/root"
	"greenspend/carbonstmt/cmd/validate"
)

func main() {
	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(factors.Cmd)
	root.Cmd.AddCommand(validate.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err)
		os.Exit(1)
	}
}
