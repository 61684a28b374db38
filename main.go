package main

import (
	"fmt"
	"os"

	"fjacquet/leak-detector/cmd/analyze"
	"fjacquet/leak-detector/cmd/batch"
	"fjacquet/leak-detector/cmd/categorize"
	"fjacquet/leak-detector/cmd/root"
	"fjacquet/leak-detector/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
