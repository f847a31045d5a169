package main

import (
	"git.sr.ht/~flobar/remfit/cmd/eval"
	"git.sr.ht/~flobar/remfit/cmd/fit"
	"git.sr.ht/~flobar/remfit/cmd/predict"
	"git.sr.ht/~flobar/remfit/cmd/summary"
	"git.sr.ht/~flobar/remfit/cmd/upload"
	"git.sr.ht/~flobar/remfit/cmd/version"
	"github.com/spf13/cobra"
)

var root = &cobra.Command{
	Use:   "remfit",
	Short: "Fit classification models on a remote computation engine",
}

func init() {
	root.AddCommand(
		eval.CMD,
		fit.CMD,
		predict.CMD,
		summary.CMD,
		upload.CMD,
		version.CMD,
	)
}

func main() {
	root.Execute()
}
