package fit

import (
	"fmt"

	"github.com/spf13/cobra"

	"git.sr.ht/~flobar/remfit/pkg/remfit"
	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// mlpCMD runs the remfit fit mlp command.
var mlpCMD = &cobra.Command{
	Use:   "mlp",
	Short: "Fit a multilayer perceptron classifier",
	Run:   runMLP,
}

func runMLP(_ *cobra.Command, _ []string) {
	c, e, ctx, cancel := setup()
	defer cancel()
	m, err := remfit.FitMLP(ctx, e, engine.Dataset(flags.data), flags.formula, c.MLP)
	chk(err)
	s, err := m.Summary(ctx, e)
	chk(err)
	fmt.Printf("numOfInputs: %d\nnumOfOutputs: %d\nlayers: %v\nweights: %d\n",
		s.NumOfInputs, s.NumOfOutputs, s.Layers, len(s.Weights))
	save(ctx, e, &m.Model, c)
}
