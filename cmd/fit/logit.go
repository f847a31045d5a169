package fit

import (
	"fmt"

	"github.com/spf13/cobra"

	"git.sr.ht/~flobar/remfit/pkg/remfit"
	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// logitCMD runs the remfit fit logit command.
var logitCMD = &cobra.Command{
	Use:   "logit",
	Short: "Fit a logistic regression model",
	Run:   runLogit,
}

func runLogit(_ *cobra.Command, _ []string) {
	c, e, ctx, cancel := setup()
	defer cancel()
	m, err := remfit.FitLogit(ctx, e, engine.Dataset(flags.data), flags.formula, c.Logit)
	chk(err)
	s, err := m.Summary(ctx, e)
	chk(err)
	fmt.Print(s.Coefficients)
	fmt.Printf("numClasses: %d\nnumFeatures: %d\n", s.NumClasses, s.NumFeatures)
	save(ctx, e, &m.Model, c)
}
