package fit

import (
	"fmt"

	"github.com/spf13/cobra"

	"git.sr.ht/~flobar/remfit/pkg/remfit"
	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// bayesCMD runs the remfit fit bayes command.
var bayesCMD = &cobra.Command{
	Use:   "bayes",
	Short: "Fit a naive Bayes classifier",
	Run:   runBayes,
}

func runBayes(_ *cobra.Command, _ []string) {
	c, e, ctx, cancel := setup()
	defer cancel()
	m, err := remfit.FitBayes(ctx, e, engine.Dataset(flags.data), flags.formula, c.Bayes)
	chk(err)
	s, err := m.Summary(ctx, e)
	chk(err)
	fmt.Println("apriori:")
	fmt.Print(s.Apriori)
	fmt.Println("tables:")
	fmt.Print(s.Tables)
	save(ctx, e, &m.Model, c)
}
