package fit

import (
	"fmt"

	"github.com/spf13/cobra"

	"git.sr.ht/~flobar/remfit/pkg/remfit"
	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// svcCMD runs the remfit fit svc command.
var svcCMD = &cobra.Command{
	Use:   "svc",
	Short: "Fit a linear support vector classifier",
	Run:   runSVC,
}

func runSVC(_ *cobra.Command, _ []string) {
	c, e, ctx, cancel := setup()
	defer cancel()
	m, err := remfit.FitSVC(ctx, e, engine.Dataset(flags.data), flags.formula, c.SVC)
	chk(err)
	s, err := m.Summary(ctx, e)
	chk(err)
	fmt.Print(s.Coefficients)
	fmt.Printf("numClasses: %d\nnumFeatures: %d\n", s.NumClasses, s.NumFeatures)
	save(ctx, e, &m.Model, c)
}
