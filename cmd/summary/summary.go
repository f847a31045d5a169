package summary

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"git.sr.ht/~flobar/remfit/cmd/internal"
	"git.sr.ht/~flobar/remfit/pkg/remfit"
	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// CMD defines the remfit summary command.  Only model kinds whose
// engine wrapper keeps the introspection data across save and load
// can be summarized from storage; the others summarize right after
// the fit (see remfit fit).
var CMD = &cobra.Command{
	Use:   "summary",
	Short: "Print the summary of a saved model",
	Run:   run,
}

var flags = struct {
	internal.Flags
	kind, model string
}{}

func init() {
	flags.Init(CMD)
	CMD.Flags().StringVarP(&flags.kind, "kind", "k", "",
		"set the model kind (svc, logit, mlp or bayes)")
	CMD.Flags().StringVarP(&flags.model, "model", "M", "",
		"set the model path")
}

func run(_ *cobra.Command, _ []string) {
	_, e, err := flags.Connect()
	chk(err)
	ctx, cancel := flags.Context()
	defer cancel()
	switch flags.kind {
	case remfit.KindBayes:
		m, err := remfit.ReadBayes(ctx, e, flags.model)
		chk(err)
		s, err := m.Summary(ctx, e)
		chk(err)
		fmt.Println("apriori:")
		fmt.Print(s.Apriori)
		fmt.Println("tables:")
		fmt.Print(s.Tables)
	case remfit.KindSVC, remfit.KindLogit, remfit.KindMLP:
		chk(fmt.Errorf("summary %s: loaded model: %w", flags.kind, engine.ErrUnsupported))
	default:
		chk(fmt.Errorf("summary: unknown kind %q", flags.kind))
	}
}

func chk(err error) {
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}
