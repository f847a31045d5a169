package predict

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"git.sr.ht/~flobar/remfit/cmd/internal"
	"git.sr.ht/~flobar/remfit/pkg/remfit"
	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// CMD defines the remfit predict command.
var CMD = &cobra.Command{
	Use:   "predict",
	Short: "Apply a saved model to a dataset",
	Run:   run,
}

var flags = struct {
	internal.Flags
	kind, model, data string
	n                 int
}{}

func init() {
	flags.Init(CMD)
	CMD.Flags().StringVarP(&flags.kind, "kind", "k", "",
		"set the model kind (svc, logit, mlp or bayes)")
	CMD.Flags().StringVarP(&flags.model, "model", "M", "",
		"set the model path")
	CMD.Flags().StringVarP(&flags.data, "data", "d", "",
		"set the input dataset")
	CMD.Flags().IntVarP(&flags.n, "rows", "n", 10,
		"set the number of result rows to print")
}

func run(_ *cobra.Command, _ []string) {
	_, e, err := flags.Connect()
	chk(err)
	ctx, cancel := flags.Context()
	defer cancel()
	m, err := remfit.Read(ctx, e, flags.kind, flags.model)
	chk(err)
	out, err := m.Predict(ctx, e, engine.Dataset(flags.data))
	chk(err)
	fmt.Printf("predictions: %s\n", out)
	columns, err := e.Schema(ctx, out)
	chk(err)
	fmt.Println(strings.Join(columns, "\t"))
	rows, err := e.Head(ctx, out, flags.n)
	chk(err)
	for _, row := range rows {
		fmt.Println(strings.Join(row, "\t"))
	}
}

func chk(err error) {
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}
