package fit

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"git.sr.ht/~flobar/remfit/cmd/internal"
	"git.sr.ht/~flobar/remfit/pkg/remfit"
	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// CMD defines the remfit fit command.
var CMD = &cobra.Command{
	Use:   "fit",
	Short: "Fit models on the engine",
}

var flags = struct {
	internal.Flags
	data, formula, model string
	update, watch        bool
}{}

func init() {
	flags.Init(CMD)
	CMD.PersistentFlags().StringVarP(&flags.data, "data", "d", "",
		"set the training dataset")
	CMD.PersistentFlags().StringVarP(&flags.formula, "formula", "f", "label ~ .",
		"set the model formula")
	CMD.PersistentFlags().StringVarP(&flags.model, "model", "M", "",
		"set the model save path (overwrites the setting in the configuration file)")
	CMD.PersistentFlags().BoolVarP(&flags.update, "update", "u", false,
		"overwrite the model if it already exists")
	CMD.PersistentFlags().BoolVarP(&flags.watch, "watch", "w", false,
		"log the engine's training progress")
	CMD.AddCommand(svcCMD, logitCMD, mlpCMD, bayesCMD)
}

// setup connects to the engine and prepares the command context.
// With --watch set it also starts the progress watcher; the watcher
// dies with the context.
func setup() (*internal.Config, *engine.Client, context.Context, context.CancelFunc) {
	c, e, err := flags.Connect()
	chk(err)
	if flags.data == "" {
		chk(fmt.Errorf("fit: missing --data"))
	}
	internal.UpdateInConfig(&c.Model, flags.model)
	ctx, cancel := flags.Context()
	if flags.watch {
		go func() {
			err := engine.Watch(ctx, c.Engine, engine.Dataset(flags.data), func(ev engine.Event) {
				log.Printf("progress: %s", ev)
			})
			if err != nil {
				log.Printf("warning: %v", err)
			}
		}()
	}
	return c, e, ctx, cancel
}

// save persists the fitted model if a save path is configured.
func save(ctx context.Context, e engine.Engine, m *remfit.Model, c *internal.Config) {
	if c.Model == "" {
		return
	}
	chk(m.Save(ctx, e, c.Model, flags.update))
	fmt.Printf("saved %s model to %s\n", m.Kind(), c.Model)
}

func chk(err error) {
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}
