package internal

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"git.sr.ht/~flobar/remfit/pkg/remfit"
	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// remfit version
const Version = "v0.0.1"

// DefaultEngine is used if neither the configuration file nor the
// command line name an engine address.
const DefaultEngine = "http://localhost:6066"

// Flags is used to define the standard command-line parameters for
// remfit sub commands.
type Flags struct {
	Engine  string        // Engine address
	Params  string        // Path to the configuration file
	Timeout time.Duration // Per-command deadline; 0 waits forever
	Log     bool          // Enable logging
}

// Init initializes the standard commandline arguments for the given
// subcommand.
func (flags *Flags) Init(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&flags.Engine, "engine", "g", "",
		"set the engine address (overwrites the setting in the configuration file)")
	cmd.PersistentFlags().StringVarP(&flags.Params, "parameters", "P", defaultParams,
		"set the path to the configuration file")
	cmd.PersistentFlags().DurationVarP(&flags.Timeout, "timeout", "t", 0,
		"set the command deadline (0 waits forever)")
	cmd.PersistentFlags().BoolVarP(&flags.Log, "log", "l", false,
		"enable logging")
}

const defaultParams = "config.toml"

// Connect reads the configuration file and creates the engine client
// for the configured address.  A missing default configuration file
// is not an error; commands that need no hyperparameters run without
// one.
func (flags *Flags) Connect() (*Config, *engine.Client, error) {
	c := &Config{}
	if _, err := os.Stat(flags.Params); !os.IsNotExist(err) || flags.Params != defaultParams {
		var err error
		c, err = ReadConfig(flags.Params)
		if err != nil {
			return nil, nil, err
		}
	}
	UpdateInConfig(&c.Engine, flags.Engine)
	if c.Engine == "" {
		c.Engine = DefaultEngine
	}
	remfit.SetLog(flags.Log)
	e, err := engine.NewClient(c.Engine)
	if err != nil {
		return nil, nil, err
	}
	return c, e, nil
}

// Context returns the context for the command's remote calls.
func (flags *Flags) Context() (context.Context, context.CancelFunc) {
	if flags.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), flags.Timeout)
}
