package version

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"git.sr.ht/~flobar/remfit/cmd/internal"
)

// CMD defines the remfit version command.
var CMD = &cobra.Command{
	Use:   "version",
	Short: "Print remfit's version",
	Run:   run,
}

func run(_ *cobra.Command, args []string) {
	fmt.Printf("%s version: %s [%s/%s]\n", os.Args[0], internal.Version, runtime.GOOS, runtime.GOARCH)
}
