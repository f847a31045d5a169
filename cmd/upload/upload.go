package upload

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"git.sr.ht/~flobar/remfit/cmd/internal"
	"git.sr.ht/~flobar/remfit/pkg/remfit"
)

// CMD defines the remfit upload command.
var CMD = &cobra.Command{
	Use:   "upload [CSV...]",
	Short: "Upload csv files as datasets",
	Args:  cobra.MinimumNArgs(1),
	Run:   run,
}

var flags = struct {
	internal.Flags
	name string
}{}

func init() {
	flags.Init(CMD)
	CMD.Flags().StringVarP(&flags.name, "name", "n", "",
		"set the dataset name (defaults to the file name)")
}

func run(_ *cobra.Command, args []string) {
	_, e, err := flags.Connect()
	chk(err)
	ctx, cancel := flags.Context()
	defer cancel()
	for _, arg := range args {
		name := flags.name
		if name == "" || len(args) > 1 {
			name = datasetName(arg)
		}
		in, err := os.Open(arg)
		chk(err)
		data, err := remfit.UploadCSV(ctx, e, name, in)
		in.Close()
		chk(err)
		fmt.Printf("uploaded %s as %s\n", arg, data)
	}
}

// datasetName returns the base name of a file without its extension.
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func chk(err error) {
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}
