// Command get projects one field out of each record on stdin, selected
// by a dotted data path, and writes the selected values to stdout.
package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/wgoodall01/monch/datapath"
	"github.com/wgoodall01/monch/internal/monchio"
)

func main() {
	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Extract a field from each record on stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(datapath.Parse(args[0]))
		},
	}

	if err := cmd.Execute(); err != nil {
		monchio.Fail("get", err)
	}
}

func run(path datapath.Path) error {
	for v, err := range monchio.InputStream() {
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := monchio.Put(datapath.Get(v, path)); err != nil {
			return err
		}
	}
	return nil
}
