// Command sed replaces occurrences of a pattern in each record's
// selected field (the whole record, by default) and writes the
// replaced text.
package main

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wgoodall01/monch/datapath"
	"github.com/wgoodall01/monch/internal/monchio"
	"github.com/wgoodall01/monch/record"
)

func main() {
	var field string

	cmd := &cobra.Command{
		Use:   "sed <pattern> <replacement>",
		Short: "Replace a pattern in the selected field of each record on stdin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], datapath.Parse(field))
		},
	}
	cmd.Flags().StringVarP(&field, "field", "f", "", "data path selecting the field to replace within")

	if err := cmd.Execute(); err != nil {
		monchio.Fail("sed", err)
	}
}

func run(pattern, replacement string, field datapath.Path) error {
	for v, err := range monchio.InputStream() {
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		selected := datapath.Get(v, field)
		text, ok := selected.AsText()
		if !ok {
			monchio.Logf("sed", "unexpected non-string data item passed in")
			continue
		}

		if err := monchio.Put(record.Text(strings.ReplaceAll(text, pattern, replacement))); err != nil {
			return err
		}
	}
	return nil
}
