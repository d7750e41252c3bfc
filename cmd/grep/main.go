// Command grep passes through each record on stdin whose selected
// field (the whole record, by default) is text containing a pattern.
package main

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wgoodall01/monch/datapath"
	"github.com/wgoodall01/monch/internal/monchio"
)

func main() {
	var field string

	cmd := &cobra.Command{
		Use:   "grep <pattern>",
		Short: "Filter records on stdin whose selected field contains a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], datapath.Parse(field))
		},
	}
	cmd.Flags().StringVarP(&field, "field", "f", "", "data path selecting the field to match against")

	if err := cmd.Execute(); err != nil {
		monchio.Fail("grep", err)
	}
}

func run(pattern string, field datapath.Path) error {
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
			monchio.Logf("grep", "unexpected non-string data item passed in")
			continue
		}

		if strings.Contains(text, pattern) {
			if err := monchio.Put(v); err != nil {
				return err
			}
		}
	}
	return nil
}
