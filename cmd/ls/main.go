// Command ls lists a directory's entries as a stream of records, one
// per entry: a bare text name, or with -l an {name, kind} map.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wgoodall01/monch/internal/monchio"
	"github.com/wgoodall01/monch/record"
)

func main() {
	var all, long bool

	cmd := &cobra.Command{
		Use:   "ls [directory]",
		Short: "List a directory's entries as structured records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return run(dir, all, long)
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "do not ignore entries starting with '.'")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "include file metadata")

	if err := cmd.Execute(); err != nil {
		monchio.Fail("ls", err)
	}
}

func run(dir string, all, long bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if !all && len(name) > 0 && name[0] == '.' {
			continue
		}

		if !long {
			if err := monchio.Put(record.Text(name)); err != nil {
				return err
			}
			continue
		}

		kind := "Unknown"
		if entry.IsDir() {
			kind = "Dir"
		} else if entry.Type().IsRegular() {
			kind = "File"
		}

		v := record.Map(
			record.MapEntry{Key: record.Text("name"), Value: record.Text(name)},
			record.MapEntry{Key: record.Text("kind"), Value: record.Text(kind)},
		)
		if err := monchio.Put(v); err != nil {
			return err
		}
	}
	return nil
}
