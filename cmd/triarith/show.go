// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lossdev/converters"
	"github.com/katalvlaran/lossdev/ndarray"
)

func newShowCmd(_ *app) *cobra.Command {
	var diagonal bool
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Describe a triangle document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := converters.ReadFile(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprint(w, t)
			fmt.Fprintf(w, "  full: %t pattern: %t\n", t.IsFull(), t.IsPattern())
			if !diagonal {
				return nil
			}

			d, err := t.LatestDiagonal()
			if err != nil {
				return err
			}
			keys, cols, origins := t.Keys(), t.Columns(), t.Origins()
			for i, key := range keys {
				for j, col := range cols {
					for k, o := range origins {
						v, err := d.At(ndarray.Index{i, j, k, 0})
						if err != nil {
							return err
						}
						fmt.Fprintf(w, "  %v %s %s: %g\n", key, col, o.Format(time.DateOnly), v)
					}
				}
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&diagonal, "diagonal", false, "also print the latest diagonal")

	return cmd
}
