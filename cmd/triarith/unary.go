// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lossdev/converters"
)

func newUnaryCmd(a *app) *cobra.Command {
	var decimals int
	cmd := &cobra.Command{
		Use:       "unary <neg|abs|round> <file>",
		Short:     "Apply a unary operator to every cell",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"neg", "abs", "round"},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := converters.ReadFile(args[1])
			if err != nil {
				return err
			}
			switch args[0] {
			case "neg":
				t = a.engine.Neg(t)
			case "abs":
				t = a.engine.Abs(t)
			case "round":
				t = a.engine.Round(t, decimals)
			default:
				return fmt.Errorf("unknown operator %q (want neg, abs or round)", args[0])
			}

			return a.emit(cmd, t)
		},
	}
	cmd.Flags().IntVar(&decimals, "decimals", 0, "decimals kept by round")

	return cmd
}
