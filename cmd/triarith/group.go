// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lossdev/converters"
)

func newGroupCmd(a *app) *cobra.Command {
	var by []string
	cmd := &cobra.Command{
		Use:   "group <file>",
		Short: "Sum rows sharing the same values of some key fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := converters.ReadFile(args[0])
			if err != nil {
				return err
			}
			g, err := t.GroupBy(by...)
			if err != nil {
				return err
			}
			sum, err := g.Sum()
			if err != nil {
				return err
			}

			return a.emit(cmd, sum)
		},
	}
	cmd.Flags().StringSliceVar(&by, "by", nil, "key fields to group on")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}
