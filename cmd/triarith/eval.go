// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lossdev/converters"
	"github.com/katalvlaran/lossdev/triangle"
)

type binaryFunc func(e *triangle.Engine, a *triangle.Triangle, b triangle.Operand) (*triangle.Triangle, error)

var binaryOps = map[string]binaryFunc{
	"add":       (*triangle.Engine).Add,
	"sub":       (*triangle.Engine).Sub,
	"rsub":      (*triangle.Engine).RSub,
	"mul":       (*triangle.Engine).Mul,
	"div":       (*triangle.Engine).Div,
	"rdiv":      (*triangle.Engine).RDiv,
	"pow":       (*triangle.Engine).Pow,
	"less":      (*triangle.Engine).Less,
	"lessequal": (*triangle.Engine).LessEqual,
}

func opNames[V any](m map[string]V) string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <op> <left> <right>",
		Short: "Combine two triangles, or a triangle and a number",
		Long: `eval aligns <left> and <right> and applies <op> cell by cell.
<right> is either a triangle document or a number.

Operators: ` + opNames(binaryOps),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := binaryOps[strings.ToLower(args[0])]
			if !ok {
				return fmt.Errorf("unknown operator %q (want one of %s)", args[0], opNames(binaryOps))
			}
			left, err := converters.ReadFile(args[1])
			if err != nil {
				return err
			}
			right, err := readOperand(args[2])
			if err != nil {
				return err
			}

			out, err := fn(a.engine, left, right)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			a.log.Debug("evaluated", zap.String("op", args[0]), zap.Stringer("result", out))

			return a.emit(cmd, out)
		},
	}
}

// readOperand parses arg as a number, falling back to a triangle document.
func readOperand(arg string) (triangle.Operand, error) {
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return triangle.Scalar(f), nil
	}

	return converters.ReadFile(arg)
}
