package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thunklang/thunklang"
	"github.com/thunklang/thunklang/internal/examples"
)

var fibonacciUseCompiler bool

var fibonacciCmd = &cobra.Command{
	Use:   "fibonacci [n]",
	Short: "Compute the nth Fibonacci number",
	Args:  cobra.ExactArgs(1),
	RunE:  runFibonacci,
}

func init() {
	rootCmd.AddCommand(fibonacciCmd)
	fibonacciCmd.Flags().BoolVar(&fibonacciUseCompiler, "compile", false, "specialize the program instead of tree-walking it")
}

func runFibonacci(_ *cobra.Command, args []string) error {
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid n %q: %w", args[0], err)
	}

	program := examples.Fibonacci()

	var result int64
	if fibonacciUseCompiler {
		run, err := thunklang.Specialize[int64, int64](program)
		if err != nil {
			return err
		}
		result, err = run(n)
		if err != nil {
			return err
		}
	} else {
		result, err = thunklang.Evaluate[int64, int64](program, n)
		if err != nil {
			return err
		}
	}

	fmt.Println(result)
	return nil
}
