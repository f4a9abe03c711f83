package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/thunklang/thunklang"
	"github.com/thunklang/thunklang/internal/ast"
	"github.com/thunklang/thunklang/internal/examples"
)

var benchIterations int64

// benchCmd times evaluate and specialize against the same heavier
// Mandelbrot render, matching the reference implementation's own
// mandelbrot_eval/mandelbrot_compile_100k bins and benches/mandelbrot.rs.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the evaluator against the compiler on a larger Mandelbrot render",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().Int64Var(&benchIterations, "max-iterations", 100000, "escape-time iteration budget per pixel")
}

func runBench(_ *cobra.Command, _ []string) error {
	input := examples.MandelbrotInput{
		ViewportWidth:  120,
		ViewportHeight: 60,
		X1:             -2.05,
		Y1:             -1.12,
		X2:             0.47,
		Y2:             1.12,
		MaxIterations:  benchIterations,
	}

	program := examples.Mandelbrot()
	restore := ast.SetOutput(io.Discard)
	defer ast.SetOutput(restore)

	evalStart := time.Now()
	if _, err := thunklang.Evaluate[examples.MandelbrotInput, struct{}](program, input); err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	evalElapsed := time.Since(evalStart)

	specializeStart := time.Now()
	run, err := thunklang.Specialize[examples.MandelbrotInput, struct{}](program)
	if err != nil {
		return fmt.Errorf("specialize: %w", err)
	}
	specializeElapsed := time.Since(specializeStart)

	runStart := time.Now()
	if _, err := run(input); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	runElapsed := time.Since(runStart)

	fmt.Printf("evaluate:            %s\n", evalElapsed)
	fmt.Printf("specialize (compile): %s\n", specializeElapsed)
	fmt.Printf("specialize (run):    %s\n", runElapsed)
	return nil
}
