package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thunklang/thunklang"
	"github.com/thunklang/thunklang/internal/config"
	"github.com/thunklang/thunklang/internal/examples"
)

var (
	mandelbrotConfigPath  string
	mandelbrotUseCompiler bool
)

var mandelbrotCmd = &cobra.Command{
	Use:   "mandelbrot",
	Short: "Render the Mandelbrot set as ASCII art",
	Long: `Renders the Mandelbrot set as ASCII art, one character per pixel,
using the viewport and complex-plane window from --config, or the
reference implementation's own example arguments if --config is omitted.`,
	Args: cobra.NoArgs,
	RunE: runMandelbrot,
}

func init() {
	rootCmd.AddCommand(mandelbrotCmd)
	mandelbrotCmd.Flags().StringVar(&mandelbrotConfigPath, "config", "", "YAML file with viewport_width, viewport_height, x1, y1, x2, y2, max_iterations")
	mandelbrotCmd.Flags().BoolVar(&mandelbrotUseCompiler, "compile", false, "specialize the program instead of tree-walking it")
}

func runMandelbrot(_ *cobra.Command, _ []string) error {
	cfg := config.DefaultMandelbrot()
	if mandelbrotConfigPath != "" {
		loaded, err := config.LoadMandelbrot(mandelbrotConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	program := examples.Mandelbrot()
	input := cfg.ToInput()

	if mandelbrotUseCompiler {
		run, err := thunklang.Specialize[examples.MandelbrotInput, struct{}](program)
		if err != nil {
			return err
		}
		if _, err := run(input); err != nil {
			return err
		}
		return nil
	}

	if _, err := thunklang.Evaluate[examples.MandelbrotInput, struct{}](program, input); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "rendered with the tree-walking evaluator")
	}
	return nil
}
