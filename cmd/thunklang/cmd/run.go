package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/thunklang/thunklang"
	"github.com/thunklang/thunklang/internal/ast"
	"github.com/thunklang/thunklang/internal/compile"
	"github.com/thunklang/thunklang/internal/eval"
	"github.com/thunklang/thunklang/internal/examples"
)

var (
	runProgramName string
	runInputJSON   string
	runJSONOutput  bool
	runUseCompiler bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a bundled program against a JSON-encoded input",
	Long: `Runs one of the bundled example programs against an input decoded from
a JSON literal given on the command line. There is no textual syntax for
thunklang programs themselves — --program only selects among the programs
internal/examples already builds as ASTs; --input crosses the host boundary
through JSON because the core has nothing else to parse a command-line
argument with.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runProgramName, "program", "fibonacci", "bundled program to run (fibonacci, mandelbrot)")
	runCmd.Flags().StringVar(&runInputJSON, "input", "null", "JSON literal decoded into the program's input")
	runCmd.Flags().BoolVar(&runJSONOutput, "json", false, "emit the result as a JSON line instead of the program's own rendering")
	runCmd.Flags().BoolVar(&runUseCompiler, "compile", false, "specialize the program instead of tree-walking it")
}

func runRun(_ *cobra.Command, _ []string) error {
	program, err := lookupProgram(runProgramName)
	if err != nil {
		return err
	}

	input, err := decodeValue(program.Input, gjson.Parse(runInputJSON))
	if err != nil {
		return fmt.Errorf("--input: %w", err)
	}

	var result ast.Value
	if runUseCompiler {
		compiled, err := compile.Compile(program)
		if err != nil {
			return err
		}
		result, err = compiled.Run(input)
		if err != nil {
			return err
		}
	} else {
		result, err = eval.Eval(program, input)
		if err != nil {
			return err
		}
	}

	if runJSONOutput {
		line, err := encodeValueJSON(result)
		if err != nil {
			return fmt.Errorf("--json: %w", err)
		}
		fmt.Println(line)
		return nil
	}

	return result.Render(rootCmd.OutOrStdout())
}

func lookupProgram(name string) (*ast.Program, error) {
	switch name {
	case "fibonacci":
		return examples.Fibonacci(), nil
	case "mandelbrot":
		return examples.Mandelbrot(), nil
	default:
		return nil, fmt.Errorf("unknown --program %q (want fibonacci or mandelbrot)", name)
	}
}

// decodeValue decodes one gjson result into a Value of type ty. Tuple
// decodes its JSON array elementwise, recursing with ty's element types;
// every other Kind reads a single JSON scalar.
func decodeValue(ty ast.Type, result gjson.Result) (ast.Value, error) {
	switch ty.Kind {
	case ast.KindUnit:
		return ast.UnitValue{}, nil
	case ast.KindBool:
		if result.Type != gjson.True && result.Type != gjson.False {
			return nil, fmt.Errorf("expected a JSON bool for type %s, got %s", ty, result.Raw)
		}
		return ast.BoolValue{V: result.Bool()}, nil
	case ast.KindInt:
		if result.Type != gjson.Number {
			return nil, fmt.Errorf("expected a JSON number for type %s, got %s", ty, result.Raw)
		}
		return ast.IntValue{V: result.Int()}, nil
	case ast.KindFloat:
		if result.Type != gjson.Number {
			return nil, fmt.Errorf("expected a JSON number for type %s, got %s", ty, result.Raw)
		}
		return ast.FloatValue{V: float32(result.Float())}, nil
	case ast.KindChar:
		runes := []rune(result.String())
		if result.Type != gjson.String || len(runes) != 1 {
			return nil, fmt.Errorf("expected a single-character JSON string for type %s, got %s", ty, result.Raw)
		}
		return ast.CharValue{V: runes[0]}, nil
	case ast.KindStr:
		if result.Type != gjson.String {
			return nil, fmt.Errorf("expected a JSON string for type %s, got %s", ty, result.Raw)
		}
		return ast.StrValue{V: result.String()}, nil
	case ast.KindTuple:
		elems := result.Array()
		if len(elems) != len(ty.Elems) {
			return nil, fmt.Errorf("expected a %d-element JSON array for type %s, got %d elements", len(ty.Elems), ty, len(elems))
		}
		values := make([]ast.Value, len(elems))
		for i, elem := range elems {
			v, err := decodeValue(ty.Elems[i], elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			values[i] = v
		}
		return ast.TupleValue{Elems: values}, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", ty)
	}
}

// encodeValueJSON builds a JSON document key-by-key with sjson, the mirror
// of decodeValue: Tuple becomes a JSON array under "value", everything else
// a single JSON scalar under "value".
func encodeValueJSON(v ast.Value) (string, error) {
	doc := "{}"
	var err error
	doc, err = sjson.Set(doc, "type", v.TypeOf().String())
	if err != nil {
		return "", err
	}
	return setValueJSON(doc, "value", v)
}

func setValueJSON(doc, path string, v ast.Value) (string, error) {
	switch vv := v.(type) {
	case ast.UnitValue:
		return sjson.Set(doc, path, nil)
	case ast.BoolValue:
		return sjson.Set(doc, path, vv.V)
	case ast.IntValue:
		return sjson.Set(doc, path, vv.V)
	case ast.FloatValue:
		return sjson.Set(doc, path, vv.V)
	case ast.CharValue:
		return sjson.Set(doc, path, string(vv.V))
	case ast.StrValue:
		return sjson.Set(doc, path, vv.V)
	case ast.TupleValue:
		doc, err := sjson.Set(doc, path, []any{})
		if err != nil {
			return "", err
		}
		for i, elem := range vv.Elems {
			doc, err = setValueJSON(doc, fmt.Sprintf("%s.%d", path, i), elem)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
