package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halvardsen/pseudogo/internal/compiler"
	"github.com/halvardsen/pseudogo/internal/diag"
)

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build <file.pseudo>",
	Short: "Compile a pseudocode file to Python",
	Long: `build reads a pseudocode source file, compiles it, and writes the
generated Python source to stdout or to the file given by -o.

If compilation fails, diagnostics are printed to stderr and the command
exits with a non-zero status; nothing is written to the output.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file path (default: stdout)")
}

func runBuild(_ *cobra.Command, args []string) error {
	inputFile := args[0]
	result, err := compileFile(inputFile)
	if err != nil {
		return err
	}

	if !result.Success {
		printDiagnostics(inputFile, result.Diagnostics)
		return fmt.Errorf("compilation failed with %d error(s)", countErrors(result.Diagnostics))
	}

	if buildOutput == "" {
		fmt.Print(result.PythonCode)
		return nil
	}

	if err := os.WriteFile(buildOutput, []byte(result.PythonCode), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	logger.Info().Str("output", buildOutput).Msg("wrote generated Python source")
	return nil
}

func compileFile(inputFile string) (compiler.CompileResult, error) {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return compiler.CompileResult{}, fmt.Errorf("reading file %s: %w", inputFile, err)
	}
	logger.Debug().Str("file", inputFile).Int("bytes", len(data)).Msg("read source")
	return compiler.Compile(compiler.CompileRequest{
		Source:   string(data),
		Filename: inputFile,
		Strict:   true,
	}), nil
}

func countErrors(ds []diag.Diagnostic) int {
	n := 0
	for _, d := range ds {
		if d.Severity == diag.Error {
			n++
		}
	}
	return n
}

func printDiagnostics(filename string, ds []diag.Diagnostic) {
	for _, d := range ds {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s %s: %s", filename, d.Span.Start.Line, d.Span.Start.Column, d.Severity, d.Code, d.Message)
		if d.Hint != "" {
			fmt.Fprintf(os.Stderr, " (hint: %s)", d.Hint)
		}
		fmt.Fprintln(os.Stderr)
	}
}
