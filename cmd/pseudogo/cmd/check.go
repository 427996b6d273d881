package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halvardsen/pseudogo/internal/diag"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check <file.pseudo>",
	Short: "Report diagnostics without emitting Python",
	Long: `check runs the full compile pipeline and prints diagnostics only; no
Python is emitted, even on success. Intended for editor integrations and
CI, where --json gives the wire-shape diagnostic array described by the
compiler's external interface.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit diagnostics as a JSON array")
}

func runCheck(_ *cobra.Command, args []string) error {
	inputFile := args[0]
	result, err := compileFile(inputFile)
	if err != nil {
		return err
	}

	if checkJSON {
		wire := make([]diag.Wire, len(result.Diagnostics))
		for i, d := range result.Diagnostics {
			wire[i] = d.ToWire()
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(wire); err != nil {
			return fmt.Errorf("encoding diagnostics: %w", err)
		}
	} else {
		printDiagnostics(inputFile, result.Diagnostics)
	}

	if !result.Success {
		return fmt.Errorf("%d error(s) found", countErrors(result.Diagnostics))
	}
	return nil
}
