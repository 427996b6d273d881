package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file.pseudo>",
	Short: "Compile and execute a pseudocode file with a local python3",
	Long: `run is a developer convenience, not the project's execution sandbox:
it compiles the given file, writes the generated Python to a temporary
file, and shells out to a local python3 interpreter, forwarding
stdin/stdout/stderr and the child's exit code.

It has no timeout or cancellation contract and does not provide the
virtual file injection a real sandboxed executor would; it exists purely
so a compiled program can be exercised locally during development.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
	inputFile := args[0]
	result, err := compileFile(inputFile)
	if err != nil {
		return err
	}
	if !result.Success {
		printDiagnostics(inputFile, result.Diagnostics)
		return fmt.Errorf("compilation failed with %d error(s)", countErrors(result.Diagnostics))
	}

	pythonBin, err := exec.LookPath("python3")
	if err != nil {
		return fmt.Errorf("python3 not found on PATH: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "pseudogo-run-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	scriptPath := filepath.Join(tmpDir, "program.py")
	if err := os.WriteFile(scriptPath, []byte(result.PythonCode), 0o644); err != nil {
		return fmt.Errorf("writing generated script: %w", err)
	}

	cmd := exec.Command(pythonBin, scriptPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting python3: %w", err)
	}

	go func() {
		sig := <-sigCh
		if cmd.Process != nil {
			_ = cmd.Process.Signal(sig)
		}
	}()

	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("running generated program: %w", err)
	}
	return nil
}
