package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/goplus/llexport/internal/probe"
	"github.com/goplus/llexport/linkage"
	"github.com/spf13/cobra"
)

var probeTimeout time.Duration

var probeCmd = &cobra.Command{
	Use:   "probe [-- compiler flags]",
	Short: "Detect facts from a real compiler",
	Long: `Probe runs the C compiler ($CC, or cc) in preprocess-only mode, detects
the build role, target platform and compiler capability from its predefined
macros and the given flags, and prints the resolved markers. The compiler
must accept GCC-style flags; cl and clang-cl are rejected.`,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().String("cc", "", "Compiler command line (default $CC or cc)")
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 30*time.Second, "Compiler timeout")
	addProfileFlags(probeCmd.Flags())
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.LinkageProfile()
	if err != nil {
		return err
	}
	cc := cfg.Compiler()
	if len(cc) == 0 {
		cc = probe.Compiler()
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	f, defs, err := probe.Facts(ctx, cc, p, args...)
	if err != nil {
		return fmt.Errorf("failed to probe compiler: %w", err)
	}
	w := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(w, "compiler: %s\n", linkage.DetectCompiler(defs)); err != nil {
		return err
	}
	return printResolution(w, f, p, defs)
}
