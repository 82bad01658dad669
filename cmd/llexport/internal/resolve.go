package internal

import (
	"fmt"
	"io"

	"github.com/goplus/llexport/internal/probe"
	"github.com/goplus/llexport/linkage"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve markers for the given facts",
	Long: `Resolve prints the calling-convention and export markers for a build
described by flags, config file or LLEXPORT_* variables. -D flags in
CPPFLAGS and CFLAGS count as prior definitions of the calling-convention macro.`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	addProfileFlags(resolveCmd.Flags())
	addFactFlags(resolveCmd.Flags())
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.LinkageProfile()
	if err != nil {
		return err
	}
	f, err := cfg.Facts()
	if err != nil {
		return err
	}
	return printResolution(cmd.OutOrStdout(), f, p, probe.FlagsFromEnv())
}

func printResolution(w io.Writer, f linkage.Facts, p linkage.Profile, env linkage.Defines) error {
	t := linkage.Resolve(f)
	m := linkage.Spell(t, env, p)
	_, err := fmt.Fprintf(w, "facts:    %s\ncallconv: %s%s\nexport:   %s%s\n",
		f, t.CallConv, spelled(p.CallConvMacro, m.CallConv), t.Export, spelled(p.ExportMacro, m.Export))
	return err
}

func spelled(macro, text string) string {
	if text == "" {
		return fmt.Sprintf(" (#define %s)", macro)
	}
	return fmt.Sprintf(" (#define %s %s)", macro, text)
}
