package internal

import (
	"fmt"
	"io"
	"strings"

	"github.com/goplus/llexport/linkage"
	"github.com/goplus/llexport/pkgs/buildsys"
	"github.com/goplus/llexport/pkgs/buildsys/autotools"
	"github.com/goplus/llexport/pkgs/buildsys/cmake"
	"github.com/spf13/cobra"
)

var buildSystem string

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Print build flags that apply the resolved linkage",
	Long: `Flags prints the compiler flags a build needs so that the export header
resolves as planned: the producer and suppression macros and, for producers
that can control visibility, hidden-by-default symbols. With --build-system
the flags are rendered as CMake cache entries or Autotools variables.`,
	Args: cobra.NoArgs,
	RunE: runFlags,
}

func init() {
	flagsCmd.Flags().StringVar(&buildSystem, "build-system", "", "Render for a build system: cmake or autotools")
	addProfileFlags(flagsCmd.Flags())
	addFactFlags(flagsCmd.Flags())
	rootCmd.AddCommand(flagsCmd)
}

func runFlags(cmd *cobra.Command, args []string) error {
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
	return printFlags(cmd.OutOrStdout(), buildSystem, f, p)
}

func printFlags(w io.Writer, system string, f linkage.Facts, p linkage.Profile) error {
	var lines []string
	switch system {
	case "":
		if flags := linkage.PlanFor(f, p).Flags(); len(flags) > 0 {
			lines = []string{strings.Join(flags, " ")}
		}
	case "cmake":
		c := new(cmake.CMake)
		buildsys.Apply(c, f, p)
		lines = c.Args()
	case "autotools":
		a := new(autotools.AutoTools)
		buildsys.Apply(a, f, p)
		for _, key := range []string{"CPPFLAGS", "CFLAGS", "CXXFLAGS"} {
			if v := a.EnvOf(key); v != "" {
				lines = append(lines, fmt.Sprintf("%s=%q", key, v))
			}
		}
	default:
		return fmt.Errorf("unknown build system %q: want cmake or autotools", system)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
