package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/goplus/llexport/internal/probe"
	"github.com/goplus/llexport/linkage"
	"github.com/goplus/llexport/pkgs/header"
	"github.com/spf13/cobra"
)

var (
	headerOutput   string
	headerResolved bool
)

var headerCmd = &cobra.Command{
	Use:   "header",
	Short: "Generate the export header",
	Long: `Header writes a C header defining the calling-convention and export
macros. By default the header carries the whole decision table as
preprocessor conditionals; with --resolved it pins the markers for one
set of facts.`,
	Args: cobra.NoArgs,
	RunE: runHeader,
}

func init() {
	headerCmd.Flags().StringVarP(&headerOutput, "output", "o", "", "Write the header to this file instead of stdout")
	headerCmd.Flags().BoolVar(&headerResolved, "resolved", false, "Pin markers for the given facts")
	addProfileFlags(headerCmd.Flags())
	addFactFlags(headerCmd.Flags())
	rootCmd.AddCommand(headerCmd)
}

func runHeader(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.LinkageProfile()
	if err != nil {
		return err
	}
	var f linkage.Facts
	if headerResolved {
		if f, err = cfg.Facts(); err != nil {
			return err
		}
	}

	env := probe.FlagsFromEnv()
	if headerOutput != "" {
		err = writeHeaderFile(headerOutput, p, f, headerResolved, env)
	} else {
		err = writeHeader(cmd.OutOrStdout(), p, f, headerResolved, env)
	}
	if err != nil {
		return fmt.Errorf("failed to generate header: %w", err)
	}
	return nil
}

// writeHeaderFile writes the header to path, including errors from close.
func writeHeaderFile(path string, p linkage.Profile, f linkage.Facts, resolved bool, env linkage.Defines) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeHeader(file, p, f, resolved, env); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeHeader(w io.Writer, p linkage.Profile, f linkage.Facts, resolved bool, env linkage.Defines) error {
	if !resolved {
		return header.Generate(w, p)
	}
	m := linkage.Spell(linkage.Resolve(f), env, p)
	return header.Resolved(w, p, f, m)
}
