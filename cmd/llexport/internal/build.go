package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goplus/llexport/linkage"
	"github.com/goplus/llexport/pkgs/buildsys"
	"github.com/goplus/llexport/pkgs/buildsys/autotools"
	"github.com/goplus/llexport/pkgs/buildsys/cmake"
	"github.com/spf13/cobra"
)

var (
	buildWith       string
	buildDir        string
	buildInstallDir string
)

var buildCmd = &cobra.Command{
	Use:   "build <source-dir>",
	Short: "Build and install a library with the resolved linkage",
	Long: `Build injects the linkage flags into a CMake or Autotools project, then
configures, builds and installs it. Without --build-dir the build runs in a
temporary directory that is removed afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildWith, "build-system", "cmake", "Build system: cmake or autotools")
	buildCmd.Flags().StringVar(&buildDir, "build-dir", "", "Build directory (default: a temporary directory)")
	buildCmd.Flags().StringVar(&buildInstallDir, "install-dir", "", "Install prefix (default <source-dir>/build)")
	addProfileFlags(buildCmd.Flags())
	addFactFlags(buildCmd.Flags())
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
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
	return buildLibrary(cmd.OutOrStdout(), buildWith, args[0], buildDir, buildInstallDir, f, p)
}

func newBuildSystem(system, sourceDir string) (buildsys.BuildSystem, error) {
	switch system {
	case "cmake":
		return cmake.New(sourceDir), nil
	case "autotools":
		return autotools.New(sourceDir), nil
	}
	return nil, fmt.Errorf("unknown build system %q: want cmake or autotools", system)
}

func buildLibrary(w io.Writer, system, sourceDir, dir, installDir string, f linkage.Facts, p linkage.Profile) error {
	b, err := newBuildSystem(system, sourceDir)
	if err != nil {
		return err
	}
	if dir == "" {
		if dir, err = os.MkdirTemp("", "llexport-build-"); err != nil {
			return err
		}
		defer os.RemoveAll(dir)
	}
	b.BuildDir(dir)
	if installDir != "" {
		b.InstallDir(installDir)
	}

	plan, err := buildsys.Make(b, f, p)
	if err != nil {
		return fmt.Errorf("failed to build %s: %w", sourceDir, err)
	}
	_, err = fmt.Fprintf(w, "facts:     %s\nflags:     %s\ninstalled: %s\n",
		f, strings.Join(plan.Flags(), " "), b.OutputDir())
	return err
}
