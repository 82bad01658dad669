package internal

import (
	"log"
	"log/slog"
	"os"

	"github.com/goplus/llexport/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "llexport",
	Short: "llexport resolves export markers for C shared libraries",
	Long: `llexport decides which calling convention and export marker the public
declarations of a C shared library carry, for a given build role, target
platform and compiler, and emits headers and build flags that apply them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default llexport.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

// loadConfig merges the config file, LLEXPORT_* variables and the flags
// set on cmd, and sets up logging accordingly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.Verbose)
	if cfg.File != "" {
		slog.Debug("using config file", "path", cfg.File)
	}
	return cfg, nil
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func addProfileFlags(fs *pflag.FlagSet) {
	fs.String("profile", "", "Path of an _export.gox profile")
	fs.String("lib", "", "Library name, used to derive macro names")
	fs.String("producer", "", "Macro defined when building the library (default <LIB>_LIB)")
	fs.String("suppress", "", "Macro that suppresses the export marker (default <LIB>_NO_EXPORT)")
	fs.String("callconv", "", "Calling-convention macro (default STDCALL)")
	fs.String("export", "", "Export macro (default EXPORT)")
	fs.String("min-compiler", "", "Oldest GNU-compatible compiler trusted with visibility attributes")
}

func addFactFlags(fs *pflag.FlagSet) {
	fs.String("role", "", "Build role: producer or consumer")
	fs.String("platform", "", "Target platform: windows, unix or a GOOS name")
	fs.String("capability", "", "Compiler capability: visibility or novisibility")
	fs.Bool("no-export", false, "Suppress the export marker")
}
