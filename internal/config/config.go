package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/goplus/llexport/internal/profile"
	"github.com/goplus/llexport/linkage"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "LLEXPORT_"

// Config is the merged configuration of one llexport invocation.
type Config struct {
	// Profile is the path of an "_export.gox" profile. Macro names set
	// below override the ones it declares.
	Profile     string `koanf:"profile"`
	Lib         string `koanf:"lib"`
	Producer    string `koanf:"producer"`
	Suppress    string `koanf:"suppress"`
	CallConv    string `koanf:"callconv"`
	Export      string `koanf:"export"`
	MinCompiler string `koanf:"min_compiler"`

	CC         string `koanf:"cc"`
	Role       string `koanf:"role"`
	Platform   string `koanf:"platform"`
	Capability string `koanf:"capability"`
	NoExport   bool   `koanf:"no_export"`

	Verbose bool `koanf:"verbose"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// findConfigFile finds the config file to use.
// Priority: explicit path > llexport.yaml > llexport.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"llexport.yaml", "llexport.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from defaults, the config file, environment
// variables and flags, each layer overriding the previous one. Only flags
// that were set on the command line take part.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"role":     linkage.Consumer.String(),
		"platform": linkage.PlatformOf(runtime.GOOS).String(),
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// LLEXPORT_MIN_COMPILER -> min_compiler
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used
	return &cfg, nil
}

// LinkageProfile returns the macro names to use: the .gox profile if one
// is configured, then the individual keys, then defaults for the library.
func (c *Config) LinkageProfile() (linkage.Profile, error) {
	var p linkage.Profile
	if c.Profile != "" {
		loaded, err := profile.Load(c.Profile)
		if err != nil {
			return linkage.Profile{}, fmt.Errorf("failed to load profile %s: %w", c.Profile, err)
		}
		p = loaded
	}
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&p.Lib, c.Lib)
	override(&p.ProducerMacro, c.Producer)
	override(&p.SuppressMacro, c.Suppress)
	override(&p.CallConvMacro, c.CallConv)
	override(&p.ExportMacro, c.Export)
	override(&p.MinCompiler, c.MinCompiler)
	return p.WithDefaults(), nil
}

// Facts returns the facts named by the configuration, for resolving
// without a compiler.
func (c *Config) Facts() (linkage.Facts, error) {
	role, err := linkage.ParseRole(c.Role)
	if err != nil {
		return linkage.Facts{}, err
	}
	platform, err := linkage.ParsePlatform(c.Platform)
	if err != nil {
		return linkage.Facts{}, err
	}
	capability, err := linkage.ParseCapability(c.Capability)
	if err != nil {
		return linkage.Facts{}, err
	}
	return linkage.Facts{
		Role:           role,
		Platform:       platform,
		Capability:     capability,
		SuppressExport: c.NoExport,
	}, nil
}

// Compiler returns the compiler command line: the cc key when set,
// otherwise nil so that the caller falls back to $CC.
func (c *Config) Compiler() []string {
	return strings.Fields(c.CC)
}
