package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/goplus/llexport/linkage"
)

// ErrUnsupportedDriver is returned for compiler drivers that do not take
// GCC-style flags, such as MSVC's cl.
var ErrUnsupportedDriver = errors.New("compiler driver does not accept GCC-style flags")

// Compiler returns the C compiler command line to probe: $CC when set,
// otherwise "cc". CC may carry arguments, e.g. "gcc -m32".
func Compiler() []string {
	if cc := strings.Fields(os.Getenv("CC")); len(cc) > 0 {
		return cc
	}
	return []string{"cc"}
}

// FlagsFromEnv returns the -D and -U flags of CPPFLAGS and CFLAGS, in the
// order the compiler sees them.
func FlagsFromEnv() linkage.Defines {
	return linkage.ParseFlags(envDefineArgs())
}

// envDefineArgs keeps only the -D and -U arguments of CPPFLAGS and CFLAGS;
// anything else (-c, -o) would change what the probe produces.
func envDefineArgs() []string {
	var out []string
	for _, key := range []string{"CPPFLAGS", "CFLAGS"} {
		args := strings.Fields(os.Getenv(key))
		for i := 0; i < len(args); i++ {
			arg := args[i]
			switch {
			case arg == "-D" || arg == "-U":
				if i+1 < len(args) {
					out = append(out, arg, args[i+1])
					i++
				}
			case strings.HasPrefix(arg, "-D"), strings.HasPrefix(arg, "-U"):
				out = append(out, arg)
			}
		}
	}
	return out
}

// clStyle reports whether bin is an MSVC-style driver (cl, clang-cl).
func clStyle(bin string) bool {
	if i := strings.LastIndexAny(bin, `/\`); i >= 0 {
		bin = bin[i+1:]
	}
	name := strings.TrimSuffix(strings.ToLower(bin), ".exe")
	return name == "cl" || name == "clang-cl"
}

// Predefined runs the compiler in preprocess-only mode on an empty input
// and returns the macros it predefines. -D and -U flags in args are part of
// the result, the same way the compiler applies them.
//
// The compiler must be a GCC-compatible driver (gcc, clang, MinGW); cl-style
// drivers fail with ErrUnsupportedDriver.
func Predefined(ctx context.Context, cc []string, args ...string) (linkage.Defines, error) {
	if len(cc) == 0 {
		return nil, fmt.Errorf("probe: no compiler")
	}
	if clStyle(cc[0]) {
		return nil, fmt.Errorf("probe %s: %w", cc[0], ErrUnsupportedDriver)
	}
	cmdArgs := append([]string{}, cc[1:]...)
	cmdArgs = append(cmdArgs, args...)
	cmdArgs = append(cmdArgs, "-dM", "-E", "-x", "c", os.DevNull)

	slog.Debug("probe compiler", "cmd", cc[0], "args", cmdArgs)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, cc[0], cmdArgs...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("probe %s: %w: %s", cc[0], err, msg)
		}
		return nil, fmt.Errorf("probe %s: %w", cc[0], err)
	}
	defs, err := linkage.ParseDefines(&stdout)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", cc[0], err)
	}
	slog.Debug("probe result", "macros", len(defs), "compiler", linkage.DetectCompiler(defs).String())
	return defs, nil
}

// Facts probes the compiler and detects the facts of a translation unit
// built with the given flags plus CPPFLAGS and CFLAGS from the environment.
func Facts(ctx context.Context, cc []string, p linkage.Profile, args ...string) (linkage.Facts, linkage.Defines, error) {
	defs, err := Predefined(ctx, cc, append(envDefineArgs(), args...)...)
	if err != nil {
		return linkage.Facts{}, nil, err
	}
	return linkage.Detect(defs, p), defs, nil
}
