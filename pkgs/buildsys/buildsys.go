package buildsys

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/goplus/llexport/linkage"
)

// BuildSystem captures shared capabilities of build helpers (CMake, Autotools, etc).
// It keeps the common lifecycle and env setup; implementations add their own extras.
type BuildSystem interface {
	// Linkage passes the export plan of the library to every compiled unit.
	Linkage(plan linkage.Plan)

	// Basic paths.
	Source(dir string)
	BuildDir(dir string)
	InstallDir(dir string)

	// Environment helper.
	Env(key, val string)

	// Lifecycle.
	Configure(args ...string) error
	Build(args ...string) error
	Install(args ...string) error

	// Where artifacts land.
	OutputDir() string
}

// Apply resolves the plan for f and hands it to b.
func Apply(b BuildSystem, f linkage.Facts, p linkage.Profile) linkage.Plan {
	plan := linkage.PlanFor(f, p)
	b.Linkage(plan)
	return plan
}

// Make applies the plan for f to b, then configures, builds and installs
// the library. It stops at the first failing step.
func Make(b BuildSystem, f linkage.Facts, p linkage.Profile) (linkage.Plan, error) {
	plan := Apply(b, f, p)
	if err := b.Configure(); err != nil {
		return plan, fmt.Errorf("configure: %w", err)
	}
	if err := b.Build(); err != nil {
		return plan, fmt.Errorf("build: %w", err)
	}
	if err := b.Install(); err != nil {
		return plan, fmt.Errorf("install: %w", err)
	}
	return plan, nil
}

// Run runs bin in workdir with env layered over the process environment.
func Run(bin string, args []string, env map[string]string, workdir string) error {
	cmd := exec.Command(bin, args...)
	if workdir != "" {
		cmd.Dir = workdir
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(env) > 0 {
		cmd.Env = MergeEnv(os.Environ(), env)
	}
	return cmd.Run()
}

// MergeEnv overlays override on base ("KEY=VALUE" entries) and returns the
// result sorted by key.
func MergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}

// JoinFlags appends flags to a space-separated flag string.
func JoinFlags(current string, flags ...string) string {
	return strings.TrimSpace(current + " " + strings.Join(flags, " "))
}
