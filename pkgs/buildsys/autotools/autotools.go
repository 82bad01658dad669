package autotools

import (
	"os"
	"path/filepath"

	"github.com/goplus/llexport/linkage"
	"github.com/goplus/llexport/pkgs/buildsys"
)

// AutoTools wraps common Autotools build steps with chainable configuration.
type AutoTools struct {
	SourceDir  string
	buildDir   string
	tempBuild  bool
	installDir string
	env        map[string]string
}

var _ buildsys.BuildSystem = (*AutoTools)(nil)

// New creates a new AutoTools helper building sourceDir out of tree.
func New(sourceDir string) *AutoTools {
	buildDir, err := os.MkdirTemp("", "llexport-build-")
	temp := err == nil
	if !temp {
		buildDir = filepath.Join(sourceDir, "build")
	}
	return &AutoTools{
		SourceDir:  sourceDir,
		buildDir:   buildDir,
		tempBuild:  temp,
		installDir: filepath.Join(sourceDir, "build"),
		env:        map[string]string{},
	}
}

func (a *AutoTools) Source(dir string) {
	a.SourceDir = dir
}

// BuildDir moves the build out of the temporary directory New created.
func (a *AutoTools) BuildDir(dir string) {
	if a.tempBuild {
		os.Remove(a.buildDir)
		a.tempBuild = false
	}
	a.buildDir = dir
}

func (a *AutoTools) InstallDir(dir string) {
	a.installDir = dir
}

func (a *AutoTools) Env(key, value string) {
	if a.env == nil {
		a.env = map[string]string{}
	}
	a.env[key] = value
}

// Linkage adds the plan's macros to CPPFLAGS and, when the plan hides
// symbols by default, -fvisibility=hidden to CFLAGS and CXXFLAGS.
func (a *AutoTools) Linkage(plan linkage.Plan) {
	for _, d := range plan.Defines {
		a.appendFlag("CPPFLAGS", "-D"+d)
	}
	if plan.HideByDefault {
		a.appendFlag("CFLAGS", "-fvisibility=hidden")
		a.appendFlag("CXXFLAGS", "-fvisibility=hidden")
	}
}

// EnvOf returns the value configure sees for key.
func (a *AutoTools) EnvOf(key string) string {
	if v, ok := a.env[key]; ok {
		return v
	}
	return os.Getenv(key)
}

func (a *AutoTools) appendFlag(key, flag string) {
	a.Env(key, buildsys.JoinFlags(a.EnvOf(key), flag))
}

func (a *AutoTools) dir() string {
	if a.buildDir == "" {
		return "."
	}
	return a.buildDir
}

// Configure runs ./configure with standard flags.
func (a *AutoTools) Configure(args ...string) error {
	buildDir := a.dir()
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return err
	}

	exe := "./configure"
	if buildDir != "." {
		exe = filepath.Join(a.SourceDir, "configure")
		if abs, err := filepath.Abs(exe); err == nil {
			exe = abs
		}
	}

	configArgs := []string{}
	if a.installDir != "" {
		configArgs = append(configArgs, "--prefix="+a.installDir)
	}
	configArgs = append(configArgs, args...)

	return buildsys.Run(exe, configArgs, a.env, buildDir)
}

// Build runs make (or provided args) in the build directory.
func (a *AutoTools) Build(args ...string) error {
	cmdArgs := []string{"make"}
	if len(args) > 0 {
		cmdArgs = args
	}
	return buildsys.Run(cmdArgs[0], cmdArgs[1:], a.env, a.dir())
}

// Install runs make install (or provided args) in the build directory.
func (a *AutoTools) Install(args ...string) error {
	cmdArgs := []string{"make", "install"}
	if len(args) > 0 {
		cmdArgs = args
	}
	return buildsys.Run(cmdArgs[0], cmdArgs[1:], a.env, a.dir())
}

// OutputDir returns the install dir if set, otherwise the build dir.
func (a *AutoTools) OutputDir() string {
	if a.installDir != "" {
		return a.installDir
	}
	return a.buildDir
}
