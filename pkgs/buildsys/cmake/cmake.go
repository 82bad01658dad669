package cmake

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/goplus/llexport/linkage"
	"github.com/goplus/llexport/pkgs/buildsys"
)

type defineValue struct {
	value    string
	typeName string
}

// CMake wraps common CMake build steps with chainable configuration.
type CMake struct {
	SourceDir  string
	buildDir   string
	tempBuild  bool
	installDir string
	generator  string
	buildType  string
	Defines    map[string]defineValue
	env        map[string]string
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New creates a new CMake helper building sourceDir out of tree.
func New(sourceDir string) *CMake {
	buildDir, err := os.MkdirTemp("", "llexport-build-")
	temp := err == nil
	if !temp {
		buildDir = filepath.Join(sourceDir, "build")
	}
	return &CMake{
		SourceDir:  sourceDir,
		buildDir:   buildDir,
		tempBuild:  temp,
		installDir: filepath.Join(sourceDir, "build"),
		Defines:    map[string]defineValue{},
		env:        map[string]string{},
	}
}

func (c *CMake) Source(dir string) {
	c.SourceDir = dir
}

// BuildDir moves the build out of the temporary directory New created.
func (c *CMake) BuildDir(dir string) {
	if c.tempBuild {
		os.Remove(c.buildDir)
		c.tempBuild = false
	}
	c.buildDir = dir
}

func (c *CMake) InstallDir(dir string) {
	c.installDir = dir
}

func (c *CMake) Generator(name string) *CMake {
	c.generator = name
	return c
}

func (c *CMake) BuildType(name string) *CMake {
	c.buildType = name
	return c
}

func (c *CMake) Define(key, value string) *CMake {
	return c.define(key, value, "STRING")
}

func (c *CMake) DefineBool(key string, value bool) *CMake {
	if value {
		return c.define(key, "ON", "BOOL")
	}
	return c.define(key, "OFF", "BOOL")
}

func (c *CMake) define(key, value, typeName string) *CMake {
	if c.Defines == nil {
		c.Defines = map[string]defineValue{}
	}
	c.Defines[key] = defineValue{value: value, typeName: typeName}
	return c
}

// langFlags maps the cache entries Linkage extends to the environment
// variables CMake seeds them from.
var langFlags = [][2]string{
	{"CMAKE_C_FLAGS", "CFLAGS"},
	{"CMAKE_CXX_FLAGS", "CXXFLAGS"},
}

// Linkage adds the plan's macros to CMAKE_C_FLAGS and CMAKE_CXX_FLAGS and,
// when the plan hides symbols by default, sets the visibility presets.
// CMake ignores CFLAGS and CXXFLAGS once the cache entry is given, so a new
// entry starts from their current value.
func (c *CMake) Linkage(plan linkage.Plan) {
	var flags []string
	for _, d := range plan.Defines {
		flags = append(flags, "-D"+d)
	}
	if len(flags) > 0 {
		for _, kv := range langFlags {
			c.Define(kv[0], buildsys.JoinFlags(c.flagsOf(kv[0], kv[1]), flags...))
		}
	}
	if plan.HideByDefault {
		c.Define("CMAKE_C_VISIBILITY_PRESET", "hidden")
		c.Define("CMAKE_CXX_VISIBILITY_PRESET", "hidden")
		c.DefineBool("CMAKE_VISIBILITY_INLINES_HIDDEN", true)
	}
}

// flagsOf returns the current value of the cache entry key, falling back to
// the environment variable envKey as Configure would pass it.
func (c *CMake) flagsOf(key, envKey string) string {
	if def, ok := c.Defines[key]; ok {
		return def.value
	}
	if v, ok := c.env[envKey]; ok {
		return v
	}
	return os.Getenv(envKey)
}

func (c *CMake) Env(key, value string) {
	if c.env == nil {
		c.env = map[string]string{}
	}
	c.env[key] = value
}

func (c *CMake) dir() string {
	if c.buildDir == "" {
		return "build"
	}
	return c.buildDir
}

func (c *CMake) Configure(args ...string) error {
	buildDir := c.dir()
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return err
	}
	cmakeArgs := []string{"-S", c.SourceDir, "-B", buildDir}
	if c.generator != "" {
		cmakeArgs = append(cmakeArgs, "-G", c.generator)
	}
	if c.installDir != "" {
		c.Define("CMAKE_INSTALL_PREFIX", c.installDir)
	}
	if c.buildType != "" {
		c.Define("CMAKE_BUILD_TYPE", c.buildType)
	}
	cmakeArgs = append(cmakeArgs, c.definesArgs()...)
	cmakeArgs = append(cmakeArgs, args...)

	return buildsys.Run("cmake", cmakeArgs, c.env, "")
}

func (c *CMake) Build(args ...string) error {
	cmdArgs := []string{"--build", c.dir()}
	if c.buildType != "" {
		cmdArgs = append(cmdArgs, "--config", c.buildType)
	}
	cmdArgs = append(cmdArgs, args...)
	return buildsys.Run("cmake", cmdArgs, c.env, "")
}

func (c *CMake) Install(args ...string) error {
	cmdArgs := []string{"--install", c.dir()}
	if c.installDir != "" {
		cmdArgs = append(cmdArgs, "--prefix", c.installDir)
	}
	cmdArgs = append(cmdArgs, args...)
	return buildsys.Run("cmake", cmdArgs, c.env, "")
}

// OutputDir returns the install dir if set, otherwise the build dir.
func (c *CMake) OutputDir() string {
	if c.installDir != "" {
		return c.installDir
	}
	return c.buildDir
}

// Args returns the -D arguments Configure passes, sorted by key.
func (c *CMake) Args() []string {
	return c.definesArgs()
}

func (c *CMake) definesArgs() []string {
	if len(c.Defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.Defines))
	for k := range c.Defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		def := c.Defines[k]
		if def.typeName != "" {
			args = append(args, "-D"+k+":"+def.typeName+"="+def.value)
			continue
		}
		args = append(args, "-D"+k+"="+def.value)
	}
	return args
}
