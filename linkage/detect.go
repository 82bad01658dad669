package linkage

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultMinCompiler is the oldest GNU-compatible compiler version that
// honours __attribute__((visibility)).
const DefaultMinCompiler = "4.0.0"

// Family identifies a compiler by its predefined macros.
type Family string

const (
	Unknown Family = "unknown"
	MSVC    Family = "msvc"
	GCC     Family = "gcc"
	Clang   Family = "clang"
)

// Compiler is a detected compiler.
type Compiler struct {
	Family Family
	// Version is the compiler's own version, e.g. "19.37.0" for MSVC.
	Version string
	// GNUVersion is the GCC version the compiler claims through __GNUC__,
	// empty when it does not claim one.
	GNUVersion string
}

func (c Compiler) String() string {
	if c.Version == "" {
		return string(c.Family)
	}
	return string(c.Family) + " " + c.Version
}

// ClassifyRole reports Producer iff producerMacro is defined. An unset
// macro is not an error; the unit is then a consumer.
func ClassifyRole(defs Defines, producerMacro string) Role {
	if producerMacro != "" && defs.Has(producerMacro) {
		return Producer
	}
	return Consumer
}

// DetectPlatform reports Windows iff _WIN32 is predefined. MSVC, MinGW and
// clang-cl all define it; every other target is Unix.
func DetectPlatform(defs Defines) Platform {
	if defs.Has("_WIN32") {
		return Windows
	}
	return Unix
}

// DetectCompiler identifies the compiler from its predefined macros.
func DetectCompiler(defs Defines) Compiler {
	c := Compiler{Family: Unknown}
	if major, ok := defs.Int("__GNUC__"); ok {
		minor, _ := defs.Int("__GNUC_MINOR__")
		patch, _ := defs.Int("__GNUC_PATCHLEVEL__")
		c.GNUVersion = fmt.Sprintf("%d.%d.%d", major, minor, patch)
	}
	switch {
	case defs.Has("__clang__"):
		c.Family = Clang
		major, _ := defs.Int("__clang_major__")
		minor, _ := defs.Int("__clang_minor__")
		patch, _ := defs.Int("__clang_patchlevel__")
		c.Version = fmt.Sprintf("%d.%d.%d", major, minor, patch)
	case defs.Has("_MSC_VER"):
		c.Family = MSVC
		if v, ok := defs.Int("_MSC_VER"); ok {
			c.Version = fmt.Sprintf("%d.%d.0", v/100, v%100)
		}
	case c.GNUVersion != "":
		c.Family = GCC
		c.Version = c.GNUVersion
	}
	return c
}

// Capability reports Visibility when the compiler is GNU-compatible and
// its GNU version is at least minVer. An empty or malformed minVer falls back to
// DefaultMinCompiler.
func (c Compiler) Capability(minVer string) Capability {
	if c.GNUVersion == "" {
		return NoVisibility
	}
	want := canonical(minVer)
	if want == "" {
		want = canonical(DefaultMinCompiler)
	}
	have := canonical(c.GNUVersion)
	if have == "" || semver.Compare(have, want) < 0 {
		return NoVisibility
	}
	return Visibility
}

// Detect derives all facts from one macro set, typically the compiler's
// predefined macros merged with the -D flags of the build.
func Detect(defs Defines, p Profile) Facts {
	return Facts{
		Role:           ClassifyRole(defs, p.ProducerMacro),
		Platform:       DetectPlatform(defs),
		Capability:     DetectCompiler(defs).Capability(p.MinCompiler),
		SuppressExport: p.SuppressMacro != "" && defs.Has(p.SuppressMacro),
	}
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// ParseVersion splits a compiler version such as "4", "4.8" or "13.2.0"
// into its numeric parts.
func ParseVersion(v string) (major, minor, patch int, ok bool) {
	c := canonical(v)
	if c == "" {
		return 0, 0, 0, false
	}
	parts := strings.SplitN(strings.TrimPrefix(semver.MajorMinor(c), "v"), ".", 2)
	major, _ = strconv.Atoi(parts[0])
	minor, _ = strconv.Atoi(parts[1])
	rest := strings.TrimPrefix(c, semver.MajorMinor(c)+".")
	rest, _, _ = strings.Cut(rest, "-")
	rest, _, _ = strings.Cut(rest, "+")
	patch, _ = strconv.Atoi(rest)
	return major, minor, patch, true
}
