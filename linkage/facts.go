package linkage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFact is returned when a fact name cannot be parsed.
var ErrUnknownFact = errors.New("unknown fact")

// Role tells whether a translation unit builds the library or consumes it.
// The zero value is Consumer.
type Role int

const (
	Consumer Role = iota
	Producer
)

// Platform is the linkage model of the target.
// The zero value is Unix.
type Platform int

const (
	Unix Platform = iota
	Windows
)

// Capability reports whether the compiler understands visibility attributes.
// The zero value is NoVisibility.
type Capability int

const (
	NoVisibility Capability = iota
	Visibility
)

// Facts are the inputs of a resolution. They are fixed for one translation
// unit; the zero value describes a consumer on a Unix-like target with an
// unknown compiler.
type Facts struct {
	Role           Role
	Platform       Platform
	Capability     Capability
	SuppressExport bool
}

func (r Role) String() string {
	if r == Producer {
		return "producer"
	}
	return "consumer"
}

func (p Platform) String() string {
	if p == Windows {
		return "windows"
	}
	return "unix"
}

func (c Capability) String() string {
	if c == Visibility {
		return "visibility"
	}
	return "novisibility"
}

func (f Facts) String() string {
	s := f.Role.String() + "-" + f.Platform.String() + "-" + f.Capability.String()
	if f.SuppressExport {
		s += "-noexport"
	}
	return s
}

// ParseRole parses a role name. The empty string is Consumer.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "consumer", "consume":
		return Consumer, nil
	case "producer", "produce", "lib", "library":
		return Producer, nil
	}
	return Consumer, fmt.Errorf("role %q: %w", s, ErrUnknownFact)
}

// ParsePlatform parses a platform name. GOOS names are accepted too, so
// "linux" or "darwin" mean Unix. The empty string is Unix.
func ParsePlatform(s string) (Platform, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "":
		return Unix, nil
	case "windows", "win32", "win", "mingw", "msvc":
		return Windows, nil
	case "unix", "elf":
		return Unix, nil
	default:
		if knownGOOS[v] {
			return PlatformOf(v), nil
		}
	}
	return Unix, fmt.Errorf("platform %q: %w", s, ErrUnknownFact)
}

// ParseCapability parses a capability name. The empty string is NoVisibility.
func ParseCapability(s string) (Capability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "novisibility", "none", "no":
		return NoVisibility, nil
	case "visibility", "yes":
		return Visibility, nil
	}
	return NoVisibility, fmt.Errorf("capability %q: %w", s, ErrUnknownFact)
}

// PlatformOf maps a Go GOOS value to its linkage model.
func PlatformOf(goos string) Platform {
	if goos == "windows" {
		return Windows
	}
	return Unix
}

var knownGOOS = map[string]bool{
	"aix": true, "android": true, "darwin": true, "dragonfly": true,
	"freebsd": true, "illumos": true, "ios": true, "linux": true,
	"netbsd": true, "openbsd": true, "solaris": true, "windows": true,
}
