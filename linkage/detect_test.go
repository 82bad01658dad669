package linkage

import (
	"errors"
	"testing"
)

var (
	gcc13 = Defines{
		"__GNUC__":            "13",
		"__GNUC_MINOR__":      "2",
		"__GNUC_PATCHLEVEL__": "0",
		"__linux__":           "1",
	}
	gcc3 = Defines{
		"__GNUC__":       "3",
		"__GNUC_MINOR__": "4",
	}
	clang17 = Defines{
		"__GNUC__":             "4",
		"__GNUC_MINOR__":       "2",
		"__GNUC_PATCHLEVEL__":  "1",
		"__clang__":            "1",
		"__clang_major__":      "17",
		"__clang_minor__":      "0",
		"__clang_patchlevel__": "6",
		"__APPLE__":            "1",
	}
	msvc = Defines{
		"_MSC_VER": "1937",
		"_WIN32":   "1",
		"_WIN64":   "1",
	}
	mingw = Defines{
		"__GNUC__":            "12",
		"__GNUC_MINOR__":      "1",
		"__GNUC_PATCHLEVEL__": "0",
		"_WIN32":              "1",
		"__MINGW32__":         "1",
	}
)

func TestDetectCompiler(t *testing.T) {
	tests := []struct {
		name string
		defs Defines
		want Compiler
	}{
		{"gcc", gcc13, Compiler{Family: GCC, Version: "13.2.0", GNUVersion: "13.2.0"}},
		{"old gcc", gcc3, Compiler{Family: GCC, Version: "3.4.0", GNUVersion: "3.4.0"}},
		{"clang", clang17, Compiler{Family: Clang, Version: "17.0.6", GNUVersion: "4.2.1"}},
		{"msvc", msvc, Compiler{Family: MSVC, Version: "19.37.0"}},
		{"mingw", mingw, Compiler{Family: GCC, Version: "12.1.0", GNUVersion: "12.1.0"}},
		{"unknown", Defines{"__TINYC__": "927"}, Compiler{Family: Unknown}},
		{"empty", nil, Compiler{Family: Unknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCompiler(tt.defs); got != tt.want {
				t.Errorf("DetectCompiler() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompilerCapability(t *testing.T) {
	tests := []struct {
		name   string
		defs   Defines
		minVer string
		want   Capability
	}{
		{"gcc 13", gcc13, "", Visibility},
		{"gcc 3", gcc3, "", NoVisibility},
		{"clang claims gcc 4.2.1", clang17, "4.0.0", Visibility},
		{"clang below raised minimum", clang17, "5", NoVisibility},
		{"msvc", msvc, "", NoVisibility},
		{"unknown", Defines{}, "", NoVisibility},
		{"malformed minimum uses default", gcc3, "not-a-version", NoVisibility},
		{"short minimum", gcc13, "13", Visibility},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCompiler(tt.defs).Capability(tt.minVer); got != tt.want {
				t.Errorf("Capability(%q) = %v, want %v", tt.minVer, got, tt.want)
			}
		})
	}
}

func TestClassifyRole(t *testing.T) {
	if got := ClassifyRole(Defines{"ASTYLE_LIB": "1"}, "ASTYLE_LIB"); got != Producer {
		t.Errorf("ClassifyRole with macro = %v, want producer", got)
	}
	if got := ClassifyRole(Defines{"OTHER": "1"}, "ASTYLE_LIB"); got != Consumer {
		t.Errorf("ClassifyRole without macro = %v, want consumer", got)
	}
	if got := ClassifyRole(Defines{"": "1"}, ""); got != Consumer {
		t.Errorf("ClassifyRole with empty macro name = %v, want consumer", got)
	}
}

func TestDetectPlatform(t *testing.T) {
	if got := DetectPlatform(msvc); got != Windows {
		t.Errorf("msvc platform = %v", got)
	}
	if got := DetectPlatform(mingw); got != Windows {
		t.Errorf("mingw platform = %v", got)
	}
	if got := DetectPlatform(clang17); got != Unix {
		t.Errorf("clang platform = %v", got)
	}
	if got := DetectPlatform(nil); got != Unix {
		t.Errorf("empty platform = %v", got)
	}
}

func TestDetect(t *testing.T) {
	p := DefaultProfile("astyle")

	got := Detect(mingw.Merge(Defines{"ASTYLE_LIB": "1"}), p)
	want := Facts{Role: Producer, Platform: Windows, Capability: Visibility}
	if got != want {
		t.Errorf("Detect(mingw producer) = %v, want %v", got, want)
	}

	got = Detect(gcc13.Merge(Defines{"ASTYLE_NO_EXPORT": "1"}), p)
	want = Facts{Platform: Unix, Capability: Visibility, SuppressExport: true}
	if got != want {
		t.Errorf("Detect(gcc suppressed) = %v, want %v", got, want)
	}
}

func TestParseFacts(t *testing.T) {
	if r, err := ParseRole("Producer"); err != nil || r != Producer {
		t.Errorf("ParseRole(Producer) = %v, %v", r, err)
	}
	if r, err := ParseRole(""); err != nil || r != Consumer {
		t.Errorf("ParseRole(\"\") = %v, %v", r, err)
	}
	if p, err := ParsePlatform("darwin"); err != nil || p != Unix {
		t.Errorf("ParsePlatform(darwin) = %v, %v", p, err)
	}
	if p, err := ParsePlatform("windows"); err != nil || p != Windows {
		t.Errorf("ParsePlatform(windows) = %v, %v", p, err)
	}
	if c, err := ParseCapability("visibility"); err != nil || c != Visibility {
		t.Errorf("ParseCapability(visibility) = %v, %v", c, err)
	}

	for _, err := range []error{
		func() error { _, err := ParseRole("maybe"); return err }(),
		func() error { _, err := ParsePlatform("plan9x"); return err }(),
		func() error { _, err := ParseCapability("sometimes"); return err }(),
	} {
		if !errors.Is(err, ErrUnknownFact) {
			t.Errorf("err = %v, want ErrUnknownFact", err)
		}
	}
}

func TestPlatformOf(t *testing.T) {
	if PlatformOf("windows") != Windows {
		t.Error("PlatformOf(windows) != Windows")
	}
	for _, goos := range []string{"linux", "darwin", "freebsd", "js"} {
		if PlatformOf(goos) != Unix {
			t.Errorf("PlatformOf(%s) != Unix", goos)
		}
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in                  string
		major, minor, patch int
		ok                  bool
	}{
		{"4", 4, 0, 0, true},
		{"4.8", 4, 8, 0, true},
		{"13.2.1", 13, 2, 1, true},
		{"v12.1.0-rc1", 12, 1, 0, true},
		{"", 0, 0, 0, false},
		{"latest", 0, 0, 0, false},
	}
	for _, tt := range tests {
		major, minor, patch, ok := ParseVersion(tt.in)
		if major != tt.major || minor != tt.minor || patch != tt.patch || ok != tt.ok {
			t.Errorf("ParseVersion(%q) = %d, %d, %d, %v", tt.in, major, minor, patch, ok)
		}
	}
}
