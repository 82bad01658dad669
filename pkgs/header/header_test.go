package header

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goplus/llexport/linkage"
)

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, linkage.DefaultProfile("astyle")); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	out := buf.String()
	for _, snippet := range []string{
		"#ifndef ASTYLE_EXPORT_H",
		"#ifndef STDCALL",
		"#define STDCALL __stdcall",
		"#if defined(ASTYLE_NO_EXPORT)",
		"#elif defined(ASTYLE_LIB)",
		"#define EXPORT __declspec(dllexport)",
		">= 40000",
		`#define EXPORT __attribute__((visibility("default")))`,
		"#endif /* ASTYLE_EXPORT_H */",
	} {
		if !strings.Contains(out, snippet) {
			t.Errorf("header missing %q\n%s", snippet, out)
		}
	}
	if strings.Contains(out, "dllimport") {
		t.Errorf("generic header must not import on windows consumers")
	}
}

func TestGenerate_InvalidMinCompiler(t *testing.T) {
	p := linkage.DefaultProfile("astyle")
	p.MinCompiler = "newest"
	if err := Generate(&bytes.Buffer{}, p); err == nil {
		t.Error("Generate should reject an invalid minimum compiler version")
	}
}

func TestResolved(t *testing.T) {
	p := linkage.DefaultProfile("astyle")
	tests := []struct {
		name  string
		facts linkage.Facts
		want  []string
	}{
		{
			name:  "windows producer",
			facts: linkage.Facts{Role: linkage.Producer, Platform: linkage.Windows},
			want:  []string{"#define STDCALL __stdcall\n", "#define EXPORT __declspec(dllexport)\n"},
		},
		{
			name:  "unix without visibility",
			facts: linkage.Facts{Role: linkage.Producer, Platform: linkage.Unix},
			want:  []string{"#define STDCALL\n", "#define EXPORT\n", "producer-unix-novisibility"},
		},
		{
			name:  "unix with visibility",
			facts: linkage.Facts{Platform: linkage.Unix, Capability: linkage.Visibility},
			want:  []string{`#define EXPORT __attribute__((visibility("default")))`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := linkage.Spell(linkage.Resolve(tt.facts), nil, p)
			var buf bytes.Buffer
			if err := Resolved(&buf, p, tt.facts, m); err != nil {
				t.Fatalf("Resolved: %v", err)
			}
			for _, snippet := range tt.want {
				if !strings.Contains(buf.String(), snippet) {
					t.Errorf("header missing %q\n%s", snippet, buf.String())
				}
			}
		})
	}
}

func TestResolvedCallConvGuard(t *testing.T) {
	p := linkage.DefaultProfile("astyle")
	prior := linkage.Defines{"STDCALL": "__cdecl"}
	tests := []struct {
		name      string
		facts     linkage.Facts
		want      string
		wantGuard bool
	}{
		{"windows keeps prior definition", linkage.Facts{Platform: linkage.Windows}, "#define STDCALL __cdecl\n", true},
		{"unix always empty", linkage.Facts{Role: linkage.Producer, Platform: linkage.Unix}, "#undef STDCALL\n#define STDCALL\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := linkage.Spell(linkage.Resolve(tt.facts), prior, p)
			var buf bytes.Buffer
			if err := Resolved(&buf, p, tt.facts, m); err != nil {
				t.Fatalf("Resolved: %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("header missing %q\n%s", tt.want, out)
			}
			if got := strings.Contains(out, "#ifndef STDCALL"); got != tt.wantGuard {
				t.Errorf("#ifndef STDCALL present = %v, want %v\n%s", got, tt.wantGuard, out)
			}
		})
	}
}

func TestGenerateCompiles(t *testing.T) {
	cc, err := exec.LookPath("cc")
	if err != nil {
		t.Skip("cc not found in PATH")
	}
	dir := t.TempDir()

	var buf bytes.Buffer
	if err := Generate(&buf, linkage.DefaultProfile("demo")); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "demo_export.h"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	src := `#include "demo_export.h"
EXPORT int STDCALL demo_version(void);
EXPORT int STDCALL demo_version(void) { return 1; }
`
	if err := os.WriteFile(filepath.Join(dir, "demo.c"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, args := range [][]string{
		{"-fsyntax-only", "demo.c"},
		{"-fsyntax-only", "-DDEMO_LIB", "-fvisibility=hidden", "demo.c"},
		{"-fsyntax-only", "-DDEMO_LIB", "-DDEMO_NO_EXPORT", "demo.c"},
	} {
		cmd := exec.Command(cc, args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Errorf("cc %v: %v\n%s", args, err, out)
		}
	}
}
