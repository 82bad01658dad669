package profile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/goplus/llexport/linkage"
)

type testStruct struct {
	lib   string
	level int
}

func TestValueOf(t *testing.T) {
	ts := testStruct{lib: "astyle", level: 3}
	val := reflect.ValueOf(&ts).Elem()

	if got := valueOf(val, "lib"); got != "astyle" {
		t.Errorf("valueOf(lib) = %v", got)
	}
	if got := valueOf(val, "level"); got != 3 {
		t.Errorf("valueOf(level) = %v", got)
	}
}

func TestLoad(t *testing.T) {
	p, err := Load("testdata/astyle/astyle_export.gox")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := linkage.Profile{
		Lib:           "astyle",
		ProducerMacro: "ASTYLE_LIB",
		SuppressMacro: "ASTYLE_NO_EXPORT",
		CallConvMacro: "STDCALL",
		ExportMacro:   "EXPORT",
		MinCompiler:   "4.0.0",
	}
	if p != want {
		t.Errorf("Load() = %+v, want %+v", p, want)
	}
}

func TestLoad_Defaults(t *testing.T) {
	p, err := Load("testdata/zlib/zlib_export.gox")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.ExportMacro != "ZEXPORT" {
		t.Errorf("ExportMacro = %q, want ZEXPORT", p.ExportMacro)
	}
	if p.ProducerMacro != "ZLIB_LIB" || p.SuppressMacro != "ZLIB_NO_EXPORT" {
		t.Errorf("defaults not applied: %+v", p)
	}
}

func TestLoad_InvalidPath(t *testing.T) {
	if _, err := Load("/nonexistent/path/x_export.gox"); err == nil {
		t.Error("Load should return error for non-existent file")
	}
}

func TestLoad_InvalidFileName(t *testing.T) {
	file := filepath.Join(t.TempDir(), "profile.txt")
	if err := os.WriteFile(file, []byte(`lib "x"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(file); err == nil {
		t.Error("Load should return error for a file without the profile suffix")
	}
}
