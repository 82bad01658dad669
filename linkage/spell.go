package linkage

import "strings"

// Spellings of the tokens understood by MSVC-compatible and GNU-compatible
// compilers.
const (
	StdCall        = "__stdcall"
	DllExport      = "__declspec(dllexport)"
	DllImport      = "__declspec(dllimport)"
	VisibleDefault = `__attribute__((visibility("default")))`
)

// Profile names the macros one library uses for its markers.
type Profile struct {
	Lib           string
	ProducerMacro string
	SuppressMacro string
	CallConvMacro string
	ExportMacro   string
	MinCompiler   string
}

// DefaultProfile derives macro names from a library name: for "astyle" it
// yields ASTYLE_LIB, ASTYLE_NO_EXPORT, STDCALL and EXPORT.
func DefaultProfile(lib string) Profile {
	prefix := ""
	if lib != "" {
		prefix = macroName(lib) + "_"
	}
	return Profile{
		Lib:           lib,
		ProducerMacro: prefix + "LIB",
		SuppressMacro: prefix + "NO_EXPORT",
		CallConvMacro: "STDCALL",
		ExportMacro:   "EXPORT",
		MinCompiler:   DefaultMinCompiler,
	}
}

// WithDefaults fills the empty fields of p from DefaultProfile(p.Lib).
func (p Profile) WithDefaults() Profile {
	d := DefaultProfile(p.Lib)
	if p.ProducerMacro == "" {
		p.ProducerMacro = d.ProducerMacro
	}
	if p.SuppressMacro == "" {
		p.SuppressMacro = d.SuppressMacro
	}
	if p.CallConvMacro == "" {
		p.CallConvMacro = d.CallConvMacro
	}
	if p.ExportMacro == "" {
		p.ExportMacro = d.ExportMacro
	}
	if p.MinCompiler == "" {
		p.MinCompiler = d.MinCompiler
	}
	return p
}

// GuardMacro is the include guard of the generated export header.
func (p Profile) GuardMacro() string {
	if p.Lib == "" {
		return "EXPORT_H"
	}
	return macroName(p.Lib) + "_EXPORT_H"
}

// Markers are the concrete texts of the tokens.
type Markers struct {
	CallConv string
	Export   string
}

// Spell turns tokens into marker text. When env already defines the
// profile's calling-convention macro, that definition is kept: toolchains
// such as MinGW ship their own STDCALL and redefining it is an error.
func Spell(t Tokens, env Defines, p Profile) Markers {
	var m Markers
	if t.CallConv == FixedConv {
		m.CallConv = StdCall
		if v, ok := env[p.CallConvMacro]; ok && p.CallConvMacro != "" {
			m.CallConv = v
		}
	}
	switch t.Export {
	case ExportForProducers:
		m.Export = DllExport
	case ImportForConsumers:
		m.Export = DllImport
	case MakeVisible:
		m.Export = VisibleDefault
	}
	return m
}

func macroName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, s)
}
