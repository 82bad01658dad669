package header

import (
	"fmt"
	"io"
	"text/template"

	"github.com/goplus/llexport/linkage"
)

// data feeds both templates.
type data struct {
	linkage.Profile
	Guard   string
	GNUCode int
	Facts   string
	Windows bool
	Markers linkage.Markers
}

var funcs = template.FuncMap{
	"trail": func(s string) string {
		if s == "" {
			return ""
		}
		return " " + s
	},
}

var generic = template.Must(template.New("generic").Funcs(funcs).Parse(`#ifndef {{.Guard}}
#define {{.Guard}}

/* Export markers for {{if .Lib}}{{.Lib}}{{else}}the library{{end}}. Generated by llexport; do not edit. */

#ifdef _WIN32
	/* toolchains such as MinGW may already define {{.CallConvMacro}} */
	#ifndef {{.CallConvMacro}}
		#define {{.CallConvMacro}} {{.StdCall}}
	#endif
	#if defined({{.SuppressMacro}})
		#define {{.ExportMacro}}
	#elif defined({{.ProducerMacro}})
		#define {{.ExportMacro}} {{.DllExport}}
	#else
		#define {{.ExportMacro}}
	#endif
#else
	#define {{.CallConvMacro}}
	/* lets the library build with -fvisibility=hidden */
	#if defined({{.SuppressMacro}})
		#define {{.ExportMacro}}
	#elif defined(__GNUC__) && (__GNUC__ * 10000 + __GNUC_MINOR__ * 100 + __GNUC_PATCHLEVEL__) >= {{.GNUCode}}
		#define {{.ExportMacro}} {{.VisibleDefault}}
	#else
		#define {{.ExportMacro}}
	#endif
#endif

#endif /* {{.Guard}} */
`))

var resolved = template.Must(template.New("resolved").Funcs(funcs).Parse(`#ifndef {{.Guard}}
#define {{.Guard}}

/* Export markers for {{if .Lib}}{{.Lib}}{{else}}the library{{end}}, resolved for {{.Facts}}. Generated by llexport; do not edit. */

{{if .Windows}}#ifndef {{.CallConvMacro}}
	#define {{.CallConvMacro}}{{trail .Markers.CallConv}}
#endif
{{else}}#undef {{.CallConvMacro}}
#define {{.CallConvMacro}}
{{end}}#define {{.ExportMacro}}{{trail .Markers.Export}}

#endif /* {{.Guard}} */
`))

// StdCall and friends are exposed to the templates through data.
func (data) StdCall() string { return linkage.StdCall }
func (data) DllExport() string { return linkage.DllExport }
func (data) VisibleDefault() string { return linkage.VisibleDefault }

func newData(p linkage.Profile) (data, error) {
	p = p.WithDefaults()
	major, minor, patch, ok := linkage.ParseVersion(p.MinCompiler)
	if !ok {
		return data{}, fmt.Errorf("header: invalid minimum compiler version %q", p.MinCompiler)
	}
	return data{
		Profile: p,
		Guard:   p.GuardMacro(),
		GNUCode: major*10000 + minor*100 + patch,
	}, nil
}

// Generate writes a header that resolves the markers with the preprocessor,
// for builds that do not go through llexport.
func Generate(w io.Writer, p linkage.Profile) error {
	d, err := newData(p)
	if err != nil {
		return err
	}
	return generic.Execute(w, d)
}

// Resolved writes a header with markers already resolved for f.
func Resolved(w io.Writer, p linkage.Profile, f linkage.Facts, m linkage.Markers) error {
	d, err := newData(p)
	if err != nil {
		return err
	}
	d.Facts = f.String()
	d.Windows = f.Platform == linkage.Windows
	d.Markers = m
	return resolved.Execute(w, d)
}
