package profile

const GopPackage = true

// ExportApp is the class of "_export.gox" profiles. A profile names the
// macros one library uses for its export markers:
//
//	lib "astyle"
//	producer "ASTYLE_LIB"
//	suppress "ASTYLE_NO_EXPORT"
//	callconv "STDCALL"
//	export "EXPORT"
//	minCompiler "4.0.0"
//
// Statements left out take the defaults derived from the library name.
type ExportApp struct {
	lib         string
	producer    string
	suppress    string
	callconv    string
	export      string
	minCompiler string
}

// Lib sets the library name.
func (p *ExportApp) Lib(name string) {
	p.lib = name
}

// Producer sets the macro a build of the library defines.
func (p *ExportApp) Producer(macro string) {
	p.producer = macro
}

// Suppress sets the macro that turns the export marker off.
func (p *ExportApp) Suppress(macro string) {
	p.suppress = macro
}

// Callconv sets the calling-convention macro.
func (p *ExportApp) Callconv(macro string) {
	p.callconv = macro
}

// Export sets the export macro.
func (p *ExportApp) Export(macro string) {
	p.export = macro
}

// MinCompiler sets the oldest GNU-compatible compiler version trusted with
// visibility attributes.
func (p *ExportApp) MinCompiler(ver string) {
	p.minCompiler = ver
}

// Gopt_ExportApp_Main is main entry of this classfile.
func Gopt_ExportApp_Main(this interface{ MainEntry() }) {
	this.MainEntry()
}
