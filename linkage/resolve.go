package linkage

// CallConv is the calling-convention token.
type CallConv int

const (
	DefaultConv CallConv = iota
	FixedConv
)

// Export is the export token.
type Export int

const (
	NoMarker Export = iota
	ExportForProducers
	// ImportForConsumers has a spelling but Resolve never yields it:
	// Windows consumers link against plain declarations.
	ImportForConsumers
	MakeVisible
)

// Tokens is the pair every public declaration of the library carries.
type Tokens struct {
	CallConv CallConv
	Export   Export
}

func (c CallConv) String() string {
	if c == FixedConv {
		return "fixed"
	}
	return "default"
}

func (e Export) String() string {
	switch e {
	case ExportForProducers:
		return "export"
	case ImportForConsumers:
		return "import"
	case MakeVisible:
		return "visible"
	}
	return "none"
}

func (t Tokens) String() string {
	return "callconv=" + t.CallConv.String() + " export=" + t.Export.String()
}

// Resolve computes the tokens for a set of facts.
//
// The calling convention only depends on the platform. The export token
// follows a first-match table:
//
//	suppressed                     -> NoMarker
//	producer, windows              -> ExportForProducers
//	consumer, windows              -> NoMarker
//	unix, visibility attributes    -> MakeVisible
//	unix, no visibility attributes -> NoMarker
func Resolve(f Facts) Tokens {
	return Tokens{
		CallConv: selectCallConv(f.Platform),
		Export:   selectExport(f),
	}
}

func selectCallConv(p Platform) CallConv {
	if p == Windows {
		return FixedConv
	}
	return DefaultConv
}

func selectExport(f Facts) Export {
	switch {
	case f.SuppressExport:
		return NoMarker
	case f.Platform == Windows && f.Role == Producer:
		return ExportForProducers
	case f.Platform == Windows:
		return NoMarker
	case f.Capability == Visibility:
		return MakeVisible
	}
	return NoMarker
}
