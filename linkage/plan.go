package linkage

// Plan is what a build of the library must pass to the compiler so that
// every translation unit resolves the same facts.
type Plan struct {
	// Defines are macro names to define with -D.
	Defines []string
	// HideByDefault asks for -fvisibility=hidden, so that only declarations
	// carrying the export marker end up in the dynamic symbol table.
	HideByDefault bool
}

// PlanFor returns the build plan for f. Consumers get an empty plan unless
// the export override is set.
func PlanFor(f Facts, p Profile) Plan {
	var plan Plan
	if f.Role == Producer && p.ProducerMacro != "" {
		plan.Defines = append(plan.Defines, p.ProducerMacro)
	}
	if f.SuppressExport && p.SuppressMacro != "" {
		plan.Defines = append(plan.Defines, p.SuppressMacro)
	}
	if f.Role == Producer && Resolve(f).Export == MakeVisible {
		plan.HideByDefault = true
	}
	return plan
}

// Flags renders the plan as compiler flags.
func (p Plan) Flags() []string {
	var flags []string
	for _, d := range p.Defines {
		flags = append(flags, "-D"+d)
	}
	if p.HideByDefault {
		flags = append(flags, "-fvisibility=hidden")
	}
	return flags
}
