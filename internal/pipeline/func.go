package pipeline

// FuncFilter adapts a function to the Filter interface.
type FuncFilter struct {
	FilterName string
	Inputs     int
	Fn         func(deps []any) (any, error)
}

// Name returns FilterName.
func (f *FuncFilter) Name() string { return f.FilterName }

// ExpectedDependencies returns Inputs.
func (f *FuncFilter) ExpectedDependencies() int { return f.Inputs }

// Process calls Fn.
func (f *FuncFilter) Process(deps []any) (any, error) { return f.Fn(deps) }
