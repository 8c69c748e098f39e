package index

// Config carries the bulk-build tuning knobs of the facade's New
// constructor. Defaults match the spec's documented defaults.
type Config struct {
	// BuildLRRemain is the left/right padding fraction applied to bulk
	// builds.
	BuildLRRemain float64
	// Quiet suppresses informational prints from the facade's callers; it
	// is read by the demo entrypoint to decide whether to call PrintStats
	// at all, not consulted inside PrintStats itself.
	Quiet bool
	// UseFMCD selects the FMCD fitter over the three-point fast fitter for
	// bulk builds.
	UseFMCD bool
}

// DefaultConfig returns the spec's documented defaults:
// BuildLRRemain=0.0, Quiet=true, UseFMCD=true.
func DefaultConfig() Config {
	return Config{
		BuildLRRemain: 0.0,
		Quiet:         true,
		UseFMCD:       true,
	}
}
