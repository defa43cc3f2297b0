package plot

// Params are the machine settings used for every document.
type Params struct {
	// PenUpHeight is the S value of the M3 command that lifts the pen.
	PenUpHeight float64
	// PenDownHeight is the S value of the M3 command that lowers the pen.
	PenDownHeight float64
	// MaxLineSpeed is the feed rate of drawing moves, in units per minute.
	MaxLineSpeed float64
}

// DefaultParams returns the settings used when nothing else is configured.
func DefaultParams() Params {
	return Params{
		PenUpHeight:   0,
		PenDownHeight: 100,
		MaxLineSpeed:  1000,
	}
}
