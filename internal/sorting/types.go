package sorting

// Stack is the dispatch stack a package is routed to
type Stack string

const (
	StackStandard Stack = "STANDARD"
	StackSpecial  Stack = "SPECIAL"
	StackRejected Stack = "REJECTED"
)

// Sorting thresholds. Comparisons against them are inclusive.
const (
	VolumeThresholdCM3   = 1_000_000
	DimensionThresholdCM = 150
	MassThresholdKG      = 20
)

// String returns the stack label
func (s Stack) String() string {
	return string(s)
}

// Valid reports whether s is one of the three known stacks
func (s Stack) Valid() bool {
	switch s {
	case StackStandard, StackSpecial, StackRejected:
		return true
	}
	return false
}

// Package holds the physical measurements of a single package
type Package struct {
	Width  float64 `json:"width" yaml:"width"`   // cm
	Height float64 `json:"height" yaml:"height"` // cm
	Length float64 `json:"length" yaml:"length"` // cm
	Mass   float64 `json:"mass" yaml:"mass"`     // kg
}

// Volume returns width * height * length in cubic centimeters
func (p Package) Volume() float64 {
	return p.Width * p.Height * p.Length
}

// IsBulky reports whether the package meets the volume or any single
// dimension threshold
func (p Package) IsBulky() bool {
	return p.Volume() >= VolumeThresholdCM3 ||
		p.Width >= DimensionThresholdCM ||
		p.Height >= DimensionThresholdCM ||
		p.Length >= DimensionThresholdCM
}

// IsHeavy reports whether the package meets the mass threshold
func (p Package) IsHeavy() bool {
	return p.Mass >= MassThresholdKG
}

// Stack returns the dispatch stack for p. It does not validate; callers
// must run Validate first.
func (p Package) Stack() Stack {
	bulky, heavy := p.IsBulky(), p.IsHeavy()
	switch {
	case bulky && heavy:
		return StackRejected
	case bulky || heavy:
		return StackSpecial
	default:
		return StackStandard
	}
}
