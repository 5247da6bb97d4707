package price

// Bounds is the closed range a price oscillator moves within.
type Bounds struct {
	Min Value `yaml:"min"`
	Max Value `yaml:"max"`
}

// DefaultBounds is [99-000, 101-000].
var DefaultBounds = Bounds{
	Min: New(99, 0, 0),
	Max: New(101, 0, 0),
}

// AtMin is exact equality with the lower bound.
func (b Bounds) AtMin(v Value) bool {
	return v.Equal(b.Min)
}

// AtMax is exact equality with the upper bound.
func (b Bounds) AtMax(v Value) bool {
	return v.Equal(b.Max)
}

func (b Bounds) AboveMax(v Value) bool {
	return b.Max.Less(v)
}

func (b Bounds) BelowMin(v Value) bool {
	return v.Less(b.Min)
}

// Contains reports Min <= v <= Max.
func (b Bounds) Contains(v Value) bool {
	return !b.BelowMin(v) && !b.AboveMax(v)
}

// Valid reports Min < Max.
func (b Bounds) Valid() bool {
	return b.Min.Less(b.Max)
}
