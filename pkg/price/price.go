package price

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Treasury notation: a whole number of points, 32nds of a point and 8ths of a 32nd.
// The finest unit (one tick) is therefore 1/256 of a point.
const (
	ThirtySecondsPerPoint  = 32
	EighthsPerThirtySecond = 8
	TicksPerPoint          = ThirtySecondsPerPoint * EighthsPerThirtySecond // 256

	// halfSentinel is the eighths value rendered as "+" (half of a 32nd).
	halfSentinel = 4
)

// ErrSyntax indicates price text that is not in "<int>-<xy><z>" form.
var ErrSyntax = errors.New("invalid price syntax")

// ParseError records the offending text and which part of it was rejected.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("price %q: %s: %v", e.Input, e.Reason, ErrSyntax)
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}

// Value is a fractional treasury price: Whole-ThirtySeconds Eighths.
// The canonical form has 0 <= ThirtySeconds < 32 and 0 <= Eighths < 8.
// Values built with New are kept as given until an arithmetic operation normalizes them.
type Value struct {
	Whole         int `json:"whole"`
	ThirtySeconds int `json:"thirty_seconds"`
	Eighths       int `json:"eighths"`
}

// New builds a raw triple. It is NOT normalized.
func New(whole, thirtySeconds, eighths int) Value {
	return Value{Whole: whole, ThirtySeconds: thirtySeconds, Eighths: eighths}
}

// FromTicks builds the canonical value for a count of 1/256ths.
func FromTicks(ticks int) Value {
	whole := floorDiv(ticks, TicksPerPoint)
	rem := ticks - whole*TicksPerPoint
	return Value{
		Whole:         whole,
		ThirtySeconds: rem / EighthsPerThirtySecond,
		Eighths:       rem % EighthsPerThirtySecond,
	}
}

// FromDecimal converts a decimal price that is an exact multiple of 1/256.
func FromDecimal(d decimal.Decimal) (Value, bool) {
	scaled := d.Mul(decimal.NewFromInt(TicksPerPoint))
	if !scaled.Equal(scaled.Truncate(0)) {
		return Value{}, false
	}
	return FromTicks(int(scaled.IntPart())), true
}

// Parse reads "<int>-<two-digit 32nds><eighth digit or +>", e.g. "99-165" or "100-16+".
func Parse(s string) (Value, error) {
	idx := strings.IndexByte(s, '-')
	if idx <= 0 || len(s) != idx+4 {
		return Value{}, &ParseError{Input: s, Reason: "expected <int>-<xy><z>"}
	}

	// Digits only, no sign and no leading zeros, so Parse and String round-trip.
	head := s[:idx]
	if !isDigits(head) || (len(head) > 1 && head[0] == '0') {
		return Value{}, &ParseError{Input: s, Reason: "bad whole part"}
	}
	whole, err := strconv.Atoi(head)
	if err != nil {
		return Value{}, &ParseError{Input: s, Reason: "bad whole part"}
	}

	xy := s[idx+1 : idx+3]
	if !isDigits(xy) {
		return Value{}, &ParseError{Input: s, Reason: "bad 32nds"}
	}
	thirtySeconds, _ := strconv.Atoi(xy)
	if thirtySeconds >= ThirtySecondsPerPoint {
		return Value{}, &ParseError{Input: s, Reason: "32nds out of range"}
	}

	var eighths int
	switch z := s[idx+3]; {
	case z == '+':
		eighths = halfSentinel
	case z >= '0' && z <= '7':
		eighths = int(z - '0')
	default:
		return Value{}, &ParseError{Input: s, Reason: "bad eighths"}
	}

	return Value{Whole: whole, ThirtySeconds: thirtySeconds, Eighths: eighths}, nil
}

// MustParse is Parse for literals known to be valid. Panics otherwise.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Ticks returns the value in 1/256ths.
func (v Value) Ticks() int {
	return v.Whole*TicksPerPoint + v.ThirtySeconds*EighthsPerThirtySecond + v.Eighths
}

// Normalize redistributes carries and borrows into the canonical triple.
func (v Value) Normalize() Value {
	return FromTicks(v.Ticks())
}

// IsNormalized reports whether v is already canonical.
func (v Value) IsNormalized() bool {
	return v.ThirtySeconds >= 0 && v.ThirtySeconds < ThirtySecondsPerPoint &&
		v.Eighths >= 0 && v.Eighths < EighthsPerThirtySecond
}

func (v Value) Add(o Value) Value {
	return New(v.Whole+o.Whole, v.ThirtySeconds+o.ThirtySeconds, v.Eighths+o.Eighths).Normalize()
}

func (v Value) Sub(o Value) Value {
	return New(v.Whole-o.Whole, v.ThirtySeconds-o.ThirtySeconds, v.Eighths-o.Eighths).Normalize()
}

func (v Value) Mul(scalar int) Value {
	return New(v.Whole*scalar, v.ThirtySeconds*scalar, v.Eighths*scalar).Normalize()
}

// Negate flips the sign of every component without normalizing.
// Only meant for increment vectors that are added to real prices, never rendered or compared.
func (v Value) Negate() Value {
	return New(-v.Whole, -v.ThirtySeconds, -v.Eighths)
}

// Equal compares canonical triples.
func (v Value) Equal(o Value) bool {
	return v.Normalize() == o.Normalize()
}

// Compare returns -1, 0 or +1.
func (v Value) Compare(o Value) int {
	a, b := v.Ticks(), o.Ticks()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (v Value) Less(o Value) bool {
	return v.Ticks() < o.Ticks()
}

// Decimal returns whole + 32nds/32 + eighths/256 exactly.
func (v Value) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(v.Ticks())).Div(decimal.NewFromInt(TicksPerPoint))
}

// Float64 is the decimal value as a float, for display only.
func (v Value) Float64() float64 {
	return float64(v.Whole) + float64(v.ThirtySeconds)/ThirtySecondsPerPoint + float64(v.Eighths)/TicksPerPoint
}

// String renders "<whole>-<32nds, 2 digits><eighths>" with "+" for 4 eighths.
func (v Value) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(v.Whole))
	sb.WriteByte('-')
	if v.ThirtySeconds >= 0 && v.ThirtySeconds < 10 {
		sb.WriteByte('0')
	}
	sb.WriteString(strconv.Itoa(v.ThirtySeconds))
	if v.Eighths == halfSentinel {
		sb.WriteByte('+')
	} else {
		sb.WriteString(strconv.Itoa(v.Eighths))
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler (used by config files).
func (v *Value) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
