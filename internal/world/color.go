package world

import "fmt"

// Color is the signal color currently shown by an intersection's light.
type Color int

const (
	ColorRed Color = iota
	ColorGreen
	ColorYellow
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "red":
		*c = ColorRed
	case "green":
		*c = ColorGreen
	case "yellow":
		*c = ColorYellow
	default:
		return fmt.Errorf("unknown light color: %s", text)
	}
	return nil
}
