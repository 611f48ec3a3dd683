package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// CREATURE TYPES AND CONSTANTS
// =============================================================================

// Faction identifies which side a creature belongs to.
type Faction string

const (
	FactionZerg   Faction = "zerg"
	FactionTerran Faction = "terran"
)

// Tag returns the announcement prefix for the faction, e.g. "[ZERG]".
func (f Faction) Tag() string {
	return "[" + strings.ToUpper(string(f)) + "]"
}

// ParseFaction maps a user-supplied name onto a known faction.
func ParseFaction(s string) (Faction, error) {
	switch Faction(strings.ToLower(strings.TrimSpace(s))) {
	case FactionZerg:
		return FactionZerg, nil
	case FactionTerran:
		return FactionTerran, nil
	default:
		return "", fmt.Errorf("unknown faction %q (want zerg or terran)", s)
	}
}

// Point is a destination on the map.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// String renders the point as "(x, y)" with at least one fractional digit.
func (p Point) String() string {
	return "(" + formatCoord(p.X) + ", " + formatCoord(p.Y) + ")"
}

func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// =============================================================================
// CAPABILITY INTERFACES
// =============================================================================

// Creature is the behavior surface shared by real creatures and anything
// standing in for one.
type Creature interface {
	Greet()
	Move(to Point)
}

// Creator manufactures a single creature variant.
type Creator[C Creature] interface {
	Create() C
}

// CreatorFunc adapts a plain function to the Creator interface.
type CreatorFunc[C Creature] func() C

// Create calls f.
func (f CreatorFunc[C]) Create() C {
	return f()
}
