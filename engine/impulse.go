package engine

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/billiard/vmath"
)

// ImpulseScaling selects how a click-to-centre vector becomes an impulse
type ImpulseScaling uint8

const (
	// ScaleRaw uses the vector as given, longer drags strike harder
	ScaleRaw ImpulseScaling = iota
	// ScaleUnit normalizes the vector and multiplies by a fixed speed
	ScaleUnit
)

func (s ImpulseScaling) String() string {
	if s == ScaleUnit {
		return "unit"
	}
	return "raw"
}

// ParseImpulseScaling maps "raw" / "unit" to an ImpulseScaling
func ParseImpulseScaling(s string) (ImpulseScaling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raw":
		return ScaleRaw, nil
	case "unit":
		return ScaleUnit, nil
	}
	return ScaleRaw, fmt.Errorf("unknown impulse scaling %q", s)
}

// ImpulsePolicy converts a pointer vector into the impulse handed to physics.ApplyImpulse
type ImpulsePolicy struct {
	Scaling   ImpulseScaling
	UnitSpeed float64 // Used by ScaleUnit only
}

// Scale applies the policy; a zero vector stays zero under ScaleUnit
func (p ImpulsePolicy) Scale(v vmath.Vec2) vmath.Vec2 {
	if p.Scaling == ScaleUnit {
		return vmath.V2Scale(vmath.V2Normalize(v), p.UnitSpeed)
	}
	return v
}
