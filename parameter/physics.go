package parameter

// Wall restitution presets
// Restitution is the fraction of axis velocity kept after a wall bounce, valid range (0, 1]
const (
	// DefaultRestitution is a pure reflection with no energy loss
	DefaultRestitution = 1.0

	// LossyRestitution is the alternate energy-loss configuration
	LossyRestitution = 0.8
)

// ImpulseReferenceSpeed is the speed at which a struck ball stops accepting new impulse
// impulse factor = 1 - |v| / ImpulseReferenceSpeed, negative above it
const ImpulseReferenceSpeed = 10.0

// DefaultUnitImpulseSpeed scales normalized click vectors in unit impulse mode
const DefaultUnitImpulseSpeed = ImpulseReferenceSpeed

// SeparationSlop is added to the target separation after pairwise position correction
// Keeps a resolved pair from reporting contact on the next scan due to rounding
const SeparationSlop = 1e-9

// Default arena, 800x600 plane units
const (
	DefaultArenaWidth  = 800.0
	DefaultArenaHeight = 600.0
)
