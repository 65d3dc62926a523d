package parameter

import "time"

// Loop timing
const (
	// TickInterval is the simulation tick and render interval (~60 FPS)
	TickInterval = 16 * time.Millisecond

	// MinTickInterval bounds configured tick_ms from below
	MinTickInterval = time.Millisecond

	// InputChannelSize buffers terminal events between the poll goroutine and the loop
	InputChannelSize = 100
)

// Request queue limits
const (
	// RequestQueueSize is the fixed capacity of the request ring buffer, power of two
	RequestQueueSize = 256

	// RequestBufferMask is the bitmask for fast modulo operations (256 - 1)
	RequestBufferMask = RequestQueueSize - 1
)
