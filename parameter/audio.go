package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Contact sounds
const (
	BallClickFreq     = 880.0
	BallClickDuration = 40 * time.Millisecond

	WallThudFreq     = 140.0
	WallThudDuration = 60 * time.Millisecond

	// MinSoundGap between consecutive sounds of the same kind
	MinSoundGap = 50 * time.Millisecond
)

// Envelope shaping and level
const (
	ToneAttack = 2 * time.Millisecond

	// ThudDecayRate is the exponential falloff per second of the wall thud
	ThudDecayRate = 40.0

	DefaultAudioVolume = 0.5
)
