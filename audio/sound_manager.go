package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/billiard/parameter"
	"github.com/lixenwraith/billiard/physics"
)

// SoundManager plays contact sounds through a single speaker mixer
// Every method is a no-op until Initialize succeeds, the table runs silent without audio
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	initialized bool

	now  func() time.Time
	last [soundKindCount]time.Time
}

// NewSoundManager creates a manager with volume in [0, 1]
func NewSoundManager(volume float64) *SoundManager {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		volume: volume,
		now:    time.Now,
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Play queues one sound on the mixer, returns false when muted or rate limited
func (sm *SoundManager) Play(kind SoundKind) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.allow(kind) {
		return false
	}

	s, err := NewSound(kind, sm.rate, sm.volume)
	if err != nil {
		log.Printf("audio: %v", err)
		return false
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	return true
}

// allow enforces parameter.MinSoundGap per kind, caller holds mu
func (sm *SoundManager) allow(kind SoundKind) bool {
	if kind >= soundKindCount {
		return false
	}
	now := sm.now()
	if last := sm.last[kind]; !last.IsZero() && now.Sub(last) < parameter.MinSoundGap {
		return false
	}
	sm.last[kind] = now
	return true
}

// OnContacts plays at most one click and one thud per tick
func (sm *SoundManager) OnContacts(c *physics.Contacts) {
	if len(c.Pairs) > 0 {
		sm.Play(SoundClick)
	}
	if len(c.Walls) > 0 {
		sm.Play(SoundThud)
	}
}
