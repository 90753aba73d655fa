package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/hexrail/config"
)

// Player consumes crossing notifications; fire-and-forget
type Player interface {
	// Play starts the sound for a segment id, false if nothing was queued
	Play(id int) bool
	Close()
}

// Silent drops every request
type Silent struct{}

func (Silent) Play(int) bool { return false }
func (Silent) Close()        {}

// SpeakerPlayer mixes bank sounds onto the system speaker
type SpeakerPlayer struct {
	mu     sync.Mutex
	bank   *SoundBank
	mixer  *beep.Mixer
	closed bool
	played atomic.Uint64
}

// NewSpeakerPlayer initializes the speaker at the bank's sample rate
func NewSpeakerPlayer(bank *SoundBank) (*SpeakerPlayer, error) {
	rate := bank.Format().SampleRate
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}

	p := &SpeakerPlayer{
		bank:  bank,
		mixer: &beep.Mixer{},
	}
	speaker.Play(p.mixer)
	return p, nil
}

func (p *SpeakerPlayer) Play(id int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false
	}
	s, ok := p.bank.Stream(id)
	if !ok {
		return false
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()

	p.played.Add(1)
	return true
}

// Played returns the number of sounds queued
func (p *SpeakerPlayer) Played() uint64 {
	return p.played.Load()
}

func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// NewPlayer returns a speaker-backed player, or Silent when audio is disabled
// or no output device can be opened
func NewPlayer(cfg config.Audio, bank *SoundBank, log *zap.Logger) Player {
	if !cfg.Enabled || bank == nil {
		return Silent{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	p, err := NewSpeakerPlayer(bank)
	if err != nil {
		log.Warn("audio init failed, continuing without sound", zap.Error(err))
		return Silent{}
	}
	return p
}
