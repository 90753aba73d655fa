package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"

	"github.com/lixenwraith/hexrail/boundary"
	"github.com/lixenwraith/hexrail/config"
)

// Source records where a segment's sound came from
type Source string

const (
	SourceFile  Source = "file"
	SourceSynth Source = "synth"
)

const resampleQuality = 4

// SoundBank holds one preloaded crossing sound per segment id at a common format
type SoundBank struct {
	format  beep.Format
	volume  float64
	buffers map[int]*beep.Buffer
	sources map[int]Source
}

// NewSoundBank loads <SoundDir>/<id>.wav for every segment, synthesizing a chime
// when the file is missing or unreadable. Only a bad configuration is an error.
func NewSoundBank(cfg config.Audio, segments []boundary.Segment, log *zap.Logger) (*SoundBank, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate %d", cfg.SampleRate)
	}
	if log == nil {
		log = zap.NewNop()
	}

	b := &SoundBank{
		format: beep.Format{
			SampleRate:  beep.SampleRate(cfg.SampleRate),
			NumChannels: 2,
			Precision:   2,
		},
		volume:  cfg.MasterVolume,
		buffers: make(map[int]*beep.Buffer, len(segments)),
		sources: make(map[int]Source, len(segments)),
	}

	for _, seg := range segments {
		path := filepath.Join(cfg.SoundDir, seg.Sound)
		buf, err := b.loadFile(path)
		switch {
		case err == nil:
			b.buffers[seg.ID] = buf
			b.sources[seg.ID] = SourceFile
			log.Debug("sound loaded", zap.Int("segment", seg.ID), zap.String("path", path),
				zap.Int("samples", buf.Len()))
			continue
		case errors.Is(err, os.ErrNotExist):
			log.Debug("sound missing, synthesizing", zap.Int("segment", seg.ID), zap.String("path", path))
		default:
			log.Warn("sound unreadable, synthesizing", zap.Int("segment", seg.ID),
				zap.String("path", path), zap.Error(err))
		}

		buf = beep.NewBuffer(b.format)
		buf.Append(NewChime(seg.ID, b.format.SampleRate))
		b.buffers[seg.ID] = buf
		b.sources[seg.ID] = SourceSynth
	}

	return b, nil
}

func (b *SoundBank) loadFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != b.format.SampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, b.format.SampleRate, streamer)
	}

	buf := beep.NewBuffer(b.format)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	return buf, nil
}

// Format returns the common output format
func (b *SoundBank) Format() beep.Format {
	return b.format
}

// Source reports where the sound for id came from
func (b *SoundBank) Source(id int) (Source, bool) {
	src, ok := b.sources[id]
	return src, ok
}

// Len returns the sound length in samples for id
func (b *SoundBank) Len(id int) int {
	if buf, ok := b.buffers[id]; ok {
		return buf.Len()
	}
	return 0
}

// Stream returns a fresh streamer over the sound for id at master volume
func (b *SoundBank) Stream(id int) (beep.Streamer, bool) {
	buf, ok := b.buffers[id]
	if !ok {
		return nil, false
	}
	return newVolume(buf.Streamer(0, buf.Len()), b.volume), true
}
