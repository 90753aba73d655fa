package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/hexrail/boundary"
	"github.com/lixenwraith/hexrail/config"
)

func testSegments(t *testing.T) []boundary.Segment {
	t.Helper()
	m, err := boundary.NewHexagon(200, 250, 90, nil)
	require.NoError(t, err)
	return m.Segments()
}

// drain reads s to exhaustion, returning sample count and peak amplitude
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = max(peak, max(smp[0], -smp[0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func writeTone(t *testing.T, path string, rate beep.SampleRate, d time.Duration) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	require.NoError(t, wav.Encode(f, NewOscillator(440, d, WaveSine, rate), format))
}

func TestSoundBankSources(t *testing.T) {
	dir := t.TempDir()
	writeTone(t, filepath.Join(dir, "0.wav"), 22050, 100*time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.wav"), []byte("not a wav file"), 0o644))

	cfg := config.Default().Audio
	cfg.SoundDir = dir

	bank, err := NewSoundBank(cfg, testSegments(t), nil)
	require.NoError(t, err)

	src, ok := bank.Source(0)
	require.True(t, ok)
	assert.Equal(t, SourceFile, src)
	// Resampled from 22050 to 44100
	assert.InDelta(t, 4410, bank.Len(0), 16)

	src, _ = bank.Source(1)
	assert.Equal(t, SourceSynth, src, "corrupt file falls back to synth")

	src, _ = bank.Source(2)
	assert.Equal(t, SourceSynth, src, "missing file falls back to synth")

	_, ok = bank.Source(3)
	assert.False(t, ok)
}

func TestSoundBankStream(t *testing.T) {
	cfg := config.Default().Audio
	cfg.SoundDir = t.TempDir()

	bank, err := NewSoundBank(cfg, testSegments(t), nil)
	require.NoError(t, err)

	for id := 0; id < boundary.SegmentCount; id++ {
		s, ok := bank.Stream(id)
		require.True(t, ok)

		n, peak := drain(s)
		assert.Equal(t, bank.Len(id), n, "segment %d", id)
		assert.Greater(t, peak, 0.01, "segment %d is silent", id)
		assert.LessOrEqual(t, peak, 1.0)
	}

	_, ok := bank.Stream(99)
	assert.False(t, ok)
}

func TestSoundBankStreamsAreIndependent(t *testing.T) {
	cfg := config.Default().Audio
	cfg.SoundDir = t.TempDir()

	bank, err := NewSoundBank(cfg, testSegments(t), nil)
	require.NoError(t, err)

	a, _ := bank.Stream(0)
	b, _ := bank.Stream(0)
	na, _ := drain(a)
	nb, _ := drain(b)
	assert.Equal(t, na, nb)
}

func TestSoundBankZeroVolumeIsSilent(t *testing.T) {
	cfg := config.Default().Audio
	cfg.SoundDir = t.TempDir()
	cfg.MasterVolume = 0

	bank, err := NewSoundBank(cfg, testSegments(t), nil)
	require.NoError(t, err)

	s, _ := bank.Stream(1)
	_, peak := drain(s)
	assert.Equal(t, 0.0, peak)
}

func TestSoundBankRejectsSampleRate(t *testing.T) {
	cfg := config.Default().Audio
	cfg.SampleRate = 0

	_, err := NewSoundBank(cfg, testSegments(t), nil)
	assert.Error(t, err)
}

func TestNewPlayerDisabledIsSilent(t *testing.T) {
	cfg := config.Default().Audio
	cfg.Enabled = false

	p := NewPlayer(cfg, nil, nil)
	assert.IsType(t, Silent{}, p)
	assert.False(t, p.Play(0))
	p.Close()
}
