package ui

import (
	"bytes"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const audioSampleRate = 48000

// oto context singleton, initialized on first playback
var (
	otoCtx      *oto.Context
	otoInitOnce sync.Once
	otoInitErr  error
)

// ensureOtoContext initializes the oto audio context on first use.
func ensureOtoContext() (*oto.Context, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   audioSampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		}
		var readyChan chan struct{}
		otoCtx, readyChan, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		<-readyChan
	})
	return otoCtx, otoInitErr
}

// SoundBank holds the pre-synthesized completion cues and plays them
// through one-shot oto players. All sounds are 48kHz stereo S16LE.
type SoundBank struct {
	mu      sync.Mutex
	enabled bool
	chime   []byte
	buzz    []byte
	player  *oto.Player
}

// NewSoundBank synthesizes the cue samples. Playback is a no-op when
// enabled is false.
func NewSoundBank(enabled bool) *SoundBank {
	return &SoundBank{
		enabled: enabled,
		chime:   generateChime(),
		buzz:    generateBuzz(),
	}
}

// PlayChime plays the success cue.
func (b *SoundBank) PlayChime() {
	b.play(b.chime)
}

// PlayBuzz plays the failure cue.
func (b *SoundBank) PlayBuzz() {
	b.play(b.buzz)
}

func (b *SoundBank) play(soundData []byte) {
	if !b.enabled || len(soundData) == 0 {
		return
	}

	ctx, err := ensureOtoContext()
	if err != nil {
		log.Printf("Warning: audio not available: %v", err)
		return
	}

	b.mu.Lock()
	if b.player != nil {
		b.player.Close()
	}
	b.player = ctx.NewPlayer(bytes.NewReader(soundData))
	b.player.Play()
	b.mu.Unlock()
}

// Close releases the active player if any.
func (b *SoundBank) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		b.player.Close()
		b.player = nil
	}
}

// generateChime creates a rising two-note success cue (48kHz stereo S16LE)
func generateChime() []byte {
	duration := 0.5
	numSamples := int(float64(audioSampleRate) * duration)

	notes := []struct {
		freq   float64
		start  float64
		volume float64
	}{
		{523.25, 0.0, 0.4},  // C5
		{783.99, 0.12, 0.4}, // G5
	}

	samples := make([]byte, numSamples*4) // 2 bytes * 2 channels

	for i := 0; i < numSamples; i++ {
		t := float64(i) / float64(audioSampleRate)
		sample := 0.0

		for _, note := range notes {
			if t < note.start {
				continue
			}

			noteT := t - note.start
			attackTime := 0.02
			decayTime := 0.35
			var envelope float64

			if noteT < attackTime {
				envelope = noteT / attackTime
			} else {
				envelope = math.Exp(-3.0 * (noteT - attackTime) / decayTime)
			}

			sample += math.Sin(2*math.Pi*note.freq*noteT) * envelope * note.volume
		}

		writeSample(samples, i, sample)
	}

	return samples
}

// generateBuzz creates a short low failure cue (48kHz stereo S16LE)
func generateBuzz() []byte {
	duration := 0.4
	numSamples := int(float64(audioSampleRate) * duration)

	samples := make([]byte, numSamples*4)

	for i := 0; i < numSamples; i++ {
		t := float64(i) / float64(audioSampleRate)

		envelope := math.Exp(-4.0 * t)
		// Two close low frequencies beat against each other
		sample := (math.Sin(2*math.Pi*110*t) + math.Sin(2*math.Pi*116*t)) * 0.25 * envelope

		writeSample(samples, i, sample)
	}

	return samples
}

// writeSample clamps and stores one mono sample into both stereo
// channels at index i.
func writeSample(samples []byte, i int, sample float64) {
	if sample > 1.0 {
		sample = 1.0
	} else if sample < -1.0 {
		sample = -1.0
	}

	value := int16(sample * 12000)

	idx := i * 4
	samples[idx] = byte(value)
	samples[idx+1] = byte(value >> 8)
	samples[idx+2] = byte(value)
	samples[idx+3] = byte(value >> 8)
}
