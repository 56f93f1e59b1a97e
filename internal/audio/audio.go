// Package audio plays the background music and burst pops.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// DefaultMusicOffset is where the celebration track starts playing.
	DefaultMusicOffset = 38 * time.Second
	// DefaultVolume is the music volume in [0, 1].
	DefaultVolume = 0.4

	popDuration = 180 * time.Millisecond
	popVolume   = 0.35
	maxPops     = 8 // Concurrent pops; more are dropped
)

// ErrNotInitialized is returned when sound is requested before Initialize.
var ErrNotInitialized = errors.New("audio: not initialized")

// Options configures a Manager.
type Options struct {
	MusicPath   string        // mp3 file; empty disables music
	MusicOffset time.Duration // Start position within the track
	Volume      float64       // Music volume in [0, 1]
	Pops        bool          // Play a pop when fireworks burst
}

// Manager owns the speaker and the streams playing through it.
type Manager struct {
	mu          sync.Mutex
	opts        Options
	mixer       *beep.Mixer
	music       *beep.Ctrl
	musicCloser beep.StreamSeekCloser
	pops        atomic.Int32 // Pops still playing; decremented from the speaker goroutine
	seed        int64
	initialized bool
}

// NewManager creates a manager. Nothing plays until Initialize.
func NewManager(opts Options) *Manager {
	return &Manager{
		opts:  opts,
		mixer: &beep.Mixer{},
		seed:  time.Now().UnixNano(),
	}
}

// Initialize sets up the speaker.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// StartMusic starts the configured track once. Later calls do nothing.
func (m *Manager) StartMusic() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.opts.MusicPath == "" || m.music != nil {
		return nil
	}
	if !m.initialized {
		return ErrNotInitialized
	}

	track, err := openTrack(m.opts.MusicPath, m.opts.MusicOffset)
	if err != nil {
		return err
	}

	m.musicCloser = track.closer
	m.music = &beep.Ctrl{Streamer: newVolume(track.stream, m.opts.Volume)}
	speaker.Lock()
	m.mixer.Add(m.music)
	speaker.Unlock()
	return nil
}

// Pop plays one short burst sound if pops are enabled.
func (m *Manager) Pop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || !m.opts.Pops || m.pops.Load() >= maxPops {
		return
	}

	m.seed++
	m.pops.Add(1)
	pop := beep.Seq(
		newVolume(beep.Take(sampleRate.N(popDuration), NewPopGenerator(sampleRate, m.seed)), popVolume),
		beep.Callback(m.popDone),
	)
	speaker.Lock()
	m.mixer.Add(pop)
	speaker.Unlock()
}

func (m *Manager) popDone() {
	m.pops.Add(-1)
}

// Cleanup stops all sounds and closes the track.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	speaker.Lock()
	if m.music != nil {
		m.music.Paused = true
	}
	m.mixer.Clear()
	speaker.Unlock()

	if m.musicCloser != nil {
		m.musicCloser.Close()
		m.musicCloser = nil
	}
	m.initialized = false
}

type track struct {
	stream beep.Streamer
	closer beep.StreamSeekCloser
}

// openTrack decodes an mp3, seeks to offset and resamples it to the
// speaker rate.
func openTrack(path string, offset time.Duration) (track, error) {
	f, err := os.Open(path)
	if err != nil {
		return track{}, fmt.Errorf("audio: cannot open %s: %w", path, err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return track{}, fmt.Errorf("audio: cannot decode %s: %w", path, err)
	}

	if pos := format.SampleRate.N(offset); pos > 0 && pos < streamer.Len() {
		if err := streamer.Seek(pos); err != nil {
			streamer.Close()
			return track{}, fmt.Errorf("audio: cannot seek %s: %w", path, err)
		}
	}

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}
	return track{stream: s, closer: streamer}, nil
}

// newVolume wraps s with a linear volume. math.Log2(0) is -Inf, so zero
// volume is made silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
