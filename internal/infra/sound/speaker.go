package sound

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"github.com/battalert/battalert/internal/domain"
)

// DefaultSampleRate is the output rate the speaker is opened at.
const DefaultSampleRate = 44100

// Speaker is the Backend that plays through the default audio device.
// The device is opened lazily on first Start so that commands which never
// play sound do not touch the audio subsystem.
type Speaker struct {
	sampleRate beep.SampleRate
	ready      bool

	stream beep.StreamSeekCloser
	volume *effects.Volume
}

// NewSpeaker creates a speaker backend with the given output sample rate.
func NewSpeaker(sampleRate int) *Speaker {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Speaker{sampleRate: beep.SampleRate(sampleRate)}
}

// Start decodes path and hands it to the mixer.
func (s *Speaker) Start(path string, loop bool, volume float64) error {
	if err := s.init(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	stream, format, err := decode(path, f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode: %w", err)
	}

	var src beep.Streamer = stream
	if loop {
		src = beep.Loop(-1, stream)
	}
	if format.SampleRate != s.sampleRate {
		src = beep.Resample(4, format.SampleRate, s.sampleRate, src)
	}

	vol := &effects.Volume{Streamer: src, Base: 2}
	applyVolume(vol, volume)

	if s.stream != nil {
		speaker.Clear()
		s.release()
	}
	s.stream = stream
	s.volume = vol
	speaker.Play(vol)
	return nil
}

// Stop clears the mixer and closes the decoded file.
func (s *Speaker) Stop() {
	if !s.ready {
		return
	}
	speaker.Clear()
	s.release()
}

// SetVolume adjusts the active stream under the speaker lock.
func (s *Speaker) SetVolume(v float64) {
	if s.volume == nil {
		return
	}
	speaker.Lock()
	applyVolume(s.volume, v)
	speaker.Unlock()
}

func (s *Speaker) init() error {
	if s.ready {
		return nil
	}
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPlaybackUnavailable, err)
	}
	s.ready = true
	return nil
}

func (s *Speaker) release() {
	if s.stream != nil {
		s.stream.Close()
	}
	s.stream = nil
	s.volume = nil
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	default:
		return nil, beep.Format{}, domain.ErrUnsupportedFormat
	}
}

// applyVolume maps a linear volume in [0,1] onto effects.Volume, which
// scales amplitude by Base^Volume.
func applyVolume(vol *effects.Volume, v float64) {
	gain, silent := gainFor(v)
	vol.Volume = gain
	vol.Silent = silent
}

func gainFor(v float64) (gain float64, silent bool) {
	v = domain.ClampVolume(v)
	if v == 0 {
		return 0, true
	}
	return math.Log2(v), false
}
