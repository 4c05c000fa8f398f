package audio

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/Mshel/retrosnake/internal/game"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2

	collectDuration = 90 * time.Millisecond
	maxConcurrent   = 4
	volume          = 0.35
)

// Beeper plays procedurally generated effects on the default output device.
// Every call returns immediately; playback happens on its own goroutine.
type Beeper struct {
	ctx     *oto.Context
	ready   chan struct{}
	samples map[game.Sound][]byte
	active  atomic.Int32
	logger  *log.Logger
}

func NewBeeper(logger *log.Logger) (*Beeper, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &Beeper{
		ctx:   ctx,
		ready: ready,
		samples: map[game.Sound][]byte{
			game.SoundCollect: CollectSamples(),
		},
		logger: logger,
	}, nil
}

func (b *Beeper) Play(sound game.Sound) {
	if b == nil || b.ctx == nil {
		return
	}
	select {
	case <-b.ready:
	default:
		return
	}

	samples := b.samples[sound]
	if len(samples) == 0 {
		return
	}
	if b.active.Add(1) > maxConcurrent {
		b.active.Add(-1)
		return
	}

	go func() {
		defer b.active.Add(-1)
		player := b.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Err(); err != nil && b.logger != nil {
			b.logger.Warn("Sound playback failed", "sound", sound, "error", err)
		}
		player.Close()
	}()
}

// CollectSamples is a short rising square-wave chirp with a linear fade out.
func CollectSamples() []byte {
	frames := int(float64(SampleRate) * collectDuration.Seconds())
	buf := make([]byte, frames*ChannelCount*4)

	phase := 0.0
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames)
		freq := 660 + 660*t
		phase += freq / SampleRate
		sample := 0.5
		if math.Mod(phase, 1) >= 0.5 {
			sample = -0.5
		}
		putStereoF32(buf, i, sample*(1-t))
	}
	return buf
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < ChannelCount; ch++ {
		off := i*ChannelCount*4 + ch*4
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
	}
}
