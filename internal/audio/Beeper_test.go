package audio

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/Mshel/retrosnake/internal/game"
)

func TestCollectSamples(t *testing.T) {
	samples := CollectSamples()

	frameSize := ChannelCount * 4
	if len(samples) == 0 || len(samples)%frameSize != 0 {
		t.Fatalf("Expected whole stereo float32 frames, got %d bytes", len(samples))
	}

	silent := true
	for off := 0; off < len(samples); off += 4 {
		v := math.Float32frombits(binary.LittleEndian.Uint32(samples[off:]))
		if v < -1 || v > 1 {
			t.Fatalf("Sample %f at byte %d is out of range", v, off)
		}
		if v != 0 {
			silent = false
		}
	}
	if silent {
		t.Errorf("Expected an audible chirp")
	}

	left := binary.LittleEndian.Uint32(samples[0:])
	right := binary.LittleEndian.Uint32(samples[4:])
	if left != right {
		t.Errorf("Expected identical channels, got %x and %x", left, right)
	}
}

func TestSoundReaderDrains(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	got, err := io.ReadAll(&soundReader{data: data})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Expected %v, got %v", data, got)
	}
}

func TestPlayWithoutDeviceIsNoop(t *testing.T) {
	var nilBeeper *Beeper
	nilBeeper.Play(game.SoundCollect)

	(&Beeper{}).Play(game.SoundCollect)
}
