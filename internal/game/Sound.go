package game

type Sound int

const (
	SoundCollect Sound = iota
)

func (s Sound) String() string {
	switch s {
	case SoundCollect:
		return "collect"
	}
	return "unknown"
}

// SoundPlayer is fire-and-forget. Implementations must not block the tick
// and must swallow their own failures.
type SoundPlayer interface {
	Play(sound Sound)
}

type NopSound struct{}

func (NopSound) Play(Sound) {}
