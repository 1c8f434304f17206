package player

import "math"

const (
	seekStep   = 10
	volumeStep = 10
	maxVolume  = 100
)

// Command is a session operation triggered by keyboard or control input.
type Command int

const (
	PlayPause Command = iota + 1
	SeekBackward
	SeekForward
	VolumeUp
	VolumeDown
	ToggleFullscreen
	ToggleMute
)

func (c Command) String() string {
	switch c {
	case PlayPause:
		return "play-pause"
	case SeekBackward:
		return "seek-backward"
	case SeekForward:
		return "seek-forward"
	case VolumeUp:
		return "volume-up"
	case VolumeDown:
		return "volume-down"
	case ToggleFullscreen:
		return "toggle-fullscreen"
	case ToggleMute:
		return "toggle-mute"
	default:
		return "unknown"
	}
}

var keyCommands = map[string]Command{
	" ":          PlayPause,
	"ArrowLeft":  SeekBackward,
	"ArrowRight": SeekForward,
	"ArrowUp":    VolumeUp,
	"ArrowDown":  VolumeDown,
	"f":          ToggleFullscreen,
	"m":          ToggleMute,
}

// KeyCommand maps a KeyboardEvent.key value to a command.
func KeyCommand(key string) (Command, bool) {
	cmd, ok := keyCommands[key]
	return cmd, ok
}

// ClampPosition limits p to [0, duration]. An unknown or non-positive
// duration pins the result to 0.
func ClampPosition(p, duration float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if math.IsNaN(duration) || duration <= 0 {
		return 0
	}
	if p > duration {
		return duration
	}
	return p
}

func ClampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxVolume {
		return maxVolume
	}
	return v
}

// Apply runs cmd against inst.
func Apply(inst Instance, cmd Command) {
	switch cmd {
	case PlayPause:
		if inst.State() == "playing" {
			inst.Pause()
		} else {
			inst.Play()
		}
	case SeekBackward:
		inst.Seek(ClampPosition(inst.Position()-seekStep, inst.Duration()))
	case SeekForward:
		inst.Seek(ClampPosition(inst.Position()+seekStep, inst.Duration()))
	case VolumeUp:
		inst.SetVolume(ClampVolume(inst.Volume() + volumeStep))
	case VolumeDown:
		inst.SetVolume(ClampVolume(inst.Volume() - volumeStep))
	case ToggleFullscreen:
		inst.SetFullscreen(!inst.Fullscreen())
	case ToggleMute:
		inst.SetMute(!inst.Mute())
	}
}
