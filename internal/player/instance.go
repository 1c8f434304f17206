package player

import "sync"

type Event string

const (
	EventReady      Event = "ready"
	EventError      Event = "error"
	EventBuffer     Event = "buffer"
	EventBufferFull Event = "bufferFull"
)

// EventData carries the payload of a player event. Only error events fill
// Message.
type EventData struct {
	Message string
}

// Button is a custom control added to the player's control bar.
type Button struct {
	ID      string
	Tooltip string
	Icon    string
	OnClick func()
}

// Instance is the control surface of one external player. Handlers passed to
// On are invoked asynchronously, never from within On itself.
type Instance interface {
	Play()
	Pause()
	State() string
	Seek(position float64)
	Position() float64
	Duration() float64
	Volume() int
	SetVolume(volume int)
	Mute() bool
	SetMute(muted bool)
	Fullscreen() bool
	SetFullscreen(on bool)
	On(event Event, handler func(EventData))
	AddButton(b Button)
	Remove() error
}

// Library is the loaded external player capability.
type Library interface {
	SetKey(key string)
	Setup(container string, cfg Setup) (Instance, error)
}

// Global is where the library registers itself once its script has run.
type Global interface {
	Lookup() (Library, bool)
	Clear()
}

// Capability caches the library detected through a Global. Reset forgets it
// and clears the global so the next Library call detects afresh.
type Capability struct {
	mu     sync.Mutex
	global Global
	lib    Library
}

func NewCapability(global Global) *Capability {
	return &Capability{global: global}
}

func (c *Capability) Library() (Library, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lib != nil {
		return c.lib, true
	}
	lib, ok := c.global.Lookup()
	if !ok {
		return nil, false
	}
	c.lib = lib
	return lib, true
}

func (c *Capability) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lib = nil
	c.global.Clear()
}
