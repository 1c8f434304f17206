//go:build js && wasm

package browser

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"syscall/js"

	"github.com/playrelay/playrelay/internal/player"
)

const globalName = "jwplayer"

// Global exposes window.jwplayer as a player.Global.
type Global struct{}

func (Global) Lookup() (player.Library, bool) {
	v := js.Global().Get(globalName)
	if v.Type() != js.TypeFunction {
		return nil, false
	}
	return &library{fn: v}, true
}

func (Global) Clear() {
	js.Global().Delete(globalName)
}

type library struct {
	fn js.Value
}

func (l *library) SetKey(key string) {
	l.fn.Set("key", key)
}

func (l *library) Setup(container string, setup player.Setup) (_ player.Instance, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("jwplayer setup: %v", r)
		}
	}()
	cfg, err := toJS(setup)
	if err != nil {
		return nil, err
	}
	handle := l.fn.Invoke(container)
	if !handle.Truthy() {
		return nil, fmt.Errorf("jwplayer: no element %q", container)
	}
	inst := handle.Call("setup", cfg)
	if !inst.Truthy() {
		return nil, errors.New("jwplayer: setup returned no instance")
	}
	return &instance{v: inst}, nil
}

func toJS(v any) (js.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return js.Undefined(), fmt.Errorf("encode setup: %w", err)
	}
	return js.Global().Get("JSON").Call("parse", string(data)), nil
}

type instance struct {
	v js.Value

	mu    sync.Mutex
	funcs []js.Func
}

func (i *instance) keep(fn js.Func) js.Func {
	i.mu.Lock()
	i.funcs = append(i.funcs, fn)
	i.mu.Unlock()
	return fn
}

func (i *instance) Play() { i.v.Call("play") }
func (i *instance) Pause() { i.v.Call("pause") }
func (i *instance) State() string { return i.v.Call("getState").String() }
func (i *instance) Seek(position float64) { i.v.Call("seek", position) }
func (i *instance) Position() float64 { return number(i.v.Call("getPosition")) }
func (i *instance) Duration() float64 { return number(i.v.Call("getDuration")) }
func (i *instance) Volume() int { return int(number(i.v.Call("getVolume"))) }
func (i *instance) SetVolume(volume int) { i.v.Call("setVolume", volume) }
func (i *instance) Mute() bool { return i.v.Call("getMute").Truthy() }
func (i *instance) SetMute(mute bool) { i.v.Call("setMute", mute) }
func (i *instance) Fullscreen() bool { return i.v.Call("getFullscreen").Truthy() }
func (i *instance) SetFullscreen(on bool) { i.v.Call("setFullscreen", on) }

func (i *instance) On(event player.Event, handler func(player.EventData)) {
	fn := i.keep(js.FuncOf(func(this js.Value, args []js.Value) any {
		var data player.EventData
		if len(args) > 0 && args[0].Type() == js.TypeObject {
			if msg := args[0].Get("message"); msg.Type() == js.TypeString {
				data.Message = msg.String()
			}
		}
		// Handlers may take the session lock; keep the JS callback short.
		go handler(data)
		return nil
	}))
	i.v.Call("on", string(event), fn)
}

func (i *instance) AddButton(b player.Button) {
	onClick := b.OnClick
	fn := i.keep(js.FuncOf(func(this js.Value, args []js.Value) any {
		if onClick != nil {
			go onClick()
		}
		return nil
	}))
	i.v.Call("addButton", b.Icon, b.Tooltip, fn, b.ID)
}

func (i *instance) Remove() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("jwplayer remove: %v", r)
		}
		i.mu.Lock()
		for _, fn := range i.funcs {
			fn.Release()
		}
		i.funcs = nil
		i.mu.Unlock()
	}()
	i.v.Call("remove")
	return nil
}

func number(v js.Value) float64 {
	if v.Type() != js.TypeNumber {
		return 0
	}
	return v.Float()
}
