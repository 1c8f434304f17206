//go:build js && wasm

package browser

import (
	"strings"
	"syscall/js"
)

// Keyboard delivers document keydown events. Keys typed into form fields are
// left alone.
type Keyboard struct {
	doc js.Value
}

func NewKeyboard() *Keyboard {
	return &Keyboard{doc: js.Global().Get("document")}
}

func (k *Keyboard) Bind(handler func(key string) bool) func() {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		event := args[0]
		if target := event.Get("target"); target.Truthy() {
			switch strings.ToUpper(target.Get("tagName").String()) {
			case "INPUT", "TEXTAREA", "SELECT":
				return nil
			}
		}
		if handler(event.Get("key").String()) {
			event.Call("preventDefault")
		}
		return nil
	})
	k.doc.Call("addEventListener", "keydown", fn)

	return func() {
		k.doc.Call("removeEventListener", "keydown", fn)
		fn.Release()
	}
}
