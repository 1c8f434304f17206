//go:build js && wasm

package browser

import (
	"encoding/json"
	"errors"
	"fmt"
	"syscall/js"
)

// ConfigElementID holds the JSON bootstrap rendered by the server.
const ConfigElementID = "player-config"

// Page wraps the loading overlay, error view and controls rendered around
// the player container.
type Page struct {
	doc   js.Value
	funcs []js.Func
}

func NewPage() *Page {
	return &Page{doc: js.Global().Get("document")}
}

func (p *Page) element(id string) js.Value {
	return p.doc.Call("getElementById", id)
}

// ReadConfig decodes the JSON bootstrap element into v.
func (p *Page) ReadConfig(v any) error {
	el := p.element(ConfigElementID)
	if !el.Truthy() {
		return errors.New("player config element missing")
	}
	if err := json.Unmarshal([]byte(el.Get("textContent").String()), v); err != nil {
		return fmt.Errorf("decode player config: %w", err)
	}
	return nil
}

func (p *Page) setHidden(id string, hidden bool) {
	if el := p.element(id); el.Truthy() {
		el.Set("hidden", hidden)
	}
}

func (p *Page) ShowLoading() {
	p.setHidden("error-view", true)
	p.setHidden("loading-overlay", false)
}

func (p *Page) ShowReady() {
	p.setHidden("loading-overlay", true)
	p.setHidden("error-view", true)
}

func (p *Page) ShowError(message string) {
	p.setHidden("loading-overlay", true)
	if el := p.element("error-message"); el.Truthy() {
		el.Set("textContent", message)
	}
	p.setHidden("error-view", false)
}

// OnClick runs fn in its own goroutine when the element is clicked.
func (p *Page) OnClick(id string, fn func()) {
	el := p.element(id)
	if !el.Truthy() {
		return
	}
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		go fn()
		return nil
	})
	p.funcs = append(p.funcs, cb)
	el.Call("addEventListener", "click", cb)
}

// OnSelect runs fn with the selected value whenever a select element changes.
func (p *Page) OnSelect(id string, fn func(value string)) {
	el := p.element(id)
	if !el.Truthy() {
		return
	}
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		value := el.Get("value").String()
		go fn(value)
		return nil
	})
	p.funcs = append(p.funcs, cb)
	el.Call("addEventListener", "change", cb)
}

func (p *Page) SetSelected(id, value string) {
	if el := p.element(id); el.Truthy() {
		el.Set("value", value)
	}
}

// Navigate replaces the current location.
func (p *Page) Navigate(href string) {
	js.Global().Get("location").Set("href", href)
}

// OnUnload runs fn when the page is being torn down.
func (p *Page) OnUnload(fn func()) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	p.funcs = append(p.funcs, cb)
	js.Global().Call("addEventListener", "pagehide", cb)
}
