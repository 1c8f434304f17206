//go:build js && wasm

package browser

import (
	"context"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/playrelay/playrelay/internal/loader"
)

// Document injects resources into the page head.
type Document struct {
	doc js.Value
}

func NewDocument() *Document {
	return &Document{doc: js.Global().Get("document")}
}

type scriptAttachment struct {
	el js.Value
}

func (a scriptAttachment) Remove() { a.el.Call("remove") }

// Inject appends a script element for src and waits for its load or error
// event. It must not be called from a JS callback, since it blocks.
func (d *Document) Inject(ctx context.Context, src string) (loader.Attachment, error) {
	script := d.doc.Call("createElement", "script")
	script.Set("src", src)
	attachment := scriptAttachment{el: script}

	done := make(chan error, 1)
	onLoad := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- nil
		return nil
	})
	onError := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- fmt.Errorf("script %s failed to load", src)
		return nil
	})
	defer onLoad.Release()
	defer onError.Release()
	script.Set("onload", onLoad)
	script.Set("onerror", onError)

	d.doc.Get("head").Call("appendChild", script)

	select {
	case err := <-done:
		script.Set("onload", js.Null())
		script.Set("onerror", js.Null())
		if err != nil {
			return attachment, err
		}
		return attachment, nil
	case <-ctx.Done():
		script.Set("onload", js.Null())
		script.Set("onerror", js.Null())
		return attachment, ctx.Err()
	}
}

func (d *Document) AttachStylesheet(href string) {
	existing := d.doc.Call("querySelector", fmt.Sprintf(`link[rel="stylesheet"][href=%q]`, href))
	if existing.Truthy() {
		return
	}
	link := d.doc.Call("createElement", "link")
	link.Set("rel", "stylesheet")
	link.Set("href", href)
	d.doc.Get("head").Call("appendChild", link)
}

func (d *Document) PurgeScripts(patterns ...string) int {
	if len(patterns) == 0 {
		return 0
	}
	selectors := make([]string, len(patterns))
	for i, p := range patterns {
		selectors[i] = fmt.Sprintf(`script[src*=%q]`, p)
	}
	nodes := d.doc.Call("querySelectorAll", strings.Join(selectors, ", "))
	n := nodes.Length()
	for i := 0; i < n; i++ {
		nodes.Index(i).Call("remove")
	}
	return n
}
