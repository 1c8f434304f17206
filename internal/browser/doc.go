// Package browser binds the player session to the page it runs in when
// compiled for js/wasm: script injection, the global player library,
// localStorage and keyboard input.
package browser
