//go:build js && wasm
// +build js,wasm

package live

import (
	"encoding/json"
	"errors"
	"log"
	"syscall/js"
)

// ErrNotConnected is returned when sending before Connect.
var ErrNotConnected = errors.New("live client not connected")

// wsOpen is WebSocket.OPEN.
const wsOpen = 1

// Client forwards viewport input from the browser to a live server and
// receives the resulting state.
type Client struct {
	ws      js.Value
	url     string
	onState func(StateMessage)
	onReady func()
	onError func(error)
	funcs   map[string]js.Func
}

// NewClient creates a new live protocol client
func NewClient(url string) *Client {
	return &Client{
		url: url,
	}
}

// Connect establishes WebSocket connection
func (c *Client) Connect() error {
	c.ws = js.Global().Get("WebSocket").New(c.url)
	c.ws.Set("binaryType", "arraybuffer")

	c.on("onopen", func(args []js.Value) {
		log.Println("[Live Client] Connected")
		if c.onReady != nil {
			c.onReady()
		}
	})

	c.on("onmessage", func(args []js.Value) {
		if len(args) == 0 {
			return
		}
		data := args[0].Get("data")
		// Binary frames are control messages; state arrives as JSON text.
		if data.Type() != js.TypeString {
			return
		}
		var msg StateMessage
		if err := json.Unmarshal([]byte(data.String()), &msg); err != nil {
			log.Printf("[Live Client] Bad state message: %v", err)
			return
		}
		if c.onState != nil {
			c.onState(msg)
		}
	})

	c.on("onerror", func(args []js.Value) {
		log.Println("[Live Client] WebSocket error")
		if c.onError != nil {
			c.onError(errors.New("websocket error"))
		}
	})

	c.on("onclose", func(args []js.Value) {
		log.Println("[Live Client] Disconnected")
	})

	return nil
}

func (c *Client) on(name string, fn func(args []js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		fn(args)
		return nil
	})
	if c.funcs == nil {
		c.funcs = make(map[string]js.Func)
	}
	c.funcs[name] = f
	c.ws.Set(name, f)
}

// SendEvent sends an event to the server
func (c *Client) SendEvent(evt Event) error {
	// send throws while the socket is still connecting.
	if !c.ws.Truthy() || c.ws.Get("readyState").Int() != wsOpen {
		return ErrNotConnected
	}

	data := EncodeEvent(evt)

	arrayBuffer := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arrayBuffer, data)

	c.ws.Call("send", arrayBuffer)
	return nil
}

// Close closes the WebSocket connection and releases its callbacks
func (c *Client) Close() {
	if !c.ws.Truthy() {
		return
	}
	// Detach handlers first so a late close event cannot hit a released func.
	for name, f := range c.funcs {
		c.ws.Set(name, js.Null())
		f.Release()
	}
	c.ws.Call("close")
	c.funcs = nil
}

// OnState sets the state handler
func (c *Client) OnState(handler func(StateMessage)) {
	c.onState = handler
}

// OnReady sets the ready handler
func (c *Client) OnReady(handler func()) {
	c.onReady = handler
}

// OnError sets the error handler
func (c *Client) OnError(handler func(error)) {
	c.onError = handler
}
