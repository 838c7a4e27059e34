//go:build !js || !wasm

package debug

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/recera/panzoom/pkg/frame"
	"github.com/recera/panzoom/pkg/shortcuts"
	"github.com/recera/panzoom/pkg/viewport"
)

func TestEnableLogging(t *testing.T) {
	var buf bytes.Buffer
	EnableLogging(log.New(&buf, "", 0))
	defer DisableLogging()

	q := frame.NewQueue()
	doc := viewport.NewListenerSet()
	c := viewport.New(nil, doc, q)
	c.HandlePointerDown(viewport.PointerEvent{})
	c.Cleanup()
	c.InitTransform()
	q.Flush()

	b := shortcuts.New(func() bool { return true }, shortcuts.Callbacks{})
	b.HandleKeyDown(&shortcuts.KeyEvent{Key: shortcuts.KeyEscape})

	out := buf.String()
	for _, want := range []string{"[Viewport]", "[Frame]", "[Shortcuts]"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}
