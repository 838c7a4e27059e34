package live

import (
	"errors"
	"math"
	"testing"

	"github.com/recera/panzoom/pkg/shortcuts"
	"github.com/recera/panzoom/pkg/viewport"
)

func TestEncodeDecodeEvent(t *testing.T) {
	events := []Event{
		{Type: EventOpen},
		{Type: EventResize, Rect: viewport.Rect{Left: 12.5, Top: -3, Width: 1024, Height: 768}},
		{Type: EventWheel, X: 200, Y: 50, DeltaY: -100},
		{Type: EventWheel, X: math.SmallestNonzeroFloat64, Y: math.MaxFloat64, DeltaY: 0.1},
		{Type: EventPointerDown, X: 50, Y: 50, Button: viewport.ButtonSecondary},
		{Type: EventPointerMove, X: 70, Y: 40},
		{Type: EventPointerUp, X: 70, Y: 40},
		{Type: EventKeyDown, Key: "=", Modifiers: shortcuts.ModCtrl | shortcuts.ModShift},
		{Type: EventReset},
	}
	for _, want := range events {
		got, err := DecodeEvent(EncodeEvent(want))
		if err != nil {
			t.Fatalf("%s: DecodeEvent: %v", want.Type, err)
		}
		if *got != want {
			t.Errorf("%s: decoded %+v, want %+v", want.Type, *got, want)
		}
	}
}

func TestDecodeEvent_Errors(t *testing.T) {
	truncated := EncodeEvent(Event{Type: EventWheel, X: 1, Y: 2, DeltaY: 3})
	truncated = truncated[:len(truncated)-4]

	nanWheel := EncodeEvent(Event{Type: EventWheel, X: 1, Y: 2, DeltaY: math.NaN()})
	infMove := EncodeEvent(Event{Type: EventPointerMove, X: math.Inf(-1), Y: 2})
	nanResize := EncodeEvent(Event{Type: EventResize, Rect: viewport.Rect{Width: math.NaN(), Height: 10}})

	longKey := []byte{byte(FrameEvent), byte(EventKeyDown)}
	longKey = appendUvarint(longKey, maxStringLen+1)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty", nil, ErrShortFrame},
		{"header only", []byte{byte(FrameEvent)}, ErrShortFrame},
		{"control frame", []byte{byte(FrameControl), 0x01}, ErrNotEvent},
		{"unknown event", []byte{byte(FrameEvent), 0x7F}, ErrUnknownEvent},
		{"truncated floats", truncated, nil},
		{"missing modifiers", []byte{byte(FrameEvent), byte(EventKeyDown), 0x01, 'a'}, nil},
		{"oversized key", longKey, nil},
		{"nan wheel delta", nanWheel, ErrNonFinite},
		{"infinite pointer", infMove, ErrNonFinite},
		{"nan resize", nanResize, ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEvent(tt.data)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func appendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}
