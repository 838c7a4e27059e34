package live

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/recera/panzoom/pkg/shortcuts"
	"github.com/recera/panzoom/pkg/viewport"
)

var (
	// ErrShortFrame is returned for frames too short to carry a header.
	ErrShortFrame = errors.New("event data too short")
	// ErrNotEvent is returned when the frame type is not FrameEvent.
	ErrNotEvent = errors.New("not an event frame")
	// ErrUnknownEvent is returned for unrecognised event types.
	ErrUnknownEvent = errors.New("unknown event type")
	// ErrNonFinite is returned when a coordinate or delta is NaN or infinite.
	ErrNonFinite = errors.New("non-finite number")
)

// maxStringLen bounds length-prefixed strings read from the wire.
const maxStringLen = 1 << 16

// Encoder handles encoding of live protocol messages
type Encoder struct {
	w io.Writer
}

// NewEncoder creates a new encoder
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteUvarint writes an unsigned varint
func (e *Encoder) WriteUvarint(v uint64) error {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(buf, v)
	_, err := e.w.Write(buf[:n])
	return err
}

// WriteFloat64 writes an IEEE-754 double, little endian
func (e *Encoder) WriteFloat64(v float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	_, err := e.w.Write(buf[:])
	return err
}

// WriteString writes a length-prefixed string
func (e *Encoder) WriteString(s string) error {
	if err := e.WriteUvarint(uint64(len(s))); err != nil {
		return err
	}
	_, err := e.w.Write([]byte(s))
	return err
}

// WriteBytes writes raw bytes
func (e *Encoder) WriteBytes(b []byte) error {
	_, err := e.w.Write(b)
	return err
}

// Decoder handles decoding of live protocol messages
type Decoder struct {
	r   io.Reader
	buf []byte
}

// NewDecoder creates a new decoder
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:   r,
		buf: make([]byte, 1024),
	}
}

// ReadUvarint reads an unsigned varint
func (d *Decoder) ReadUvarint() (uint64, error) {
	return binary.ReadUvarint(d)
}

// ReadByte implements io.ByteReader
func (d *Decoder) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadFloat64 reads an IEEE-754 double, little endian
func (d *Decoder) ReadFloat64() (float64, error) {
	var b [8]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b[:])), nil
}

// ReadString reads a length-prefixed string
func (d *Decoder) ReadString() (string, error) {
	length, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}
	if length > maxStringLen {
		return "", fmt.Errorf("string length %d exceeds %d", length, maxStringLen)
	}

	if length > uint64(len(d.buf)) {
		d.buf = make([]byte, length)
	}

	n, err := io.ReadFull(d.r, d.buf[:length])
	if err != nil {
		return "", err
	}

	return string(d.buf[:n]), nil
}

// EncodeEvent encodes an event to binary format
func EncodeEvent(evt Event) []byte {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	// Writes to a bytes.Buffer cannot fail.
	enc.WriteBytes([]byte{byte(FrameEvent), byte(evt.Type)})

	switch evt.Type {
	case EventResize:
		enc.WriteFloat64(evt.Rect.Left)
		enc.WriteFloat64(evt.Rect.Top)
		enc.WriteFloat64(evt.Rect.Width)
		enc.WriteFloat64(evt.Rect.Height)
	case EventWheel:
		enc.WriteFloat64(evt.X)
		enc.WriteFloat64(evt.Y)
		enc.WriteFloat64(evt.DeltaY)
	case EventPointerDown:
		enc.WriteFloat64(evt.X)
		enc.WriteFloat64(evt.Y)
		enc.WriteUvarint(uint64(evt.Button))
	case EventPointerMove, EventPointerUp:
		enc.WriteFloat64(evt.X)
		enc.WriteFloat64(evt.Y)
	case EventKeyDown:
		enc.WriteString(evt.Key)
		enc.WriteBytes([]byte{byte(evt.Modifiers)})
	}

	return buf.Bytes()
}

// DecodeEvent decodes an event from binary format
func DecodeEvent(data []byte) (*Event, error) {
	if len(data) < 2 {
		return nil, ErrShortFrame
	}

	// Check frame type
	if data[0] != byte(FrameEvent) {
		return nil, ErrNotEvent
	}

	evt := &Event{Type: EventType(data[1])}
	dec := NewDecoder(bytes.NewReader(data[2:]))

	var err error
	switch evt.Type {
	case EventOpen, EventClose, EventZoomIn, EventZoomOut, EventReset:
		// No payload
	case EventResize:
		err = readFloats(dec, &evt.Rect.Left, &evt.Rect.Top, &evt.Rect.Width, &evt.Rect.Height)
	case EventWheel:
		err = readFloats(dec, &evt.X, &evt.Y, &evt.DeltaY)
	case EventPointerDown:
		if err = readFloats(dec, &evt.X, &evt.Y); err == nil {
			var b uint64
			b, err = dec.ReadUvarint()
			evt.Button = viewport.Button(b)
		}
	case EventPointerMove, EventPointerUp:
		err = readFloats(dec, &evt.X, &evt.Y)
	case EventKeyDown:
		if evt.Key, err = dec.ReadString(); err == nil {
			var m byte
			m, err = dec.ReadByte()
			evt.Modifiers = shortcuts.Modifier(m)
		}
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownEvent, data[1])
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s event: %w", evt.Type, err)
	}

	return evt, nil
}

func readFloats(dec *Decoder, dst ...*float64) error {
	for _, p := range dst {
		v, err := dec.ReadFloat64()
		if err != nil {
			return err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
		*p = v
	}
	return nil
}
