package tlvwire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	Magic     uint32 = 0x4D57544C // "MWTL"
	Version   uint16 = 1
	HeaderLen        = 12
)

var (
	ErrShortHeader        = errors.New("tlvwire: short document header")
	ErrInvalidMagic       = errors.New("tlvwire: invalid magic")
	ErrUnsupportedVersion = errors.New("tlvwire: unsupported version")
	ErrPayloadTooLarge    = errors.New("tlvwire: payload too large")
	ErrPayloadMismatch    = errors.New("tlvwire: payload length does not match content")
	ErrRootField          = errors.New("tlvwire: document must hold exactly one root field")
	ErrDepthExceeded      = errors.New("tlvwire: nesting depth exceeded")
)

// Header precedes every document.
type Header struct {
	Magic      uint32
	Version    uint16
	Flags      uint16
	PayloadLen uint32
}

// Limits constrains document decode/encode memory use.
type Limits struct {
	MaxPayloadBytes uint32
	// MaxDepth bounds how many objects and arrays may nest below the root.
	MaxDepth int
}

func DefaultLimits() Limits {
	return Limits{MaxPayloadBytes: 8 * 1024 * 1024, MaxDepth: 128}
}

// orDefault replaces zero fields with their DefaultLimits value.
func (l Limits) orDefault() Limits {
	def := DefaultLimits()
	if l.MaxPayloadBytes == 0 {
		l.MaxPayloadBytes = def.MaxPayloadBytes
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = def.MaxDepth
	}
	return l
}

func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderLen)
	binary.BigEndian.PutUint32(buf[0:4], h.Magic)
	binary.BigEndian.PutUint16(buf[4:6], h.Version)
	binary.BigEndian.PutUint16(buf[6:8], h.Flags)
	binary.BigEndian.PutUint32(buf[8:12], h.PayloadLen)
	return buf
}

func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderLen {
		return Header{}, ErrShortHeader
	}
	h := Header{
		Magic:      binary.BigEndian.Uint32(b[0:4]),
		Version:    binary.BigEndian.Uint16(b[4:6]),
		Flags:      binary.BigEndian.Uint16(b[6:8]),
		PayloadLen: binary.BigEndian.Uint32(b[8:12]),
	}
	if h.Magic != Magic {
		return Header{}, ErrInvalidMagic
	}
	if h.Version != Version {
		return Header{}, ErrUnsupportedVersion
	}
	return h, nil
}

// EncodeDocument frames root as a complete document.
func EncodeDocument(root Field, limits Limits) ([]byte, error) {
	return frameDocument(EncodeField(root), limits)
}

func frameDocument(payload []byte, limits Limits) ([]byte, error) {
	limits = limits.orDefault()
	if uint64(len(payload)) > uint64(limits.MaxPayloadBytes) {
		return nil, ErrPayloadTooLarge
	}
	head := EncodeHeader(Header{Magic: Magic, Version: Version, PayloadLen: uint32(len(payload))})
	return append(head, payload...), nil
}

// DecodeDocument validates the header and returns the root field.
func DecodeDocument(content []byte, limits Limits) (Field, error) {
	limits = limits.orDefault()
	h, err := DecodeHeader(content)
	if err != nil {
		return Field{}, err
	}
	if h.PayloadLen > limits.MaxPayloadBytes {
		return Field{}, ErrPayloadTooLarge
	}
	payload := content[HeaderLen:]
	if uint64(len(payload)) != uint64(h.PayloadLen) {
		return Field{}, fmt.Errorf("%w: header=%d actual=%d", ErrPayloadMismatch, h.PayloadLen, len(payload))
	}
	fields, err := DecodeFields(payload)
	if err != nil {
		return Field{}, err
	}
	if len(fields) != 1 {
		return Field{}, ErrRootField
	}
	return fields[0], nil
}
