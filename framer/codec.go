package framer

import "reflect"

// Encoder produces the payload of an outbound message.
//
// Encode must fill payload, whose length equals the registered payload
// length. The buffer is reused between sends and is zeroed before each call.
type Encoder interface {
	Encode(payload []byte) error
}

// Decoder consumes the payload of a validated inbound frame.
//
// payload is only valid for the duration of the call; copy it to retain it.
type Decoder interface {
	Decode(payload []byte) error
}

// EncoderFunc is func type of Encoder.
type EncoderFunc func(payload []byte) error

// Encode implements Encoder.
func (f EncoderFunc) Encode(payload []byte) error {
	return f(payload)
}

// DecoderFunc is func type of Decoder.
type DecoderFunc func(payload []byte) error

// Decode implements Decoder.
func (f DecoderFunc) Decode(payload []byte) error {
	return f(payload)
}

// isNilCodec reports whether c is nil, including a typed nil such as a nil
// pointer or func stored in the interface.
func isNilCodec(c any) bool {
	if c == nil {
		return true
	}

	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Interface, reflect.Slice:
		return v.IsNil()
	}

	return false
}
