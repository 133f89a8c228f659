// Package framer implements a lightweight, bidirectional message-framing
// protocol on top of any byte-stream transport, typically a UART between a
// microcontroller and a host.
//
// # Wire Format
//
// Every message travels as a single frame:
//
//	offset 0       start byte (configurable, default 0x00)
//	offset 1       message id
//	offset 2..L+1  payload, L bytes, fixed per message id
//	offset L+2     checksum, 8-bit wraparound sum of the payload bytes
//
// The payload length is not on the wire. Both ends must register the same
// id with the same length.
//
// # Registries
//
// Outbound and inbound messages are registered separately and their ids are
// independent namespaces. Each registry is bounded by a maximum number of
// messages and a maximum payload length fixed at construction. Registration
// order is the send order of [Framer.SendAll].
//
// # Decoding and Resynchronization
//
// [Framer.PollReceive] drains the bytes currently available on the transport
// and dispatches every validated frame. Recovery is local and silent:
//
//   - a byte other than the start byte, or an unknown id, flushes the input
//     buffer and ends the call; the next call starts from a clean point.
//   - a checksum mismatch drops that one frame and decoding continues.
//   - when a byte does not arrive within the inter-byte timeout, the partial
//     frame is dropped, the input is flushed and the call ends.
//
// The inter-byte wait is a spin-poll of the transport against an injected
// [Clock]. With [WithoutWait] all frame bytes are expected to be buffered
// already and a missing byte aborts the frame immediately.
//
// The 8-bit additive checksum only catches a fraction of multi-bit errors.
// It is kept as is for wire compatibility.
//
// # Concurrency
//
// A Framer is not goroutine-safe. Send, SendAll and PollReceive are meant to
// be called from one control loop.
package framer
