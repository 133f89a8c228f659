// Package transport provides byte-level links satisfying framer.Transport.
//
//   - Buffer is an in-memory transport driven by a single goroutine: feed it
//     inbound bytes, inspect what was written. Suited to fully synchronous
//     setups and tests.
//   - NewPipe returns two connected in-memory ends; each end may be driven
//     from its own goroutine.
//   - Stream adapts any io.ReadWriter (a net.Conn, an opened serial device)
//     by reading it from a background goroutine, so Available never blocks.
package transport
