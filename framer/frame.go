package framer

// FrameOverhead is the number of non-payload bytes in a frame:
// start byte, message id and checksum.
const FrameOverhead = 3

// Checksum returns the 8-bit wraparound sum of payload.
func Checksum(payload []byte) byte {
	var sum byte
	for _, v := range payload {
		sum += v
	}

	return sum
}

// AppendFrame appends the wire form of one frame to dst and returns the
// extended slice:
//
//	[start][id][payload...][Checksum(payload)]
func AppendFrame(dst []byte, start, id byte, payload []byte) []byte {
	dst = append(dst, start, id)
	dst = append(dst, payload...)

	return append(dst, Checksum(payload))
}
