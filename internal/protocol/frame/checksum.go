package frame

// Checksum is the 8-bit Fletcher checksum over b, which for a frame is
// class, id, the two length bytes and the payload.
func Checksum(b []byte) (ckA, ckB uint8) {
	for _, c := range b {
		ckA += c
		ckB += ckA
	}
	return ckA, ckB
}

// Compute checksums a frame from its parts without assembling it.
func Compute(class, id uint8, length uint16, payload []byte) (uint8, uint8) {
	ckA, ckB := Checksum([]byte{class, id, byte(length), byte(length >> 8)})
	for _, c := range payload {
		ckA += c
		ckB += ckA
	}
	return ckA, ckB
}

// Validate reports whether b is one complete sync-prefixed frame whose
// length field and trailing checksum agree with its contents.
func Validate(b []byte) bool {
	if len(b) < Overhead || b[0] != Sync1 || b[1] != Sync2 {
		return false
	}
	n := int(b[4]) | int(b[5])<<8
	if len(b) != Overhead+n {
		return false
	}
	ckA, ckB := Checksum(b[2 : len(b)-2])
	return ckA == b[len(b)-2] && ckB == b[len(b)-1]
}
