package frame

import "bytes"

// Protocol identifies the family a byte sequence belongs to.
type Protocol uint8

const (
	Unknown Protocol = iota
	UBX
	NMEA
	RTCM3
)

func (p Protocol) String() string {
	switch p {
	case UBX:
		return "ubx"
	case NMEA:
		return "nmea"
	case RTCM3:
		return "rtcm3"
	default:
		return "unknown"
	}
}

// ParseProtocol accepts the lower-case names String produces.
func ParseProtocol(s string) (Protocol, bool) {
	switch s {
	case "ubx":
		return UBX, true
	case "nmea":
		return NMEA, true
	case "rtcm3", "rtcm":
		return RTCM3, true
	default:
		return Unknown, false
	}
}

const (
	rtcmPreamble = 0xD3
	// MaxNMEALen bounds a sentence, proprietary ones included.
	MaxNMEALen = 1024
	// RTCM3 frame: preamble, 6 reserved bits, 10-bit length, body, CRC-24Q.
	rtcmHeaderLen = 3
	rtcmCRCLen    = 3
)

// Classify inspects the leading bytes of buf without consuming anything.
// A lone 0xB5 or 0xD3 classifies on the first byte alone.
func Classify(buf []byte) Protocol {
	if len(buf) == 0 {
		return Unknown
	}
	switch buf[0] {
	case Sync1:
		if len(buf) < 2 || buf[1] == Sync2 {
			return UBX
		}
	case '$', '!':
		return NMEA
	case rtcmPreamble:
		if len(buf) < 2 || buf[1]&0xFC == 0 {
			return RTCM3
		}
	}
	return Unknown
}

// ExtractNMEA delimits one sentence through its terminating LF. A byte
// outside printable ASCII before the LF rejects the candidate.
func ExtractNMEA(buf []byte) ([]byte, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrIncomplete
	}
	if buf[0] != '$' && buf[0] != '!' {
		return nil, 0, ErrNotThisProtocol
	}
	for i := 1; i < len(buf) && i < MaxNMEALen; i++ {
		switch c := buf[i]; {
		case c == '\n':
			return bytes.Clone(buf[:i+1]), i + 1, nil
		case c == '\r':
		case c < 0x20 || c > 0x7E:
			return nil, 0, ErrNotThisProtocol
		}
	}
	if len(buf) >= MaxNMEALen {
		return nil, 0, ErrNotThisProtocol
	}
	return nil, 0, ErrIncomplete
}

// ExtractRTCM3 delimits one RTCM3 frame and checks its CRC-24Q. The body is
// not interpreted.
func ExtractRTCM3(buf []byte) ([]byte, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrIncomplete
	}
	if buf[0] != rtcmPreamble {
		return nil, 0, ErrNotThisProtocol
	}
	if len(buf) < rtcmHeaderLen {
		if len(buf) == 2 && buf[1]&0xFC != 0 {
			return nil, 0, ErrNotThisProtocol
		}
		return nil, 0, ErrIncomplete
	}
	if buf[1]&0xFC != 0 {
		return nil, 0, ErrNotThisProtocol
	}
	n := int(buf[1]&0x03)<<8 | int(buf[2])
	total := rtcmHeaderLen + n + rtcmCRCLen
	if len(buf) < total {
		return nil, 0, ErrIncomplete
	}
	want := uint32(buf[total-3])<<16 | uint32(buf[total-2])<<8 | uint32(buf[total-1])
	if crc24q(buf[:total-rtcmCRCLen]) != want {
		return nil, 0, ErrNotThisProtocol
	}
	return bytes.Clone(buf[:total]), total, nil
}

var crc24qTable = func() [256]uint32 {
	var t [256]uint32
	for i := range t {
		crc := uint32(i) << 16
		for b := 0; b < 8; b++ {
			crc <<= 1
			if crc&0x1000000 != 0 {
				crc ^= 0x1864CFB
			}
		}
		t[i] = crc & 0xFFFFFF
	}
	return t
}()

func crc24q(b []byte) uint32 {
	var crc uint32
	for _, c := range b {
		crc = (crc<<8)&0xFFFFFF ^ crc24qTable[byte(crc>>16)^c]
	}
	return crc
}
