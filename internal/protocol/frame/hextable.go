package frame

import (
	"fmt"
	"strings"
)

// HexTable renders b as rows of cols two-byte groups, each row prefixed with
// its decimal offset and followed by the printable bytes ('.' otherwise).
// cols below one is treated as eight.
func HexTable(b []byte, cols int) string {
	if cols < 1 {
		cols = 8
	}
	rowLen := cols * 2
	width := cols*5 - 1
	var sb strings.Builder
	for off := 0; off < len(b); off += rowLen {
		row := b[off:min(off+rowLen, len(b))]
		var hex strings.Builder
		for i := 0; i < len(row); i += 2 {
			if i > 0 {
				hex.WriteByte(' ')
			}
			fmt.Fprintf(&hex, "%x", row[i:min(i+2, len(row))])
		}
		fmt.Fprintf(&sb, "%03d: %-*s  | %s |\n", off, width, hex.String(), printable(row))
	}
	return sb.String()
}

func printable(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c < 0x20 || c > 0x7E {
			c = '.'
		}
		out[i] = c
	}
	return string(out)
}
