package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "dump":
		return dumpTemplate, nil
	case "replay":
		return replayTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const dumpTemplate = `source = "/dev/ttyACM0"
mode = "get"
strict = false
read_size = 4096
max_payload = 65535

include = ["NAV-*", "MON-*", "ACK-*"]
exclude = ["NAV-EOE"]

surface_nmea = false
surface_rtcm = false

capture = "local/session.ubxc"
capture_codec = "lz4"

metrics_addr = "127.0.0.1:9464"
json = false
`

const replayTemplate = `source = "local/session.ubxc"
replay = true
mode = "get"
strict = true

include = ["*"]
exclude = []

surface_nmea = true
surface_rtcm = true
`
