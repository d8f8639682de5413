package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "json":
		return jsonTemplate, nil
	case "tlv":
		return tlvTemplate, nil
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

const jsonTemplate = `content_type = "application/json"
output_content_type = "application/json"
discriminator_key = "@odata.type"
indent = true
log_level = "info"
`

const tlvTemplate = `content_type = "application/json"
output_content_type = "application/vnd.modelwire.tlv"
discriminator_key = "@odata.type"
max_payload_bytes = 8388608
max_depth = 128
log_level = "info"
`
