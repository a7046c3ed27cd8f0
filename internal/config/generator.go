// generator.go renders config files for dirmirror init.

package config

import (
	"bytes"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// fieldComments are written above the matching key.
var fieldComments = map[string]string{
	"source":     "Folder to mirror from. A leading ~ is expanded.",
	"replica":    "Folder kept identical to source. Anything else in it is deleted.",
	"log_folder": "One log file per run is created here.",
	"interval":   "Seconds between two synchronization cycles.",
}

// GenerateConfig returns the TOML content for cfg, with the schema header and
// a short comment above each key.
func GenerateConfig(cfg Config) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return SchemaComment + insertComments(buf.String()), nil
}

// insertComments puts each field comment on the line before its key.
func insertComments(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines)*2)

	for _, line := range lines {
		key, _, found := strings.Cut(line, "=")
		if found {
			if comment, ok := fieldComments[strings.TrimSpace(key)]; ok {
				result = append(result, "# "+comment)
			}
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}
