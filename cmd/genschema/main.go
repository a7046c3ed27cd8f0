// Command genschema prints the JSON Schema of .dirmirror.toml, or writes it
// to the path given as first argument.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/bolasblack/dirmirror/internal/config"
)

func main() {
	r := jsonschema.Reflector{
		// Property names follow the toml tags of the config file
		FieldNameTag: "toml",
		// Every key is optional and falls back to its default
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&config.Config{})
	schema.Title = "Dirmirror Configuration"
	schema.Description = "Configuration schema for .dirmirror.toml"
	schema.ID = ""

	defaults := config.DefaultConfig()
	if props := schema.Definitions["Config"]; props != nil {
		setDefault(props, "source", defaults.Source)
		setDefault(props, "replica", defaults.Replica)
		setDefault(props, "log_folder", defaults.LogFolder)
		setDefault(props, "interval", defaults.Interval)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		if err := os.WriteFile(os.Args[1], data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(string(data))
	}
}

func setDefault(s *jsonschema.Schema, key string, value any) {
	if prop, ok := s.Properties.Get(key); ok {
		prop.Default = value
	}
}
