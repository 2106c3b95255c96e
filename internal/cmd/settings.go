package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/renato0307/pomar/internal/config"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options" default:"1"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsPath()
	example := config.GetSettingsExample()

	if s.Format == formatJSON {
		return printJSON(map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		})
	}

	// Table format
	fmt.Fprintf(stdout, "Settings file: %s\n\n", settingsFile)
	fmt.Fprintln(stdout, "Example settings (settings.yaml or settings.json):")
	fmt.Fprintln(stdout)

	w := newTabWriter()
	for _, key := range slices.Sorted(maps.Keys(example)) {
		var valueStr string
		switch v := example[key].(type) {
		case string:
			valueStr = v
		case bool:
			valueStr = fmt.Sprintf("%t", v)
		case int:
			valueStr = fmt.Sprintf("%d", v)
		default:
			data, _ := json.Marshal(v)
			valueStr = string(data)
		}

		fmt.Fprintf(w, "%s\t%s\n", key, valueStr)
	}
	w.Flush()

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Create or edit this file to configure pomar.")
	fmt.Fprintln(stdout, "All settings are optional and have sensible defaults.")

	return nil
}
