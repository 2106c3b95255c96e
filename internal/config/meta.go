package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings
// This automatically stays in sync when new fields are added to Settings
func GetSettingsExample() map[string]any {
	return exampleFor(reflect.TypeOf(Settings{}))
}

func exampleFor(t reflect.Type) map[string]any {
	example := make(map[string]any)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		// Extract the JSON field name (before comma)
		jsonName := strings.Split(jsonTag, ",")[0]
		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}
	return example
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		return exampleFor(t)
	case reflect.Bool:
		return fieldName == "sound"
	case reflect.Int:
		switch fieldName {
		case "work_minutes":
			return 25
		case "short_break_minutes":
			return 5
		case "long_break_minutes":
			return 15
		case "sessions_per_long_break":
			return 4
		case "max_level":
			return 100
		case "max_log_files":
			return DefaultMaxLogFiles
		case "xp_per_level", "weekly_goal":
			return 100
		case "work_session":
			return 25
		case "task":
			return 10
		case "streak_milestone":
			return 50
		case "level_up":
			return 20
		case "tasks":
			return 15
		case "sessions":
			return 20
		default:
			return 0
		}
	case reflect.String:
		switch fieldName {
		case "time_zone":
			return "Europe/Lisbon"
		case "user":
			return "me"
		case "week_starts_on":
			return "monday"
		default:
			return "example"
		}
	case reflect.Slice:
		if fieldName == "streak_milestones" {
			return []int{3, 7, 14, 30}
		}
		return []any{}
	}

	return nil
}
