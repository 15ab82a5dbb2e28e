package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/glorpus-work/pkginstall/pkg/errutils"
)

// SetValue sets a configuration value by key.
// Supported keys:
//   - install_dir, addon_dir: string - Game and add-on folders
//   - separate_update_folder: bool - Install patches next to the game in <TITLE_ID>-patch
//   - scan_depth, max_concurrent: int
//   - output_format: string - text or json
//   - log_level: string - debug, info, warn or error
//   - hooks.pre_install, hooks.post_install: string - Tengo script paths
//
// The updated configuration is validated; on failure it is left unchanged.
func (c *Config) SetValue(key, value string) error {
	updated := *c
	s := &updated.Settings

	switch key {
	case "install_dir":
		s.InstallDir = value
	case "addon_dir":
		s.AddonDir = value
	case "separate_update_folder":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w for %s: %s", errutils.ErrInvalidBoolValue, key, value)
		}
		s.SeparateUpdateFolder = boolVal
	case "scan_depth", "max_concurrent":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w for %s: %s", errutils.ErrInvalidIntValue, key, value)
		}
		if key == "scan_depth" {
			s.ScanDepth = intVal
		} else {
			s.MaxConcurrent = intVal
		}
	case "output_format":
		s.OutputFormat = value
	case "log_level":
		s.LogLevel = value
	case "hooks.pre_install":
		s.Hooks.PreInstall = value
	case "hooks.post_install":
		s.Hooks.PostInstall = value
	default:
		return errutils.ErrUnknownConfigKeyWithName(key)
	}

	if err := updated.Validate(); err != nil {
		return err
	}
	*c = updated
	return nil
}

// GetValue returns the value of a configuration key as a string.
func (c *Config) GetValue(key string) (string, error) {
	value, ok := c.ToMap()[key]
	if !ok {
		return "", errutils.ErrUnknownConfigKeyWithName(key)
	}
	return value, nil
}

// ToMap flattens the settings into key/value strings. Nested sections use
// dotted keys. This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)
	flatten(result, "", reflect.ValueOf(c.Settings))
	return result
}

func flatten(result map[string]string, prefix string, value reflect.Value) {
	valueType := value.Type()
	for i := 0; i < value.NumField(); i++ {
		field := valueType.Field(i)
		yamlTag := field.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		// Handle yaml tags with options (e.g., "install_dir,omitempty")
		key := prefix + strings.Split(yamlTag, ",")[0]

		fieldValue := value.Field(i)
		switch fieldValue.Kind() {
		case reflect.Struct:
			flatten(result, key+".", fieldValue)
		case reflect.Bool:
			result[key] = strconv.FormatBool(fieldValue.Bool())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			result[key] = strconv.FormatInt(fieldValue.Int(), 10)
		case reflect.String:
			result[key] = fieldValue.String()
		default:
			result[key] = fmt.Sprintf("%v", fieldValue.Interface())
		}
	}
}
