package config

import (
	"reflect"
	"strings"
)

// yamlName maps a Params field name to its yaml key for error messages.
func yamlName(field string) string {
	f, ok := reflect.TypeOf(Params{}).FieldByName(field)
	if !ok {
		return field
	}
	name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	if name == "" {
		return field
	}
	return name
}
