package cssenhance

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	engine "github.com/yacobolo/cssenhance"
)

// LoadTokenFile reads a design token registry from a YAML file:
//
//	version: "2024.1"
//	tokens:
//	  colors:
//	    primary: "#3b82f6"
//	  spacing:
//	    sm: "8px"
//
// It returns the token set and the registry version.
func LoadTokenFile(path string) (engine.TokenSet, string, error) {
	kt := koanf.New(".")
	if err := kt.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, "", fmt.Errorf("loading token file %s: %w", path, err)
	}

	version := kt.String("version")
	if version == "" {
		return nil, "", fmt.Errorf("token file %s: missing version", path)
	}

	raw, ok := kt.Get("tokens").(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil, "", fmt.Errorf("token file %s: missing tokens section", path)
	}

	ts := engine.TokenSet{}
	for category, entries := range raw {
		values, ok := entries.(map[string]interface{})
		if !ok {
			return nil, "", fmt.Errorf("token file %s: category %q is not a map", path, category)
		}
		m := make(map[string]string, len(values))
		for name, value := range values {
			m[name] = fmt.Sprintf("%v", value)
		}
		ts[category] = m
	}

	return ts, version, nil
}
