package cssenhance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/yacobolo/cssenhance"
)

func writeTokenFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "design-tokens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTokenFile(t *testing.T) {
	path := writeTokenFile(t, `version: "2024.1"
tokens:
  colors:
    color-primary: "#1f2937"
    color-surface: "#ffffff"
  spacing:
    spacing-md: 0.875rem
  radii:
    radius-md: 10px
`)

	ts, version, err := LoadTokenFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2024.1", version)
	assert.Equal(t, "#1f2937", ts["colors"]["color-primary"])
	assert.Equal(t, "0.875rem", ts["spacing"]["spacing-md"])
	assert.Equal(t, "10px", ts["radii"]["radius-md"])

	// The loaded set feeds straight into the engine registry.
	reg, err := engine.LoadRegistry(ts, version)
	require.NoError(t, err)
	assert.Equal(t, "2024.1", reg.Version)
}

func TestLoadTokenFile_NumericVersionCoerced(t *testing.T) {
	path := writeTokenFile(t, `version: 1
tokens:
  colors:
    color-primary: "#1f2937"
`)
	_, version, err := LoadTokenFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1", version)
}

func TestLoadTokenFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "missing version",
			content: "tokens:\n  colors:\n    color-primary: \"#1f2937\"\n",
			errText: "missing version",
		},
		{
			name:    "missing tokens",
			content: "version: \"1\"\n",
			errText: "missing tokens section",
		},
		{
			name:    "category not a map",
			content: "version: \"1\"\ntokens:\n  colors: just-a-string\n",
			errText: "not a map",
		},
		{
			name:    "invalid yaml",
			content: "version: [unclosed\n",
			errText: "loading token file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTokenFile(t, tt.content)
			_, _, err := LoadTokenFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadTokenFile_NotFound(t *testing.T) {
	_, _, err := LoadTokenFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
