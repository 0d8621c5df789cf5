package display

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Props []string `json:"props" yaml:"props" toml:"props"`
}

func TestMarshal(t *testing.T) {
	t.Setenv(OutputEnv, "")
	v := sample{Name: "Facility", Props: []string{"id", "name"}}

	data, err := Marshal(v, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"Facility\",\n  \"props\": [\n    \"id\",\n    \"name\"\n  ]\n}", string(data))

	data, err = Marshal(v, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "name: Facility\nprops:\n    - id\n    - name\n", string(data))

	data, err = Marshal(v, FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name = 'Facility'")

	_, err = Marshal(v, "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestMarshalJSONCompactInCI(t *testing.T) {
	t.Setenv(OutputEnv, FormatJSON)
	data, err := MarshalJSON(sample{Name: "User"})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"User","props":null}`, string(data))
}

func TestOutput(t *testing.T) {
	t.Setenv(OutputEnv, "")
	var buf bytes.Buffer
	require.NoError(t, Output(&buf, map[string]int{"count": 2}, FormatJSON))
	assert.Equal(t, "{\n  \"count\": 2\n}\n", buf.String())
}

func TestShouldOutputJSON(t *testing.T) {
	t.Setenv(OutputEnv, "")

	root := &cobra.Command{Use: "entmirror"}
	root.PersistentFlags().Bool("json", false, "")
	cmd := &cobra.Command{Use: "version"}
	root.AddCommand(cmd)

	assert.False(t, ShouldOutputJSON(cmd))

	require.NoError(t, root.PersistentFlags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(cmd))

	t.Setenv(OutputEnv, FormatJSON)
	assert.True(t, ShouldOutputJSON(nil))
}
