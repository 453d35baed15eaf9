package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderTableCSV(t *testing.T) {
	var buf bytes.Buffer

	err := RenderTable(&buf, TableFormatCSV, []string{"A", "B"}, [][]string{{"1", "x"}, {"2", "y"}}, nil)
	require.NoError(t, err)
	require.Equal(t, "1,x\n2,y\n", buf.String())
}

func TestRenderTableJSON(t *testing.T) {
	var buf bytes.Buffer

	err := RenderTable(&buf, TableFormatJSON, nil, nil, map[string]string{"key": "value"})
	require.NoError(t, err)
	require.JSONEq(t, `{"key": "value"}`, buf.String())
}

func TestRenderTableYAML(t *testing.T) {
	var buf bytes.Buffer

	err := RenderTable(&buf, TableFormatYAML, nil, nil, map[string]string{"key": "value"})
	require.NoError(t, err)
	require.Equal(t, "key: value\n", buf.String())
}

func TestRenderTableInvalidFormat(t *testing.T) {
	var buf bytes.Buffer

	err := RenderTable(&buf, "xml", nil, nil, nil)
	require.Error(t, err)
}

func TestValidateFlagFormat(t *testing.T) {
	for _, format := range []string{"csv", "json", "table", "yaml", "compact"} {
		require.NoError(t, ValidateFlagFormat(format))
	}

	require.Error(t, ValidateFlagFormat(""))
	require.Error(t, ValidateFlagFormat("tab"))
}
