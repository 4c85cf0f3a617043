package tdom_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/tdom"
)

type goldenFile struct {
	Cases []goldenCase `yaml:"cases"`
}

type goldenCase struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

func TestParseGoldenCases(t *testing.T) {
	raw, err := os.ReadFile("testdata/parse_cases.yaml")
	require.NoError(t, err)

	var file goldenFile
	require.NoError(t, yaml.Unmarshal(raw, &file))
	require.NotEmpty(t, file.Cases)

	for _, tc := range file.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			node, err := tdom.Parse(tc.Input)
			require.NoError(t, err)
			assert.Equal(t, tc.Output, node.String())
		})
	}
}
