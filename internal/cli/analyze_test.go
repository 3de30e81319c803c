package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCmd_Safe(t *testing.T) {
	out, err := runCommand(t, nil, "analyze", "https://www.google.com")

	require.NoError(t, err)
	assert.Contains(t, out, "URL:     https://www.google.com")
	assert.Contains(t, out, "Score:   0")
	assert.Contains(t, out, "Verdict: safe")
	assert.NotContains(t, out, "Reasons:")
}

func TestAnalyzeCmd_SuspiciousExitsOne(t *testing.T) {
	out, err := runCommand(t, nil, "analyze", "http://secure-login.xyz")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code())
	assert.Empty(t, exitErr.Message(), "verdict exit codes should not print an extra error line")

	assert.Contains(t, out, "Verdict: suspicious")
	assert.Contains(t, out, "Reasons:")
}

func TestAnalyzeCmd_FraudulentExitsTwo(t *testing.T) {
	out, err := runCommand(t, nil, "analyze", "http://paypa1-secure-login.tk/verify?account=update")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code())

	assert.Contains(t, out, "Verdict: fraudulent")
}

func TestAnalyzeCmd_JSON(t *testing.T) {
	out, err := runCommand(t, nil, "analyze", "--json", "http://secure-login.xyz")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code())

	var got struct {
		URL     string   `json:"url"`
		Score   int      `json:"score"`
		Verdict string   `json:"verdict"`
		Reasons []string `json:"reasons"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "http://secure-login.xyz", got.URL)
	assert.Equal(t, 7, got.Score)
	assert.Equal(t, "suspicious", got.Verdict)
	assert.Len(t, got.Reasons, 3)
}

func TestAnalyzeCmd_ConfigLists(t *testing.T) {
	cfgYAML := "heuristics:\n  fraud_keywords:\n    - refund\n"
	path := filepath.Join(t.TempDir(), "urlvet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfgYAML), 0o600))

	// "refund" is not a built-in keyword, so a hit proves the config loaded
	out, err := runCommand(t, nil, "analyze", "--config", path, "http://example.com/refund")

	require.NoError(t, err)
	assert.Contains(t, out, "Score:   2")
	assert.Contains(t, out, `fraud keyword "refund"`)
}

func TestAnalyzeCmd_MissingConfig(t *testing.T) {
	_, err := runCommand(t, nil, "analyze", "--config", filepath.Join(t.TempDir(), "absent.yaml"), "https://www.google.com")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
