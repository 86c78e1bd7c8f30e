package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI runs the CLI against a fresh config directory.
func runCLI(t *testing.T, dir, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"--config-dir", dir, "--quiet"}, args...)
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, t.TempDir(), "", "version")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "ottobrew "+version)
}

func TestCheckBuiltinData(t *testing.T) {
	code, out, _ := runCLI(t, t.TempDir(), "", "check")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "14 grinders")
	assert.Contains(t, out, "42 recipes")
}

func TestCheckBrokenTree(t *testing.T) {
	data := t.TempDir()
	tree := `nodes:
- id: root
  question: How does it taste?
  answers:
  - label: Sour
    next: sour
- id: sour
  question: Still sour?
  answers:
  - label: Yes
    next: root
`
	require.NoError(t, os.WriteFile(filepath.Join(data, "troubleshooting.yaml"), []byte(tree), 0o644))

	code, out, _ := runCLI(t, t.TempDir(), "", "--data-dir", data, "check")
	assert.Equal(t, exitSysError, code)
	assert.Contains(t, out, "cycle")

	code, _, errOut := runCLI(t, t.TempDir(), "", "--data-dir", data, "troubleshoot", "--plain")
	assert.Equal(t, exitSysError, code)
	assert.Contains(t, errOut, "error:")
}

func TestRecipeJSON(t *testing.T) {
	code, out, _ := runCLI(t, t.TempDir(), "",
		"recipe", "--method", "V60", "--roast", "light", "--grinder", "commandante-c40-red", "--json")
	require.Equal(t, exitSuccess, code)

	var got struct {
		Match        string `json:"match"`
		GrindSetting *struct {
			GrinderID string `json:"grinderId"`
		} `json:"grindSetting"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "exact", got.Match)
	require.NotNil(t, got.GrindSetting)
}

func TestRecipeFallbackHasNoGrindSetting(t *testing.T) {
	code, out, _ := runCLI(t, t.TempDir(), "",
		"recipe", "--method", "v60", "--roast", "light", "--grinder", "fellow-ode-gen2", "--json")
	require.Equal(t, exitSuccess, code)

	var got struct {
		Match        string          `json:"match"`
		GrindSetting json.RawMessage `json:"grindSetting"`
		Recipe       *struct {
			BrewMethod string `json:"brewMethod"`
		} `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "fallback", got.Match)
	assert.Empty(t, got.GrindSetting)
	require.NotNil(t, got.Recipe)
	assert.Equal(t, "v60", got.Recipe.BrewMethod)
}

func TestRecipeUserErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown method", []string{"recipe", "--method", "siphon", "--roast", "light", "--grinder", "fellow-ode-gen2"}},
		{"unknown roast", []string{"recipe", "--method", "v60", "--roast", "blonde", "--grinder", "fellow-ode-gen2"}},
		{"unknown grinder", []string{"recipe", "--method", "v60", "--roast", "light", "--grinder", "nope"}},
		{"missing flag", []string{"recipe", "--method", "v60"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, t.TempDir(), "", tt.args...)
			assert.Equal(t, exitUserError, code)
			assert.NotEmpty(t, errOut)
		})
	}
}

func TestRecipeNoMatch(t *testing.T) {
	data := t.TempDir()
	recipes := `recipes:
- brew_method: v60
  roast_level: light
  grind_settings:
  - grinder_id: commandante-c40-std
    value: 22-25
    unit: clicks
  ratio: 1:16
  temperature: 96°C
  time: 3:00
  steps:
  - Pour
`
	require.NoError(t, os.WriteFile(filepath.Join(data, "recipes.yaml"), []byte(recipes), 0o644))

	code, out, _ := runCLI(t, t.TempDir(), "", "--data-dir", data,
		"recipe", "--method", "espresso", "--roast", "dark", "--grinder", "commandante-c40-std", "--json")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, out, `"match": "none"`)
}

func TestGrindersJSON(t *testing.T) {
	code, out, _ := runCLI(t, t.TempDir(), "", "grinders", "--type", "manual", "--json")
	require.Equal(t, exitSuccess, code)

	var got []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 6)
	for _, g := range got {
		assert.Equal(t, "manual", g.Type)
	}
}

func TestGrindersForRecipe(t *testing.T) {
	code, out, _ := runCLI(t, t.TempDir(), "", "grinders", "--method", "v60", "--roast", "light", "--json")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "commandante-c40-std")
	assert.Contains(t, out, "commandante-c40-red")
	assert.NotContains(t, out, "fellow-ode-gen2")
}

func TestGrindersBadType(t *testing.T) {
	code, _, _ := runCLI(t, t.TempDir(), "", "grinders", "--type", "hand")
	assert.Equal(t, exitUserError, code)
}

func TestGuideResumesAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	// V60, light, then quit at the grinder step.
	code, out, _ := runCLI(t, dir, "2\n1\nq\n", "guide", "--plain")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Step 3/3")

	code, out, _ = runCLI(t, dir, "", "session", "show", "--json")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, `"brewMethod":"v60"`)
	assert.Contains(t, out, `"currentStep":2`)

	// The next run resumes at the grinder step.
	code, out, _ = runCLI(t, dir, "1\n3\n", "guide", "--plain")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Resuming session default")
	assert.Contains(t, out, "22-25")

	code, _, _ = runCLI(t, dir, "", "session", "reset")
	require.Equal(t, exitSuccess, code)

	code, _, _ = runCLI(t, dir, "", "session", "show")
	assert.Equal(t, exitUserError, code)
}

func TestTroubleshootPlain(t *testing.T) {
	code, out, _ := runCLI(t, t.TempDir(), "1\n1\nreset\nquit\n", "troubleshoot", "--plain")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "How does your coffee taste?")
	assert.Contains(t, out, "Grind 2-3 clicks finer")
	assert.Contains(t, out, "adjust:")
}

func TestLogFileFallsBackToStderr(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	var out, errOut bytes.Buffer
	logFile := filepath.Join(blocker, "logs", "ottobrew.log")
	code := run([]string{"--config-dir", filepath.Join(dir, "cfg"), "--log-file", logFile, "check"},
		strings.NewReader(""), &out, &errOut)

	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, errOut.String(), "could not open log file "+logFile)
	assert.Contains(t, out.String(), "OK:")
}

func TestOpenLogFileCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ottobrew.log")
	f, err := openLogFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestGrindersBrands(t *testing.T) {
	code, out, _ := runCLI(t, t.TempDir(), "", "grinders", "--brands", "--json")
	require.Equal(t, exitSuccess, code)

	var brands []string
	require.NoError(t, json.Unmarshal([]byte(out), &brands))
	assert.Len(t, brands, 7)
	assert.Equal(t, "Timemore", brands[0])

	code, out, _ = runCLI(t, t.TempDir(), "", "grinders", "--brands")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Commandante")
}
