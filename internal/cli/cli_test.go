package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/action-picker/internal/app"
	"github.com/atomicstack/action-picker/internal/config"
)

const catalogYAML = `actions:
  - category: Math/Add
    text: Add
  - category: Math/Subtract
    text: Subtract
    contexts: [vim]
  - category: Scene/AddChild
    text: Add Child
`

type fixture struct {
	dir     string
	catalog string
	environ []string
	ran     *app.Config
	started bool
	runErr  error
}

type cobraRoot struct {
	cmd *cobra.Command
	out *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	catalog := filepath.Join(dir, "actions.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte(catalogYAML), 0o600))
	return &fixture{
		dir:     dir,
		catalog: catalog,
		environ: []string{
			"HOME=" + dir,
			"XDG_CONFIG_HOME=" + filepath.Join(dir, "config"),
			"ACTION_PICKER_CATALOG=" + catalog,
			"ACTION_PICKER_DB=" + filepath.Join(dir, "data", "settings.db"),
			"ACTION_PICKER_LOG_FILE=" + filepath.Join(dir, "picker.log"),
		},
	}
}

func (f *fixture) root(args ...string) *cobraRoot {
	if args == nil {
		args = []string{}
	}
	cmd := NewRootCommand(Options{
		Run: func(cfg app.Config) error {
			f.ran = &cfg
			return f.runErr
		},
		Environ: func() []string { return f.environ },
		OnStart: func(config.Config) { f.started = true },
	})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	return &cobraRoot{cmd: cmd, out: out}
}

func (f *fixture) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	r := f.root(args...)
	err := r.cmd.Execute()
	return r.out.String(), err
}

func TestRootRunsPickerWithResolvedConfig(t *testing.T) {
	f := newFixture(t)
	_, err := f.execute(t, "--context", "vim", "--width", "80")
	require.NoError(t, err)
	require.NotNil(t, f.ran)
	assert.True(t, f.started)
	assert.Equal(t, "vim", f.ran.Context)
	assert.Equal(t, 80, f.ran.Width)
	assert.Equal(t, f.catalog, f.ran.CatalogPath)
}

func TestRootPropagatesRunError(t *testing.T) {
	f := newFixture(t)
	f.runErr = errors.New("handler failed")
	r := f.root()
	var stderr bytes.Buffer
	assert.Equal(t, 1, run(r.cmd, &stderr))
	assert.Contains(t, stderr.String(), "Error: handler failed")
}

func TestConfigurationErrorsExitTwo(t *testing.T) {
	f := newFixture(t)
	var stderr bytes.Buffer
	assert.Equal(t, 2, run(f.root("--no-such-flag").cmd, &stderr))
	assert.Contains(t, stderr.String(), "Configuration error")

	stderr.Reset()
	assert.Equal(t, 2, run(f.root("--width", "-1").cmd, &stderr))
	assert.Nil(t, f.ran)
}

func TestFavoritesRoundTrip(t *testing.T) {
	f := newFixture(t)

	out, err := f.execute(t, "favorites", "add", "Math/Add", "Scene/AddChild")
	require.NoError(t, err)
	assert.Equal(t, "pinned Math/Add\npinned Scene/AddChild\n", out)

	out, err = f.execute(t, "favorites", "add", "Math/Add")
	require.NoError(t, err)
	assert.Equal(t, "Math/Add already pinned\n", out)

	out, err = f.execute(t, "favorites", "list")
	require.NoError(t, err)
	assert.Equal(t, "Math/Add\nScene/AddChild\n", out)

	out, err = f.execute(t, "favorites", "rm", "Math/Add", "Math/Subtract")
	require.NoError(t, err)
	assert.Equal(t, "unpinned Math/Add\nMath/Subtract was not pinned\n", out)

	out, err = f.execute(t, "favorites", "list")
	require.NoError(t, err)
	assert.Equal(t, "Scene/AddChild\n", out)
}

func TestFavoritesAddChecksCatalog(t *testing.T) {
	f := newFixture(t)
	_, err := f.execute(t, "favorites", "add", "Flow/Wait")
	assert.ErrorContains(t, err, `unknown action "Flow/Wait"`)

	out, err := f.execute(t, "favorites", "add", "--force", "Flow/Wait")
	require.NoError(t, err)
	assert.Equal(t, "pinned Flow/Wait\n", out)
}

func TestSettingsListSetAndReset(t *testing.T) {
	f := newFixture(t)

	out, err := f.execute(t, "settings", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "KEY"))
	assert.Contains(t, out, "ui/show_tooltips")
	assert.Contains(t, out, "show the highlighted action tooltip")

	out, err = f.execute(t, "settings", "set", "ui/show_tooltips", "false")
	require.NoError(t, err)
	assert.Equal(t, "picker/ui/show_tooltips = false\n", out)

	out, err = f.execute(t, "settings", "list")
	require.NoError(t, err)
	assert.Regexp(t, `ui/show_tooltips\s+false`, out)

	_, err = f.execute(t, "settings", "reset", "ui/show_tooltips")
	require.NoError(t, err)
	out, err = f.execute(t, "settings", "list")
	require.NoError(t, err)
	assert.Regexp(t, `ui/show_tooltips\s+true`, out)
}

func TestSettingsSetRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.execute(t, "settings", "set", "ui/nope", "true")
	assert.ErrorContains(t, err, "unknown setting")

	_, err = f.execute(t, "settings", "set", "ui/show_tooltips", "maybe")
	assert.ErrorContains(t, err, "expects true or false")

	_, err = f.execute(t, "settings", "set", "settings/action_favorites", "[]")
	assert.ErrorContains(t, err, "cannot be set from the command line")
}

func TestCatalogCheckPrintsTree(t *testing.T) {
	f := newFixture(t)
	_, err := f.execute(t, "favorites", "add", "Math/Add")
	require.NoError(t, err)

	out, err := f.execute(t, "catalog", "check")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"3 actions, 3 distinct categories",
		"Favorites/",
		"  - <Math> Add",
		"Math/",
		"  - Add *",
		"  - Subtract",
		"Scene/",
		"  - Add Child",
		"",
	}, "\n"), out)
}

func TestCatalogCheckFilters(t *testing.T) {
	f := newFixture(t)
	out, err := f.execute(t, "catalog", "check", "--filter", "add")
	require.NoError(t, err)
	assert.Contains(t, out, "- Add Child")
	assert.NotContains(t, out, "Subtract")

	out, err = f.execute(t, "--context", "vim", "catalog", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "- Subtract")
	assert.NotContains(t, out, "Add Child")
}

func TestCatalogCheckReportsParseErrors(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.catalog, []byte("actions:\n  - text: x\n"), 0o600))
	_, err := f.execute(t, "catalog", "check")
	assert.ErrorContains(t, err, "category is required")
}
