package tachywind

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/tachywind/internal/logging"
	"github.com/yacobolo/tachywind/internal/walk"
)

const testStylesheet = `.o-50 { opacity: .5; }
.pa3 {
  padding: 1rem;
}
.fw6 { font-weight: 600; }
.dn { display: none; }
.link:hover { color: red; }
`

const testAppJS = `const cls = "o-50 pa3 fw6"; // pa3 in a comment
const msg = "no-a-tachyon-class ignore-me o-50";
`

var testMappings = map[string]string{
	"o-50": "opacity-50",
	"pa3":  "p-4",
	"fw6":  "font-semibold",
	"dn":   "hidden",
}

// testProject lays out a small project and returns its root.
func testProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"css/tachyons.css":        testStylesheet,
		"src/app.js":              testAppJS,
		"src/views/index.html":    `<div class="dn">hi</div>` + "\n",
		"src/plain.ts":            "const x = 1;\n",
		"src/node_modules/lib.js": `const a = "pa3";` + "\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func parseConfig(root string) ParseConfig {
	return ParseConfig{
		Stylesheets: []string{filepath.Join(root, "css", "*.css")},
		SourceDir:   filepath.Join(root, "src"),
		IgnoreDirs:  walk.DefaultIgnoreDirs,
		Extensions:  walk.DefaultExtensions,
		Jobs:        2,
	}
}

func openTestRegistry(t *testing.T) Registry {
	t.Helper()
	reg, err := OpenRegistry(MemoryRegistry)
	require.NoError(t, err)
	t.Cleanup(func() { reg.Close() })
	return reg
}

func mapAll(t *testing.T, reg Registry) {
	t.Helper()
	for name, repl := range testMappings {
		repl := repl
		require.NoError(t, reg.SetMapping(context.Background(), name, &repl))
	}
}

// quietContext carries a logger writing to buf.
func quietContext(buf *bytes.Buffer) context.Context {
	return logging.WithLogger(context.Background(), logging.NewWithWriter(buf, "warn"))
}

func TestParse(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)
	ctx := context.Background()

	result, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "css", "tachyons.css")}, result.Stylesheets)
	assert.Equal(t, 4, result.ClassesDefined)
	assert.Equal(t, 3, result.FilesScanned)
	assert.Equal(t, 2, result.FilesWithClasses)
	assert.Equal(t, []string{"dn", "fw6", "o-50", "pa3"}, result.ClassesUsed)
	assert.Empty(t, result.Failures)

	total := 0
	for _, n := range result.Languages {
		total += n
	}
	assert.Equal(t, 3, total)

	classes, err := reg.Classes(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 4)
	assert.Equal(t, "padding: 1rem;", classes[3].CSS)

	files, err := reg.Files(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(root, "src", "app.js"), files[0].Path)
	assert.Equal(t, hashContent(testAppJS), files[0].Hash)
	assert.Equal(t, filepath.Join(root, "src", "views", "index.html"), files[1].Path)
}

func TestParseIsRepeatable(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)
	ctx := context.Background()

	_, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)
	mapAll(t, reg)

	// A second parse keeps the mappings
	_, err = Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)

	status, err := Status(ctx, reg)
	require.NoError(t, err)
	assert.True(t, status.Ready())
	assert.Equal(t, 4, status.Mapped)
}

func TestReparseDropsFilesWithoutClasses(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)
	ctx := quietContext(&bytes.Buffer{})

	_, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)
	mapAll(t, reg)

	htmlPath := filepath.Join(root, "src", "views", "index.html")
	require.NoError(t, os.WriteFile(htmlPath, []byte("<div>no classes now</div>\n"), 0o644))

	result, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesWithClasses)

	replaced, err := Replace(ctx, reg, ReplaceConfig{DryRun: true})
	require.NoError(t, err)
	require.Len(t, replaced.Files, 1)
	assert.Equal(t, filepath.Join(root, "src", "app.js"), replaced.Files[0].Path)
	assert.Empty(t, replaced.StaleFiles())

	status, err := Status(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Files)

	classes, err := reg.Classes(ctx)
	require.NoError(t, err)
	for _, c := range classes {
		if c.Name == "dn" {
			assert.Zero(t, c.Files)
		}
	}
}

func TestParseRecordsAbsolutePaths(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)
	ctx := quietContext(&bytes.Buffer{})
	t.Chdir(root)

	_, err := Parse(ctx, reg, ParseConfig{
		Stylesheets: []string{filepath.Join("css", "tachyons.css")},
		SourceDir:   "src",
		IgnoreDirs:  walk.DefaultIgnoreDirs,
		Extensions:  walk.DefaultExtensions,
	})
	require.NoError(t, err)
	mapAll(t, reg)

	files, err := reg.Files(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f.Path), f.Path)
	}

	// Replace runs from another directory
	t.Chdir(t.TempDir())
	result, err := Replace(ctx, reg, ReplaceConfig{})
	require.NoError(t, err)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 2, result.FilesChanged())
	assert.FileExists(t, files[0].Path+NewFileSuffix)
}

func TestParseSkipsUnreadableFiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}

	root := testProject(t)
	reg := openTestRegistry(t)
	var logs bytes.Buffer
	ctx := quietContext(&logs)

	// A dangling symlink is collected but cannot be read
	broken := filepath.Join(root, "src", "broken.js")
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.js"), broken))

	result, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, broken, result.Failures[0].Path)
	assert.Equal(t, 3, result.FilesScanned)
	assert.Equal(t, 2, result.FilesWithClasses)
	assert.Equal(t, []string{"dn", "fw6", "o-50", "pa3"}, result.ClassesUsed)
	assert.Contains(t, logs.String(), "skipping file")
}

func TestParseConfigErrors(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		modify func(c *ParseConfig)
	}{
		{"no stylesheets", func(c *ParseConfig) { c.Stylesheets = nil }},
		{"missing stylesheet", func(c *ParseConfig) { c.Stylesheets = []string{filepath.Join(root, "nope.css")} }},
		{"glob matches nothing", func(c *ParseConfig) { c.Stylesheets = []string{filepath.Join(root, "**", "*.scss")} }},
		{"no source dir", func(c *ParseConfig) { c.SourceDir = "" }},
		{"missing source dir", func(c *ParseConfig) { c.SourceDir = filepath.Join(root, "missing") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := parseConfig(root)
			tt.modify(&config)
			_, err := Parse(ctx, reg, config)
			assert.Error(t, err)
		})
	}
}

func TestReplaceRequiresMappings(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)
	ctx := context.Background()

	_, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)

	one := "p-4"
	require.NoError(t, reg.SetMapping(ctx, "pa3", &one))

	_, err = Replace(ctx, reg, ReplaceConfig{})
	var unmapped *UnmappedClassesError
	require.True(t, errors.As(err, &unmapped))
	assert.Equal(t, []string{"dn", "fw6", "o-50"}, unmapped.Classes)
	assert.Equal(t, "3 used classes have no mapping: dn, fw6, o-50", err.Error())

	// Nothing written
	_, statErr := os.Stat(filepath.Join(root, "src", "app.js"+NewFileSuffix))
	assert.True(t, os.IsNotExist(statErr))
}

func TestReplace(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)
	var logs bytes.Buffer
	ctx := quietContext(&logs)

	_, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)
	mapAll(t, reg)

	result, err := Replace(ctx, reg, ReplaceConfig{Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, 2, result.FilesChanged())
	assert.Equal(t, 2, result.SpansChanged())
	assert.Equal(t, 1, result.RejectionCount())
	assert.Empty(t, result.StaleFiles())
	assert.Empty(t, result.Failures)

	appPath := filepath.Join(root, "src", "app.js")
	got, err := os.ReadFile(appPath + NewFileSuffix)
	require.NoError(t, err)
	assert.Equal(t, `const cls = "opacity-50 p-4 font-semibold"; // pa3 in a comment
const msg = "no-a-tachyon-class ignore-me o-50";
`, string(got))

	got, err = os.ReadFile(filepath.Join(root, "src", "views", "index.html") + NewFileSuffix)
	require.NoError(t, err)
	assert.Equal(t, `<div class="hidden">hi</div>`+"\n", string(got))

	// Originals untouched
	original, err := os.ReadFile(appPath)
	require.NoError(t, err)
	assert.Equal(t, testAppJS, string(original))

	app := result.Files[0]
	assert.Equal(t, appPath, app.Path)
	assert.True(t, app.Written)
	require.Len(t, app.Rejections, 1)
	assert.Equal(t, "no-a-tachyon-class ignore-me o-50", app.Rejections[0].Original)
	assert.Equal(t, "no-a-tachyon-class ignore-me opacity-50", app.Rejections[0].Attempted)

	assert.Contains(t, logs.String(), "rewrite rejected")
}

func TestReplaceDryRun(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)
	ctx := quietContext(&bytes.Buffer{})

	_, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)
	mapAll(t, reg)

	result, err := Replace(ctx, reg, ReplaceConfig{DryRun: true})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.FilesChanged())

	for _, f := range result.Files {
		assert.False(t, f.Written)
		_, statErr := os.Stat(f.Output)
		assert.True(t, os.IsNotExist(statErr), f.Output)
	}
}

func TestReplaceStaleAndFailedFiles(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)
	var logs bytes.Buffer
	ctx := quietContext(&logs)

	_, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)
	mapAll(t, reg)

	appPath := filepath.Join(root, "src", "app.js")
	htmlPath := filepath.Join(root, "src", "views", "index.html")
	require.NoError(t, os.WriteFile(appPath, []byte(`const cls = "pa3";`+"\n"), 0o644))
	require.NoError(t, os.Remove(htmlPath))

	result, err := Replace(ctx, reg, ReplaceConfig{})
	require.NoError(t, err)

	assert.Equal(t, []string{appPath}, result.StaleFiles())
	require.Len(t, result.Failures, 1)
	assert.Equal(t, htmlPath, result.Failures[0].Path)

	got, err := os.ReadFile(appPath + NewFileSuffix)
	require.NoError(t, err)
	assert.Equal(t, `const cls = "p-4";`+"\n", string(got))

	assert.Contains(t, logs.String(), "file changed since parse")
	assert.Contains(t, logs.String(), "skipping file")
}

func TestReplacePreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not preserved on windows")
	}

	root := testProject(t)
	reg := openTestRegistry(t)
	ctx := quietContext(&bytes.Buffer{})

	appPath := filepath.Join(root, "src", "app.js")
	require.NoError(t, os.Chmod(appPath, 0o600))

	_, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)
	mapAll(t, reg)

	_, err = Replace(ctx, reg, ReplaceConfig{})
	require.NoError(t, err)

	info, err := os.Stat(appPath + NewFileSuffix)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestBackupRestore(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)
	ctx := context.Background()

	_, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)
	repl := "p-4"
	require.NoError(t, reg.SetMapping(ctx, "pa3", &repl))

	tests := []struct {
		name       string
		mappedOnly bool
		count      int
	}{
		{"all classes", false, 4},
		{"mapped only", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultBackupFile)
			n, err := Backup(ctx, reg, path, tt.mappedOnly)
			require.NoError(t, err)
			assert.Equal(t, tt.count, n)

			restored := openTestRegistry(t)
			n, err = Restore(ctx, restored, path)
			require.NoError(t, err)
			assert.Equal(t, tt.count, n)

			snap, err := restored.Snapshot(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.count, snap.Len())
			assert.Equal(t, map[string]string{"pa3": "p-4"}, snap.AllMappings())
		})
	}
}

func TestRestoreKeepsExistingMapping(t *testing.T) {
	ctx := context.Background()
	reg := openTestRegistry(t)

	repl := "p-4"
	require.NoError(t, reg.UpsertClass(ctx, "pa3", "padding: 1rem;", &repl))

	path := filepath.Join(t.TempDir(), "mapping.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pa3": {"tailwind": null, "css": "padding: 1rem;"}, "dn": {"tailwind": "hidden", "css": "display: none;"}}`), 0o644))

	n, err := Restore(ctx, reg, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	snap, err := reg.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pa3": "p-4", "dn": "hidden"}, snap.AllMappings())

	_, err = Restore(ctx, reg, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.UpsertClass(ctx, "unused", "color: red;", nil))
	_, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)
	repl := "hidden"
	require.NoError(t, reg.SetMapping(ctx, "dn", &repl))

	status, err := Status(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, &StatusResult{
		Classes:  5,
		Mapped:   1,
		Used:     4,
		Files:    2,
		Unmapped: []string{"fw6", "o-50", "pa3"},
	}, status)
	assert.False(t, status.Ready())
}

func TestDebug(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)
	ctx := context.Background()

	_, err := Parse(ctx, reg, parseConfig(root))
	require.NoError(t, err)
	mapAll(t, reg)

	appPath := filepath.Join(root, "src", "app.js")

	report, err := Debug(ctx, reg, appPath, false)
	require.NoError(t, err)
	require.Len(t, report.Strings, 2)
	assert.Equal(t, `"o-50 pa3 fw6"`, report.Strings[0].Content)
	assert.Equal(t, 12, report.Strings[0].Start)
	require.Len(t, report.Comments, 1)
	assert.Equal(t, "// pa3 in a comment", report.Comments[0].Content)
	assert.Equal(t, []string{"fw6", "o-50", "pa3"}, report.Classes)
	assert.Empty(t, report.Rewritten)

	report, err = Debug(ctx, reg, appPath, true)
	require.NoError(t, err)
	assert.Contains(t, report.Rewritten, `"opacity-50 p-4 font-semibold"`)
	assert.Len(t, report.Rejections, 1)

	_, err = Debug(ctx, reg, filepath.Join(root, "missing.js"), false)
	assert.Error(t, err)
}

func TestParseCanceled(t *testing.T) {
	root := testProject(t)
	reg := openTestRegistry(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, reg, parseConfig(root))
	assert.ErrorIs(t, err, context.Canceled)
}
