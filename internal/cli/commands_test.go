package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
)

const sceneJSON = `{
  "version": 1,
  "nodes": [{
    "name": "Card",
    "type": "frame",
    "width": 200,
    "height": 120,
    "fills": [{"type": "SOLID", "color": {"r": 0.2, "g": 0.4, "b": 0.6}}],
    "children": [
      {"name": "Title", "type": "TEXT", "characters": "Hello"},
      {"name": "Swatch", "type": "RECTANGLE", "width": 20, "height": 20}
    ]
  }]
}`

// isolate points the cache and config at fresh directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRoundtripCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	in := writeFile(t, dir, "scene.json", sceneJSON)
	out := filepath.Join(dir, "out", "scene.yaml")

	_, stderr, err := run(t, "roundtrip", in, "-o", out)
	if err != nil {
		t.Fatalf("roundtrip error: %v", err)
	}
	d, err := doc.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if d.Count() != 3 || d.Nodes[0].Type != doc.TypeFrame {
		t.Errorf("output = %+v, want a 3-node FRAME tree", d)
	}
	if !strings.Contains(stderr, "fresh") {
		t.Errorf("stderr = %q, want a fresh result", stderr)
	}

	_, stderr, err = run(t, "roundtrip", in, "-o", out)
	if err != nil {
		t.Fatalf("second roundtrip error: %v", err)
	}
	if !strings.Contains(stderr, "cached") {
		t.Errorf("stderr = %q, want a cached result", stderr)
	}
}

func TestRoundtripCommandStdout(t *testing.T) {
	isolate(t)
	in := writeFile(t, t.TempDir(), "scene.json", sceneJSON)

	stdout, _, err := run(t, "roundtrip", in, "-f", "json", "--no-cache")
	if err != nil {
		t.Fatalf("roundtrip error: %v", err)
	}
	d, err := doc.Unmarshal([]byte(stdout), doc.FormatJSON)
	if err != nil {
		t.Fatalf("stdout is not a document: %v", err)
	}
	if d.Nodes[0].Name != "Card" {
		t.Errorf("root = %s, want Card", d.Nodes[0].Name)
	}
}

func TestRoundtripCommandStrict(t *testing.T) {
	isolate(t)
	in := writeFile(t, t.TempDir(), "scene.json", `{"nodes": [
		{"name": "Icon", "type": "VECTOR", "vector_paths": [{"data": "X 1 2"}]}
	]}`)

	_, stderr, err := run(t, "roundtrip", in, "--no-cache", "--strict")
	if err == nil {
		t.Fatal("strict roundtrip should fail when a node is not converted faithfully")
	}
	if !strings.Contains(stderr, "Icon") {
		t.Errorf("stderr = %q, want the issue path", stderr)
	}
}

func TestRoundtripCommandErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	in := writeFile(t, dir, "scene.json", sceneJSON)

	tests := []struct {
		name     string
		args     []string
		wantCode errs.Code
	}{
		{"missing file", []string{"roundtrip", filepath.Join(dir, "nope.json")}, errs.ErrCodeFileNotFound},
		{"bad format", []string{"roundtrip", in, "-f", "xml"}, errs.ErrCodeInvalidFormat},
		{"bad font", []string{"roundtrip", in, "--font", ":Bold"}, errs.ErrCodeInvalidInput},
		{"bad output extension", []string{"roundtrip", in, "-o", filepath.Join(dir, "out.txt")}, errs.ErrCodeInvalidPath},
		{"missing config", []string{"roundtrip", in, "--config", filepath.Join(dir, "none.toml")}, errs.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if !errs.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestRoundtripOptionsFormat(t *testing.T) {
	tests := []struct {
		name   string
		config string
		input  string
		flags  roundtripFlags
		want   doc.Format
	}{
		{"flag wins", "yaml", "a.json", roundtripFlags{format: "json", output: "b.yaml"}, doc.FormatJSON},
		{"output extension", "json", "a.json", roundtripFlags{output: "b.yml"}, doc.FormatYAML},
		{"config", "yaml", "a.json", roundtripFlags{}, doc.FormatYAML},
		{"input extension", "", "a.yaml", roundtripFlags{}, doc.FormatYAML},
		{"stdin default", "", "-", roundtripFlags{}, doc.FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.Config.Format = tt.config
			opts, err := c.roundtripOptions(tt.input, tt.flags)
			if err != nil {
				t.Fatalf("roundtripOptions() error: %v", err)
			}
			if opts.Format != tt.want {
				t.Errorf("Format = %s, want %s", opts.Format, tt.want)
			}
		})
	}
}

func TestInspectCommand(t *testing.T) {
	isolate(t)
	in := writeFile(t, t.TempDir(), "scene.json", sceneJSON)

	stdout, _, err := run(t, "inspect", in)
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	for _, want := range []string{"Card", "Title", "Swatch", "RECTANGLE", `"Hello"`, "200×120"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect output missing %q:\n%s", want, stdout)
		}
	}

	nested := writeFile(t, t.TempDir(), "nested.yaml", `
nodes:
  - name: Page
    children:
      - name: Group
        children:
          - name: Leaf
`)
	stdout, _, err = run(t, "inspect", nested, "--depth", "1")
	if err != nil {
		t.Fatalf("inspect --depth error: %v", err)
	}
	if !strings.Contains(stdout, "Group") || strings.Contains(stdout, "Leaf") || !strings.Contains(stdout, "1 more") {
		t.Errorf("depth 1 should collapse below Group:\n%s", stdout)
	}
}

func TestOutlineCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	in := writeFile(t, dir, "scene.json", sceneJSON)

	stdout, _, err := run(t, "outline", in, "-f", "dot", "--direction", "LR")
	if err != nil {
		t.Fatalf("outline error: %v", err)
	}
	if !strings.HasPrefix(stdout, "digraph") || !strings.Contains(stdout, "rankdir=LR") {
		t.Errorf("outline output = %q, want LR DOT source", stdout)
	}

	out := filepath.Join(dir, "scene.dot")
	if _, _, err := run(t, "outline", in, "-o", out); err != nil {
		t.Fatalf("outline -o error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil || !bytes.HasPrefix(data, []byte("digraph")) {
		t.Errorf("outline file = %q, %v; want DOT inferred from the extension", data, err)
	}

	if _, _, err := run(t, "outline", in, "--direction", "up"); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("bad direction error = %v, want INVALID_INPUT", err)
	}
}

func TestCacheCommands(t *testing.T) {
	isolate(t)
	in := writeFile(t, t.TempDir(), "scene.json", sceneJSON)

	stdout, _, err := run(t, "cache", "stats")
	if err != nil || !strings.Contains(stdout, "empty") {
		t.Errorf("stats on a fresh cache = %q, %v", stdout, err)
	}

	if _, _, err := run(t, "roundtrip", in); err != nil {
		t.Fatalf("roundtrip error: %v", err)
	}
	stdout, _, err = run(t, "cache", "stats")
	if err != nil || !strings.Contains(stdout, "Entries") {
		t.Errorf("stats = %q, %v", stdout, err)
	}

	stdout, _, err = run(t, "cache", "clear")
	if err != nil || !strings.Contains(stdout, "Cleared 1 cached entry") {
		t.Errorf("clear = %q, %v", stdout, err)
	}

	stdout, _, err = run(t, "cache", "path")
	if err != nil || !strings.HasSuffix(strings.TrimSpace(stdout), appName) {
		t.Errorf("path = %q, %v", stdout, err)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{1536, "1.5 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "completion", "bash")
	if err != nil || !strings.Contains(stdout, "scenedoc") {
		t.Errorf("completion bash = %d bytes, %v", len(stdout), err)
	}

	stdout, _, err = run(t, cobra.ShellCompRequestCmd, "outline", "scene.json", "--format", "")
	if err != nil {
		t.Fatalf("complete --format error: %v", err)
	}
	if !strings.Contains(stdout, "svg") || !strings.Contains(stdout, "dot") || strings.Contains(stdout, "yaml") {
		t.Errorf("outline --format completions = %q", stdout)
	}

	stdout, _, err = run(t, cobra.ShellCompRequestCmd, "inspect", "")
	if err != nil || !strings.Contains(stdout, "yaml") {
		t.Errorf("document completions = %q, %v", stdout, err)
	}
}
