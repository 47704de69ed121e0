package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
)

const testRosterJSON = `{"sections": [
  {"name": "CSE-A", "students": [{"roll": "A1", "subject": "Maths"}, {"roll": "A2", "subject": "Maths"}, {"roll": "A3", "subject": "Maths"}]},
  {"name": "CSE-B", "students": [{"roll": "B1", "subject": "Physics"}, {"roll": "B2", "subject": "Physics"}]},
  {"name": "ECE", "students": [{"roll": "E1", "subject": "Circuits"}]}
]}`

// writeRoster writes the test roster into a temp dir and points the cache
// at another one.
func writeRoster(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "exam.json")
	if err := os.WriteFile(path, []byte(testRosterJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"generate", "sections", "serve", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("root command missing %q (have %v)", want, names)
		}
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)
	dir, _ = cacheDir()
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,pdf", []string{"svg", "pdf"}},
		{" CSE-A , CSE-B ,", []string{"CSE-A", "CSE-B"}},
		{",,", nil},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()

	c, err := newCache(ctx, cacheOptions{Backend: "none"})
	if err != nil || c == nil {
		t.Fatalf("none backend: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "cache")
	c, err = newCache(ctx, cacheOptions{Dir: dir})
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	defer c.Close()
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("file cache dir not created: %v", err)
	}

	if _, err := newCache(ctx, cacheOptions{Backend: "redis", RedisURL: "not a url"}); err == nil {
		t.Error("redis backend with a bad URL should fail")
	}
}

func TestSectionsCommand(t *testing.T) {
	path := writeRoster(t)
	out, err := execute(t, "sections", path)
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	for _, want := range []string{"CSE-A", "CSE-B", "ECE", "Students", "6"} {
		if !strings.Contains(out, want) {
			t.Errorf("sections output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "CSE-A") > strings.Index(out, "ECE") {
		t.Error("sections should be listed in roster order")
	}
}

func TestSectionsMissingFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	_, err := execute(t, "sections", filepath.Join(t.TempDir(), "nope.json"), "--no-cache")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestServeRejectsUnknownBackend(t *testing.T) {
	_, err := execute(t, "serve", "--cache", "memcached", "--addr", "127.0.0.1:0")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.Join(custom, appName) {
		t.Errorf("cache path = %q", out)
	}
}
