package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jbukuts/folio/internal/site"
)

func static(path, body string) site.Route {
	return site.Route{Path: path, ContentType: site.TypeHTML, Render: func() ([]byte, error) {
		return []byte(body), nil
	}}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		route, want string
	}{
		{"/", "index.html"},
		{"/projects", "projects/index.html"},
		{"/posts/hello", "posts/hello/index.html"},
		{"/posts/hello/", "posts/hello/index.html"},
		{"/rss.xml", "rss.xml"},
		{"/search.json", "search.json"},
		{"/../etc/passwd", "etc/passwd/index.html"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.route); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.route, got, tt.want)
		}
	}
}

func TestExport(t *testing.T) {
	out := t.TempDir()
	pdf := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(pdf, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	routes := []site.Route{
		static("/", "home"),
		static("/posts/a", "post a"),
		static("/robots.txt", "robots"),
	}
	rep, err := Export(context.Background(), routes, out, pdf)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if rep.Files != 4 {
		t.Errorf("expected 4 files, got %d", rep.Files)
	}
	if rep.Bytes != int64(len("home")+len("post a")+len("robots")+len("%PDF")) {
		t.Errorf("unexpected byte count %d", rep.Bytes)
	}

	for rel, want := range map[string]string{
		"index.html":         "home",
		"posts/a/index.html": "post a",
		"robots.txt":         "robots",
		"resume.pdf":         "%PDF",
	} {
		got, err := os.ReadFile(filepath.Join(out, rel))
		if err != nil {
			t.Errorf("read %s: %v", rel, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s: got %q, want %q", rel, got, want)
		}
	}
}

func TestExport_RenderError(t *testing.T) {
	boom := errors.New("boom")
	routes := []site.Route{{Path: "/bad", Render: func() ([]byte, error) { return nil, boom }}}
	if _, err := Export(context.Background(), routes, t.TempDir()); !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
}

func TestExport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := Export(ctx, []site.Route{static("/", "home")}, t.TempDir())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if rep.Files != 0 {
		t.Errorf("expected nothing written, got %d files", rep.Files)
	}
}
