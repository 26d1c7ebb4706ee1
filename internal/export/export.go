// Package export writes the site's routes to a directory that any static
// file server can host.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/jbukuts/folio/internal/site"
)

// Report summarises an export.
type Report struct {
	Files    int
	Bytes    int64
	Duration time.Duration
}

// Export renders every route into outDir. Page routes become index.html
// inside a directory named after the route, routes with a file extension
// keep their name. extras are copied verbatim into the root of outDir.
func Export(ctx context.Context, routes []site.Route, outDir string, extras ...string) (Report, error) {
	start := time.Now()
	var rep Report

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return rep, fmt.Errorf("create output dir: %w", err)
	}

	for _, route := range routes {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		body, err := route.Render()
		if err != nil {
			return rep, fmt.Errorf("render %s: %w", route.Path, err)
		}
		dest := filepath.Join(outDir, filepath.FromSlash(OutputPath(route.Path)))
		if err := writeFile(dest, body); err != nil {
			return rep, err
		}
		rep.Files++
		rep.Bytes += int64(len(body))
	}

	for _, src := range extras {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		n, err := copyFile(src, filepath.Join(outDir, filepath.Base(src)))
		if err != nil {
			return rep, err
		}
		rep.Files++
		rep.Bytes += n
	}

	rep.Duration = time.Since(start)
	return rep, nil
}

// OutputPath maps a route path to its file path relative to the output root.
func OutputPath(routePath string) string {
	clean := strings.TrimPrefix(path.Clean("/"+routePath), "/")
	if clean == "" {
		return "index.html"
	}
	if path.Ext(clean) != "" {
		return clean
	}
	return path.Join(clean, "index.html")
}

func writeFile(dest string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", dest, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}

func copyFile(src, dest string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", dest, err)
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("copy %s: %w", src, err)
	}
	return n, nil
}
