package pongo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-portfolio/pkg/render/template"
)

const defaultExtension = ".tmpl"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	extension string
}

// WithBaseDir loads templates from a directory on disk. Combined with WithFS
// the directory is layered over the fs.FS: a file present on disk wins,
// anything else falls through. Includes resolve relative to the including
// template.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS (usually an embed.FS).
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the extension appended to bare template names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// Engine renders pongo2 templates. Parsed templates are cached by path; the
// engine is safe for concurrent use.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine reading from a base dir, an fs.FS, or both.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: defaultExtension}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	files, err := cfg.source()
	if err != nil {
		return nil, err
	}
	registerDefaultFilters()

	return &Engine{
		set:   pongo2.NewSet("portfolio", pongo2.NewFSLoader(files)),
		ext:   cfg.extension,
		cache: make(map[string]*pongo2.Template),
	}, nil
}

func (cfg *config) source() (fs.FS, error) {
	if cfg.baseDir == "" {
		if cfg.templates == nil {
			return nil, errors.New("pongo: need to provide either base dir or fs.FS")
		}
		return cfg.templates, nil
	}

	info, err := os.Stat(cfg.baseDir)
	if err != nil {
		return nil, fmt.Errorf("pongo: base dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pongo: base dir %q is not a directory", cfg.baseDir)
	}
	disk := os.DirFS(cfg.baseDir)
	if cfg.templates == nil {
		return disk, nil
	}
	return overlayFS{primary: disk, fallback: cfg.templates}, nil
}

// RenderTemplate renders the named template with data and copies the result
// to every non-nil writer in out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("pongo: convert data for %q: %w", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("pongo: execute template %q: %w", path, err)
	}
	rendered := buf.String()
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: load template %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

// toContext encodes data to JSON and back so templates address struct fields
// by their json names. The top level must encode to an object.
func toContext(data any) (pongo2.Context, error) {
	ctx := pongo2.Context{}
	if data == nil {
		return ctx, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("view data must encode to a JSON object: %w", err)
	}
	return ctx, nil
}
