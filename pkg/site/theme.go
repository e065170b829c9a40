package site

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-portfolio/pkg/renderers/page"
)

const (
	DefaultThemeName = "studio"
	DarkVariant      = "dark"
)

var ErrThemeNotFound = errors.New("site: theme not found")

// DefaultTheme is the built-in studio look: an indigo to purple brand
// gradient on a light surface, plus a dark variant.
func DefaultTheme() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-primary":    "#6366f1",
			"color-accent":     "#9333ea",
			"color-surface":    "#ffffff",
			"color-background": "#f3f4f6",
			"color-text":       "#374151",
			"color-heading":    "#1f2937",
			"color-border":     "#d1d5db",
			"color-link":       "#2563eb",
		},
		Assets: theme.Assets{
			Files: map[string]string{
				page.StylesheetAssetKey: page.StylesheetName,
				page.ScriptAssetKey:     page.ScriptName,
			},
		},
		Variants: map[string]theme.Variant{
			DarkVariant: {
				Tokens: map[string]string{
					"color-surface":    "#111827",
					"color-background": "#030712",
					"color-text":       "#d1d5db",
					"color-heading":    "#f9fafb",
					"color-border":     "#374151",
					"color-link":       "#93c5fd",
				},
			},
		},
	}
}

// ThemeSelector resolves manifests registered in memory. Unknown variants
// fall back to the base manifest; an empty name selects the default theme.
type ThemeSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ThemeSelector)(nil)

// NewThemeSelector registers manifests and records the defaults used when a
// request does not name a theme or variant.
func NewThemeSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*ThemeSelector, error) {
	s := &ThemeSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	if s.defaultTheme == "" && len(manifests) > 0 {
		s.defaultTheme = manifests[0].Name
	}
	if _, ok := s.manifests[s.defaultTheme]; !ok && s.defaultTheme != "" {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, s.defaultTheme)
	}
	return s, nil
}

// Register adds or replaces a manifest by name.
func (s *ThemeSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil {
		return errors.New("site: theme manifest is nil")
	}
	name := strings.TrimSpace(manifest.Name)
	if name == "" {
		return errors.New("site: theme manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[name] = manifest
	return nil
}

// Select implements theme.ThemeSelector.
func (s *ThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}

	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if _, ok := manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection into what renderers consume: tokens
// with the variant merged over the base, a "--token" CSS variable per token,
// merged template overrides and an asset resolver. assetPrefix is used when
// the manifest does not declare its own prefix; an empty result means
// "no URL" and renderers inline their embedded assets instead.
func RendererConfig(selection *theme.Selection, assetPrefix string) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant, hasVariant := manifest.Variants[selection.Variant]

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	files := mergeStrings(manifest.Assets.Files, nil)
	prefix := strings.TrimSpace(manifest.Assets.Prefix)
	if hasVariant {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if p := strings.TrimSpace(variant.Assets.Prefix); p != "" {
			prefix = p
		}
	}
	if prefix == "" {
		prefix = strings.TrimSpace(assetPrefix)
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file := strings.TrimSpace(files[key])
			if file == "" || prefix == "" {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
				return file
			}
			if strings.Contains(prefix, "://") {
				return strings.TrimSuffix(prefix, "/") + "/" + file
			}
			return path.Join("/", prefix, file)
		},
	}
}

func mergeStrings(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
