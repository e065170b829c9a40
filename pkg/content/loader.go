package content

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var errEmptyTitle = errors.New("content: project title is required")

type document struct {
	Profile      *Profile      `yaml:"profile"`
	Projects     []Project     `yaml:"projects"`
	Testimonials []Testimonial `yaml:"testimonials"`
}

// LoadFile reads a YAML content file from disk.
func LoadFile(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("content: path is required")
	}
	return LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// LoadFS parses the named YAML file from fsys. Sections missing from the file
// fall back to Default(); an explicitly empty list stays empty.
func LoadFS(fsys fs.FS, name string) (*Store, error) {
	if fsys == nil {
		return nil, errors.New("content: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", name, err)
	}
	return parse(data, name)
}

func parse(data []byte, name string) (*Store, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("content: parse %s: %w", name, err)
	}

	fallback := Default()
	profile := fallback.Profile()
	if doc.Profile != nil {
		profile = *doc.Profile
	}
	projects := doc.Projects
	if projects == nil {
		projects = fallback.Projects()
	}
	testimonials := doc.Testimonials
	if testimonials == nil {
		testimonials = fallback.Testimonials()
	}

	store := NewStore(profile, projects, testimonials)
	if err := Validate(store); err != nil {
		return nil, fmt.Errorf("content: %s: %w", name, err)
	}
	return store, nil
}

// Validate checks authored content before it reaches the page: every project
// needs a title and a parseable image reference, every testimonial a name,
// and social links must be http(s) URLs.
func Validate(store *Store) error {
	for idx, project := range store.Projects() {
		if strings.TrimSpace(project.Title) == "" {
			return fmt.Errorf("projects[%d]: %w", idx, errEmptyTitle)
		}
		if _, err := url.Parse(project.Image); err != nil || strings.TrimSpace(project.Image) == "" {
			return fmt.Errorf("projects[%d]: invalid image %q", idx, project.Image)
		}
	}
	for idx, testimonial := range store.Testimonials() {
		if strings.TrimSpace(testimonial.Name) == "" {
			return fmt.Errorf("testimonials[%d]: name is required", idx)
		}
	}
	for idx, link := range store.Profile().Contact.Social {
		parsed, err := url.Parse(link.URL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return fmt.Errorf("profile.contact.social[%d]: invalid url %q", idx, link.URL)
		}
	}
	return nil
}
