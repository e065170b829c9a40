package pongo

import (
	"errors"
	"io/fs"
)

// overlayFS serves files from primary and falls back to fallback when primary
// does not have them.
type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	file, err := o.primary.Open(name)
	if err == nil {
		return file, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return o.fallback.Open(name)
}
