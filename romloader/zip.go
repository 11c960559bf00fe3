package romloader

import (
	"archive/zip"
	"fmt"
)

func (l *Loader) fromZIP(path string) (*Image, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !l.matches(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s in zip: %w", f.Name, err)
		}
		defer rc.Close()
		return l.entry(f.Name, rc)
	}
	return nil, ErrNoImage
}
