package romloader

import (
	"fmt"

	"github.com/bodgit/sevenzip"
)

func (l *Loader) from7z(path string) (*Image, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open 7z: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !l.matches(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s in 7z: %w", f.Name, err)
		}
		defer rc.Close()
		return l.entry(f.Name, rc)
	}
	return nil, ErrNoImage
}
