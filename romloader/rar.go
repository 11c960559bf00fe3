package romloader

import (
	"errors"
	"fmt"
	"io"

	"github.com/nwaples/rardecode/v2"
)

func (l *Loader) fromRAR(path string) (*Image, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open rar: %w", err)
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoImage
		}
		if err != nil {
			return nil, fmt.Errorf("read rar entry: %w", err)
		}
		if header.IsDir || !l.matches(header.Name) {
			continue
		}
		return l.entry(header.Name, r)
	}
}
