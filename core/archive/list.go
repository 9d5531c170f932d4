package archive

import "context"

// List returns the normalized path of every entry in the archive at location,
// in storage order, directories included. Content is never read.
func List(ctx context.Context, opener *Opener, location string) ([]string, error) {
	rc, err := opener.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var paths []string
	err = Walk(ctx, rc, func(e *Entry) error {
		if e.Path != "" {
			paths = append(paths, e.Path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
