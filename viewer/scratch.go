package viewer

import "os"

// Scratch is the single session-scoped image file. Each successful
// fetch overwrites it, so at most one map image is live at a time.
type Scratch struct {
	path string
}

// NewScratch creates the temp file in the OS temp dir.
func NewScratch() (*Scratch, error) {
	f, err := os.CreateTemp("", "yamapview-*.png")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}
	return &Scratch{path: path}, nil
}

func (s *Scratch) Path() string { return s.path }

// Write replaces the file contents with the latest fetched image.
func (s *Scratch) Write(b []byte) error {
	return os.WriteFile(s.path, b, 0o644)
}

// Remove deletes the file. Safe to call more than once; callers defer
// it and also hook it to signals so the file goes away on every exit path.
func (s *Scratch) Remove() {
	_ = os.Remove(s.path)
}
