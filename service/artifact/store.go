// Package artifact persists received and approved documents. Locations may be
// plain file paths or any URL supported by github.com/viant/afs.
package artifact

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/docastest/internal/idgen"
)

// tempPrefix marks in-flight writes; the temporary name keeps the target's
// extension so that afs moves it onto the target rather than into it.
const tempPrefix = ".docastest-"

// Store abstracts whole-document storage operations.
type Store interface {
	Exists(ctx context.Context, location string) (bool, error)
	Read(ctx context.Context, location string) ([]byte, error)
	// Write replaces the document at location; readers never observe a
	// partially written document.
	Write(ctx context.Context, location string, data []byte) error
	Delete(ctx context.Context, location string) error
	// EnsureDir creates location and its parents; an existing directory is not an error.
	EnsureDir(ctx context.Context, location string) error
	Move(ctx context.Context, source, dest string) error
	// List returns locations of all documents under location, recursively.
	List(ctx context.Context, location string) ([]string, error)
}

// Service implements Store on top of afs.
type Service struct {
	fs afs.Service
	mu sync.Mutex // serialises temp+move pairs of this process
}

var _ Store = (*Service)(nil)

// New creates an afs backed store; a nil fs selects afs.New().
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}

// Normalize returns the canonical afs URL of location.
func Normalize(location string) string {
	return url.Normalize(location, file.Scheme)
}

// Path returns the path component of location, used to compare locations
// independently of scheme or host.
func Path(location string) string {
	return url.Path(Normalize(location))
}

func (s *Service) Exists(ctx context.Context, location string) (bool, error) {
	ok, err := s.fs.Exists(ctx, Normalize(location))
	if err != nil {
		return false, fmt.Errorf("failed to check if %s exists: %w", location, err)
	}
	return ok, nil
}

func (s *Service) Read(ctx context.Context, location string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, Normalize(location))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}

func (s *Service) Write(ctx context.Context, location string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := Normalize(location)
	temp := tempLocation(target)
	if err := s.fs.Upload(ctx, temp, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	if err := s.fs.Move(ctx, temp, target); err != nil {
		_ = s.fs.Delete(ctx, temp)
		return fmt.Errorf("failed to move %s into place: %w", location, err)
	}
	return nil
}

func tempLocation(target string) string {
	parent, name := url.Split(target, file.Scheme)
	return url.Join(parent, tempPrefix+idgen.New()+"_"+name)
}

func (s *Service) Delete(ctx context.Context, location string) error {
	if err := s.fs.Delete(ctx, Normalize(location)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", location, err)
	}
	return nil
}

func (s *Service) EnsureDir(ctx context.Context, location string) error {
	dir := Normalize(location)
	if exists, _ := s.fs.Exists(ctx, dir); exists {
		return nil
	}
	if err := s.fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
		// another case may have created it concurrently
		if exists, _ := s.fs.Exists(ctx, dir); exists {
			return nil
		}
		return fmt.Errorf("failed to create directory %s: %w", location, err)
	}
	return nil
}

func (s *Service) Move(ctx context.Context, source, dest string) error {
	if err := s.fs.Move(ctx, Normalize(source), Normalize(dest)); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", source, dest, err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, location string) ([]string, error) {
	root := Normalize(location)
	exists, err := s.fs.Exists(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to check if %s exists: %w", location, err)
	}
	if !exists {
		return nil, nil
	}
	objects, err := s.fs.List(ctx, root, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", location, err)
	}
	var result []string
	for _, object := range objects {
		if object.IsDir() || strings.HasPrefix(object.Name(), tempPrefix) {
			continue
		}
		result = append(result, object.URL())
	}
	return result, nil
}
