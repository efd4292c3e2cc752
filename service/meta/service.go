// Package meta loads YAML or JSON documents from any afs location, expanding
// ${env.KEY} expressions before decoding.
package meta

import (
	"context"
	"fmt"
	"os"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service decodes documents into Go values.
type Service struct {
	fs        afs.Service
	lookup    Lookup
	fsOptions []storage.Option
}

// New creates a loader; a nil fs selects afs.New() and a nil lookup selects
// os.LookupEnv. fsOptions are passed to every download, e.g. an embed.FS.
func New(fs afs.Service, lookup Lookup, fsOptions ...storage.Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Service{fs: fs, lookup: lookup, fsOptions: fsOptions}
}

// Load decodes the document at URL into target. JSON is accepted as it is a
// subset of YAML.
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	data, err := s.fs.DownloadWithURL(ctx, url.Normalize(URL, file.Scheme), s.fsOptions...)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", URL, err)
	}
	return s.Decode(data, target)
}

// Decode expands data and decodes it into target.
func (s *Service) Decode(data []byte, target interface{}) error {
	expanded := Expand(string(data), s.lookup)
	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}
	return nil
}
