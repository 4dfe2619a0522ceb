package server

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
	"github.com/egoview/egoview/pkg/store"
)

// GraphSource loads named full graphs for view requests.
type GraphSource interface {
	// List returns the available graph names, sorted.
	List(ctx context.Context) ([]string, error)

	// Load returns the graph stored under the given name.
	Load(ctx context.Context, name string) (*graph.DiGraph, error)
}

// DirSource serves node-link JSON files from a data directory. The graph
// name is the file name without the .json extension.
type DirSource struct {
	Dir string
}

// List returns the names of all .json files in the directory.
func (s *DirSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read data directory")
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and parses the named graph file.
func (s *DirSource) Load(ctx context.Context, name string) (*graph.DiGraph, error) {
	if err := errors.ValidateGraphName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(s.Dir, name+".json")
	if _, err := os.Stat(path); err != nil {
		return nil, errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", name)
	}
	return graph.ReadGraphFile(path)
}

// StoreSource serves graphs from a MongoDB store.
type StoreSource struct {
	Store *store.MongoStore
}

// List returns the names of all stored graphs.
func (s *StoreSource) List(ctx context.Context) ([]string, error) {
	infos, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names, nil
}

// Load returns the stored graph.
func (s *StoreSource) Load(ctx context.Context, name string) (*graph.DiGraph, error) {
	return s.Store.Get(ctx, name)
}
