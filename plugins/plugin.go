// Package plugins provides the registry of protocol directory backends. Backends register
// themselves from an init() function and are instantiated by name
package plugins

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/els0r/netproto/pkg/protocols"
)

func init() {
	GetInitializer()
}

type pluginType string

const (
	directoryPlugin pluginType = "directory"
)

// Initializer is a singleton that holds all registered plugins
type Initializer struct {
	sync.RWMutex
	directories map[string]DirectoryInitializer
}

// LogValue implements slog.LogValuer
func (i *Initializer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("directories", i.getDirectories()),
	)
}

// DirectoryInitializer is a function that initializes a protocol directory. The meaning of
// source is up to the backend (e.g. a file path or a server address) and may be empty
type DirectoryInitializer func(ctx context.Context, source string) (protocols.Directory, error)

// RegisterDirectory registers a directory initializer function with a given name.
// This function is meant to be used by directory backends to register themselves.
// RegisterDirectory will panic if a backend with the same name has already been registered
func RegisterDirectory(name string, initFn DirectoryInitializer) {
	GetInitializer().registerDirectory(name, initFn)
}

// GetAvailableDirectoryPlugins returns a sorted list of all registered directory backends
func GetAvailableDirectoryPlugins() []string {
	return GetInitializer().getDirectories()
}

// GetAvailablePlugins returns a list of all registered plugins by plugin type
func GetAvailablePlugins() map[string][]string {
	return map[string][]string{
		string(directoryPlugin): GetAvailableDirectoryPlugins(),
	}
}

// InitDirectory will initialize the directory backend with the given name and source.
// If the backend never registered itself, an error will be returned
func InitDirectory(ctx context.Context, name, source string) (protocols.Directory, error) {
	initFn, exists := GetInitializer().getDirectory(name)
	if !exists {
		return nil, fmt.Errorf("directory plugin %q not registered (available: %v)", name, GetAvailableDirectoryPlugins())
	}
	d, err := initFn(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %q directory: %w", name, err)
	}
	return d, nil
}

func (i *Initializer) getDirectories() []string {
	plugins := make([]string, 0)

	i.RLock()
	for k := range i.directories {
		plugins = append(plugins, k)
	}
	i.RUnlock()

	sort.StringSlice(plugins).Sort()
	return plugins
}

func (i *Initializer) getDirectory(name string) (DirectoryInitializer, bool) {
	i.RLock()
	initFn, exists := i.directories[name]
	i.RUnlock()

	return initFn, exists
}

func (i *Initializer) registerDirectory(name string, initFn DirectoryInitializer) {
	i.Lock()
	defer i.Unlock()

	if _, exists := i.directories[name]; exists {
		panic(fmt.Sprintf("%q directory already registered", name))
	}
	i.directories[name] = initFn
}

var singleton *Initializer
var once sync.Once

// GetInitializer returns the singleton Initializer instance. It is safe to call this function
// concurrently. Repeated calls will return the same instance
func GetInitializer() *Initializer {
	once.Do(func() {
		singleton = &Initializer{
			directories: make(map[string]DirectoryInitializer),
		}
	})
	return singleton
}
