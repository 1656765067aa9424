package deeplink

import (
	"net/url"
	"sync"

	"github.com/metafates/gache"
	"github.com/seriesgenius/seriesgenius/filesystem"
	"github.com/seriesgenius/seriesgenius/where"
)

// LocationPort is the address the selection is mirrored into.
type LocationPort interface {
	Read() (url.Values, error)
	Write(url.Values) error
}

// FileLocation keeps the address in a JSON file, so the last selection
// survives between runs and can be handed over by `link`.
type FileLocation struct {
	cache *gache.Cache[url.Values]
}

// NewFileLocation stores the address at path. An empty path means where.Location().
func NewFileLocation(path string) *FileLocation {
	if path == "" {
		path = where.Location()
	}

	return &FileLocation{
		cache: gache.New[url.Values](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (l *FileLocation) Read() (url.Values, error) {
	values, expired, err := l.cache.Get()
	if err != nil {
		return nil, err
	}

	if expired || values == nil {
		return url.Values{}, nil
	}
	return values, nil
}

func (l *FileLocation) Write(values url.Values) error {
	return l.cache.Set(values)
}

// MemoryLocation is an address held in memory.
type MemoryLocation struct {
	// WriteErr, when set, is returned by every Write.
	WriteErr error

	mu     sync.Mutex
	values url.Values
	writes int
}

// NewMemoryLocation starts at the given address query, e.g. "content=2&episode=e2".
func NewMemoryLocation(query string) *MemoryLocation {
	values, _ := url.ParseQuery(query)
	return &MemoryLocation{values: values}
}

func (l *MemoryLocation) Read() (url.Values, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneValues(l.values), nil
}

func (l *MemoryLocation) Write(values url.Values) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.WriteErr != nil {
		return l.WriteErr
	}

	// replacing the address does not grow any history
	l.values = cloneValues(values)
	l.writes++
	return nil
}

// String returns the encoded address query.
func (l *MemoryLocation) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.values.Encode()
}

// Writes returns how many writes succeeded.
func (l *MemoryLocation) Writes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writes
}

func cloneValues(values url.Values) url.Values {
	clone := make(url.Values, len(values))
	for k, v := range values {
		clone[k] = append([]string(nil), v...)
	}
	return clone
}
