package snapshot

import (
	"cmp"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"golang.org/x/exp/mmap"

	"github.com/viif/xsf-skip-list/skiplist"
)

// DefaultPath is where the original tooling keeps its snapshot.
const DefaultPath = "store/dumpFile"

// Dump writes the entries to path, creating parent directories as
// needed. The file is synced before close; this is a best-effort
// snapshot, not a write-ahead log.
func Dump[K cmp.Ordered, V any](path string, entries iter.Seq2[K, V]) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}

	if err := Write(f, entries); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync snapshot file: %w", err)
	}
	return f.Close()
}

// Load memory-maps the snapshot at path and replays every decoded pair
// into dst through Put, in file order. It returns the number of entries
// loaded.
func Load[K cmp.Ordered, V any](path string, parseKey ParseFunc[K], parseValue ParseFunc[V], dst skiplist.OrderedIndex[K, V]) (int, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	r := io.NewSectionReader(f, 0, int64(f.Len()))
	loaded := 0
	for entry, err := range Read(r, parseKey, parseValue) {
		if err != nil {
			return loaded, err
		}
		dst.Put(entry.Key, entry.Value)
		loaded++
	}
	return loaded, nil
}
