// Package snapshot serializes the ordered entries of an index to a
// line-oriented text file and replays such a file back into an index.
//
// The format is one "key:value" line per entry, newline terminated.
// Nothing is escaped: the split is at the first ':', so keys containing
// ':' (or values whose text form contains a newline) do not round-trip.
// The format is shared with older tooling and must stay byte-compatible.
package snapshot

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/viif/xsf-skip-list/skiplist"
)

const separator = ":"

// ParseFunc decodes one text field into a key or value.
type ParseFunc[T any] func(s string) (T, error)

func String(s string) (string, error) { return s, nil }

func Int(s string) (int, error) { return strconv.Atoi(s) }

func Int64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func Float64(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// Write emits one line per entry in the order the sequence yields them.
// Passing an index's ascending traversal produces a sorted snapshot.
func Write[K cmp.Ordered, V any](w io.Writer, entries iter.Seq2[K, V]) error {
	bw := bufio.NewWriter(w)
	for k, v := range entries {
		if _, err := fmt.Fprintf(bw, "%v%s%v\n", k, separator, v); err != nil {
			return fmt.Errorf("failed to write snapshot entry: %w", err)
		}
	}
	return bw.Flush()
}

// Read streams the decoded entries of a snapshot. Malformed lines
// (missing separator, empty key or value, unparseable field) are
// skipped rather than failing the whole load; an I/O error ends the
// sequence with a non-nil error.
func Read[K cmp.Ordered, V any](r io.Reader, parseKey ParseFunc[K], parseValue ParseFunc[V]) iter.Seq2[skiplist.Entry[K, V], error] {
	return func(yield func(skiplist.Entry[K, V], error) bool) {
		s := bufio.NewScanner(r)
		for s.Scan() {
			rawKey, rawValue, ok := splitLine(s.Text())
			if !ok {
				continue
			}
			key, err := parseKey(rawKey)
			if err != nil {
				continue
			}
			value, err := parseValue(rawValue)
			if err != nil {
				continue
			}
			if !yield(skiplist.Entry[K, V]{Key: key, Value: value}, nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(skiplist.Entry[K, V]{}, fmt.Errorf("failed to read snapshot: %w", err))
		}
	}
}

func splitLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, separator)
	if !found || key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}
