// Package countrymeta keeps a static table of per-country enrichment
// data: calling codes, capitals, bordering countries and flag
// references. The table is produced offline from public country data
// and is loaded once on startup. It never changes afterwards, so
// lookups are safe from any number of goroutines.
package countrymeta

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/juju/errors"
)

// Flag keeps references to flag images for a country plus an optional
// precomputed emoji and its code point spelling.
type Flag struct {
	SVG          string `json:"svg"`
	PNG          string `json:"png"`
	Emoji        string `json:"emoji"`
	EmojiUnicode string `json:"emoji_unicode"`
}

// Entry is everything we know about a single country, keyed by its
// ISO 3166-1 alpha-2 code.
type Entry struct {
	Name        string   `json:"name"`
	CallingCode string   `json:"calling_code"`
	Capital     string   `json:"capital"`
	Borders     []string `json:"borders"`
	Flag        Flag     `json:"flag"`
}

// Table is an immutable country code -> Entry mapping.
type Table struct {
	entries map[string]Entry
}

// Get returns an entry for the given ISO code. Code case does not
// matter. A miss is not an error, callers simply omit the metadata.
func (t *Table) Get(code string) (Entry, bool) {
	entry, ok := t.entries[strings.ToUpper(code)]
	return entry, ok
}

// Len returns a number of countries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Load reads the metadata file. A missing or malformed file is fatal:
// the service refuses to start with a corrupt table instead of
// silently serving responses without metadata.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "Cannot open country metadata file %s", path)
	}
	defer file.Close()

	raw := map[string]Entry{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return nil, errors.Annotatef(err, "Cannot parse country metadata file %s", path)
	}

	entries := make(map[string]Entry, len(raw))
	for code, entry := range raw {
		entries[strings.ToUpper(code)] = entry
	}

	return &Table{entries: entries}, nil
}
