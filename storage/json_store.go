package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf16"
	"unicode/utf8"

	"eatery-scraper/models"
)

// ErrEmptyPath is returned when a collection path is not set.
var ErrEmptyPath = errors.New("storage: empty collection path")

const indent = "    "

// JSONStore persists collections as a JSON array with lexicographically
// sorted object keys and 4-space indentation. Other tools diff these files,
// so the output is byte-stable for equal input.
type JSONStore struct{}

func NewJSONStore() *JSONStore {
	return &JSONStore{}
}

// Load reads the whole collection. Malformed JSON is fatal to the stage.
func (s *JSONStore) Load(path string) ([]*models.Eatery, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", path, err)
	}

	var records []*models.Eatery
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("storage: decode %q: %w", path, err)
	}
	if records == nil {
		records = []*models.Eatery{}
	}
	return records, nil
}

// Save replaces the collection at path. The file is written to a sibling
// temp file first and renamed into place so a crash never leaves half a
// collection behind.
func (s *JSONStore) Save(path string, records []*models.Eatery) error {
	if path == "" {
		return ErrEmptyPath
	}
	data, err := Encode(records)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("storage: create output dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("storage: write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage: replace %q: %w", path, err)
	}
	return nil
}

// Encode renders records in the persisted collection format.
func Encode(records []*models.Eatery) ([]byte, error) {
	if records == nil {
		records = []*models.Eatery{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("storage: encode: %w", err)
	}
	return Canonicalize(raw)
}

// Canonicalize re-renders any JSON document with sorted keys, 4-space
// indentation, unescaped HTML characters, non-ASCII characters escaped as
// \uXXXX, and no trailing newline. Number literals are preserved as written.
func Canonicalize(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("storage: canonicalize: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(generic); err != nil {
		return nil, fmt.Errorf("storage: canonicalize: %w", err)
	}
	return escapeNonASCII(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// escapeNonASCII rewrites every non-ASCII rune as a lowercase \uXXXX escape,
// using a surrogate pair outside the basic plane. Such runes only occur
// inside JSON strings, so the document stays valid.
func escapeNonASCII(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		if b[0] < utf8.RuneSelf {
			out = append(out, b[0])
			b = b[1:]
			continue
		}
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			out = fmt.Appendf(out, `\u%04x\u%04x`, r1, r2)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}
