// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

import "strings"

// TextArchive is a labeled collection of localized strings built on top
// of a Store. The modern variant carries a Shift-JIS title and encodes
// each message as UTF-16LE; the legacy variant has no title and encodes
// every message as Shift-JIS. Both preserve the order entries were
// first inserted in, since in-game dialogue systems frequently depend
// on positional indices into the table rather than the label names.
type TextArchive struct {
	Title   string
	Legacy  bool
	endian  Endian
	keys    []string
	entries map[string]string
	dirty   bool
}

// NewTextArchive returns an empty text archive. Legacy archives have no
// title and encode messages as Shift-JIS; modern archives carry a
// Shift-JIS title and encode messages as UTF-16LE.
func NewTextArchive(legacy bool, endian Endian, title string) *TextArchive {
	return &TextArchive{
		Title:   title,
		Legacy:  legacy,
		endian:  endian,
		entries: make(map[string]string),
	}
}

// Keys returns every entry key in insertion order.
func (t *TextArchive) Keys() []string {
	return append([]string(nil), t.keys...)
}

// GetMessage returns the message stored under key, with its raw
// newlines escaped to the literal two-character sequence "\\n" the way
// the in-game text renderer expects callers to see them.
func (t *TextArchive) GetMessage(key string) (string, bool) {
	v, ok := t.entries[key]
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(v, "\n", "\\n"), true
}

// SetMessage inserts or overwrites the message stored under key,
// un-escaping any literal "\\n" sequence back to a raw newline before
// storing it (entries are kept on disk with real newline code units).
// Marks the archive dirty.
func (t *TextArchive) SetMessage(key, message string) {
	unescaped := strings.ReplaceAll(message, "\\n", "\n")
	if _, exists := t.entries[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = unescaped
	t.dirty = true
}

// IsDirty reports whether SetMessage has been called since the archive
// was loaded or created.
func (t *TextArchive) IsDirty() bool { return t.dirty }

func readAlignedString(store *Store, position int, utf16 bool) (string, int, error) {
	r := &sliceByteReader{buf: store.data, pos: position}
	var (
		s   string
		err error
	)
	if utf16 {
		s, err = ReadNullTerminatedUTF16(r)
	} else {
		s, err = ReadNullTerminatedShiftJIS(r)
	}
	if err != nil {
		return "", 0, err
	}
	next := r.pos
	for next%4 != 0 {
		next++
	}
	return s, next, nil
}

func appendAlignedString(w *Writer, s string, utf16 bool) error {
	var (
		encoded []byte
		err     error
	)
	if utf16 {
		encoded, err = EncodeUTF16(s)
		if err != nil {
			return err
		}
		encoded = append(encoded, 0, 0)
	} else {
		encoded, err = EncodeShiftJIS(s)
		if err != nil {
			return err
		}
		encoded = append(encoded, 0)
	}
	for len(encoded)%4 != 0 {
		encoded = append(encoded, 0)
	}
	if err := w.Allocate(len(encoded)); err != nil {
		return err
	}
	return w.WriteBytes(encoded)
}

// TextArchiveFromBytes decodes a complete text archive, including the
// underlying PABA store it is built on. legacy selects the Shift-JIS
// entry, no-title variant; otherwise the UTF-16 entry, Shift-JIS title
// variant is assumed.
func TextArchiveFromBytes(buf []byte, endian Endian, legacy bool) (*TextArchive, error) {
	store, err := FromBytes(buf, endian)
	if err != nil {
		return nil, err
	}

	t := NewTextArchive(legacy, endian, "")
	position := 0

	if !legacy {
		title, next, err := readAlignedString(store, position, false)
		if err != nil {
			return nil, err
		}
		t.Title = title
		position = next
	}

	for position < store.Size() {
		labels := store.ReadLabels(position)
		message, next, err := readAlignedString(store, position, !legacy)
		if err != nil {
			return nil, err
		}
		// An entry with no label at its position is an orphan: it is
		// skipped rather than recorded, but the scan still advances
		// past it so later, properly labeled entries are not lost.
		if len(labels) > 0 {
			key := labels[0]
			if _, exists := t.entries[key]; !exists {
				t.keys = append(t.keys, key)
				t.entries[key] = message
			}
		}
		position = next
	}

	return t, nil
}

// Serialize rebuilds a fresh PABA store from the archive's entries and
// returns its bytes: the title (modern variant only), then each
// entry's message in insertion order, each preceded by a label carrying
// its key.
func (t *TextArchive) Serialize() ([]byte, error) {
	store := NewStore(t.endian)
	w := NewWriter(store)

	if !t.Legacy {
		if err := appendAlignedString(w, t.Title, false); err != nil {
			return nil, err
		}
	}

	for _, key := range t.keys {
		if err := w.WriteLabel(key); err != nil {
			return nil, err
		}
		if err := appendAlignedString(w, t.entries[key], !t.Legacy); err != nil {
			return nil, err
		}
	}

	return store.Serialize()
}
