// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

// arcEntry is one file's metadata row inside a grouped arc bundle's
// Info table.
type arcEntry struct {
	name    string
	index   uint32
	size    uint32
	address uint32
}

// ArcFromBytes unpacks a grouped arc bundle into a name-to-contents
// map. Grouped arc bundles are PABA archives in their own right: the
// file count lives under a "Count" label and the per-file metadata rows
// live under an "Info" label. Archives whose very first data word is
// zero carry an extra 0x60-byte padding region before file contents
// that every file address must be adjusted by.
func ArcFromBytes(buf []byte) (map[string][]byte, error) {
	store, err := FromBytes(buf, LittleEndian)
	if err != nil {
		return nil, err
	}

	countAddr, ok := store.FindLabelAddress("Count")
	if !ok {
		return nil, ErrNoCount
	}
	infoAddr, ok := store.FindLabelAddress("Info")
	if !ok {
		return nil, ErrNoInfo
	}

	firstWord, err := store.ReadU32(0)
	if err != nil {
		return nil, err
	}
	headerPadding := uint32(0)
	if firstWord == 0 {
		headerPadding = 0x60
	}

	r := NewReader(store)
	r.Seek(countAddr)
	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	r.Seek(infoAddr)

	entries := make([]arcEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		name, err := r.ReadOptionalString()
		if err != nil {
			return nil, err
		}
		if name == nil {
			return nil, ErrMissingName
		}
		index, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		size, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		address, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		entries = append(entries, arcEntry{*name, index, size, address + headerPadding})
	}

	files := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		r.Seek(int(entry.address))
		contents, err := r.ReadBytes(int(entry.size))
		if err != nil {
			return nil, err
		}
		files[entry.name] = contents
	}
	return files, nil
}
