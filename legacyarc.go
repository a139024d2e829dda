// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

import "encoding/binary"

const (
	legacyArcMagic        = 0x7061636B // "pack"
	legacyArcBaseHeader   = 8
	legacyArcMetadataSize = 0x10
	legacyArcPaddingBound = 32
)

// LegacyArcBundle is an older-console arc bundle: a flat, big-endian,
// insertion-ordered collection of named files with no PABA store
// underneath it at all — just a magic number, a file count, a fixed
// metadata row per file, a packed Shift-JIS name section, and the raw
// file contents, each section padded to a 32-byte boundary.
type LegacyArcBundle struct {
	keys  []string
	files map[string][]byte
}

// NewLegacyArcBundle returns an empty legacy arc bundle.
func NewLegacyArcBundle() *LegacyArcBundle {
	return &LegacyArcBundle{files: make(map[string][]byte)}
}

// Keys returns every file name in insertion order.
func (b *LegacyArcBundle) Keys() []string {
	return append([]string(nil), b.keys...)
}

// Get returns the contents stored under name.
func (b *LegacyArcBundle) Get(name string) ([]byte, bool) {
	v, ok := b.files[name]
	return v, ok
}

// Set inserts or overwrites the contents stored under name.
func (b *LegacyArcBundle) Set(name string, contents []byte) {
	if _, exists := b.files[name]; !exists {
		b.keys = append(b.keys, name)
	}
	b.files[name] = contents
}

type legacyArcEntryMetadata struct {
	nameAddress       uint32
	fileAddress       uint32
	fileSizeUnpadded  uint32
}

// LegacyArcFromBytes parses a legacy arc bundle.
func LegacyArcFromBytes(raw []byte) (*LegacyArcBundle, error) {
	if len(raw) < legacyArcBaseHeader {
		return nil, ErrArchiveTooSmall
	}
	magic := binary.BigEndian.Uint32(raw[0:4])
	if magic != legacyArcMagic {
		return nil, ErrBadMagic
	}
	fileCount := int(binary.BigEndian.Uint16(raw[4:6]))

	pos := 0x8
	metadata := make([]legacyArcEntryMetadata, 0, fileCount)
	for i := 0; i < fileCount; i++ {
		if pos+legacyArcMetadataSize > len(raw) {
			return nil, ErrArchiveTooSmall
		}
		nameAddress := binary.BigEndian.Uint32(raw[pos+4 : pos+8])
		fileAddress := binary.BigEndian.Uint32(raw[pos+8 : pos+12])
		fileSize := binary.BigEndian.Uint32(raw[pos+12 : pos+16])
		metadata = append(metadata, legacyArcEntryMetadata{nameAddress, fileAddress, fileSize})
		pos += legacyArcMetadataSize
	}

	bundle := NewLegacyArcBundle()
	for _, entry := range metadata {
		name, _, err := readShiftJISAt(raw, int(entry.nameAddress))
		if err != nil {
			return nil, err
		}
		start := int(entry.fileAddress)
		end := start + int(entry.fileSizeUnpadded)
		if end > len(raw) {
			return nil, ErrArchiveTooSmall
		}
		contents := make([]byte, entry.fileSizeUnpadded)
		copy(contents, raw[start:end])
		bundle.Set(name, contents)
	}
	return bundle, nil
}

// Serialize rebuilds a legacy arc bundle's bytes: the header and
// per-file metadata rows, then the packed name section, then the file
// contents, each of the latter two sections padded up to a 32-byte
// boundary.
func (b *LegacyArcBundle) Serialize() ([]byte, error) {
	headerLength := legacyArcBaseHeader + len(b.keys)*legacyArcMetadataSize

	var rawText []byte
	textAddresses := make([]int, 0, len(b.keys))
	for _, k := range b.keys {
		offset := headerLength + len(rawText)
		textAddresses = append(textAddresses, offset)
		encoded, err := EncodeShiftJIS(k)
		if err != nil {
			return nil, err
		}
		rawText = append(rawText, encoded...)
		rawText = append(rawText, 0)
	}
	for (headerLength+len(rawText))%legacyArcPaddingBound != 0 {
		rawText = append(rawText, 0)
	}

	nextFileAddress := headerLength + len(rawText)
	var rawFiles []byte
	type fileInfo struct {
		address      int
		sizeUnpadded int
	}
	fileInfos := make([]fileInfo, 0, len(b.keys))
	for _, k := range b.keys {
		contents := b.files[k]
		fileInfos = append(fileInfos, fileInfo{nextFileAddress, len(contents)})
		rawFiles = append(rawFiles, contents...)
		for (headerLength+len(rawText)+len(rawFiles))%legacyArcPaddingBound != 0 {
			rawFiles = append(rawFiles, 0)
		}
		nextFileAddress = headerLength + len(rawText) + len(rawFiles)
	}

	out := make([]byte, 0, headerLength+len(rawText)+len(rawFiles))
	var magicBuf [4]byte
	binary.BigEndian.PutUint32(magicBuf[:], legacyArcMagic)
	out = append(out, magicBuf[:]...)
	var countBuf [2]byte
	binary.BigEndian.PutUint16(countBuf[:], uint16(len(b.keys)))
	out = append(out, countBuf[:]...)
	out = append(out, 0, 0)

	for i := range b.keys {
		out = append(out, 0, 0, 0, 0)
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(textAddresses[i]))
		out = append(out, buf[:]...)
		binary.BigEndian.PutUint32(buf[:], uint32(fileInfos[i].address))
		out = append(out, buf[:]...)
		binary.BigEndian.PutUint32(buf[:], uint32(fileInfos[i].sizeUnpadded))
		out = append(out, buf[:]...)
	}
	out = append(out, rawText...)
	out = append(out, rawFiles...)
	return out, nil
}
