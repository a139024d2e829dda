// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

import "errors"

// Sentinel errors returned by the store, the streaming reader/writer,
// the encoded-string codec, and the higher-level archive formats built
// on top of them. Callers should compare against these with errors.Is;
// address and value context, when available, is attached with
// fmt.Errorf's %w verb rather than carried as struct fields.
var (
	// ErrArchiveTooSmall is returned when a buffer handed to FromBytes
	// is smaller than the fixed 0x20-byte header, or too small to hold
	// the sections the header describes.
	ErrArchiveTooSmall = errors.New("paba: archive is too small to contain a valid header")

	// ErrSizeMismatch is returned when the total-size field in the
	// header does not match the length of the buffer being parsed.
	ErrSizeMismatch = errors.New("paba: header size field does not match buffer length")

	// ErrOutOfBoundsAddress is returned by any accessor given an
	// address at or beyond the end of the data section (or, for
	// labels, strictly beyond it).
	ErrOutOfBoundsAddress = errors.New("paba: address is out of bounds")

	// ErrUnalignedValue is returned when Allocate/Deallocate is given
	// an address or byte count that is not a multiple of 4, or when a
	// scalar accessor is given a misaligned address for its width.
	ErrUnalignedValue = errors.New("paba: value is not aligned to the required boundary")

	// ErrLabelIndexOutOfBounds is returned by DeleteLabel when the
	// requested index does not exist in the bucket at that address.
	ErrLabelIndexOutOfBounds = errors.New("paba: label index is out of bounds")

	// ErrComparisonFailure is returned by AssertEqualRegions at the
	// first 4-byte cell where the two stores disagree.
	ErrComparisonFailure = errors.New("paba: regions are not equal")

	// ErrUnterminatedString is returned by the encoded-string codec
	// when the buffer runs out before a null terminator is found.
	ErrUnterminatedString = errors.New("paba: fell out of buffer while reading a null-terminated string")

	// ErrEncodingFailed is returned when a string cannot be represented
	// in the target encoding.
	ErrEncodingFailed = errors.New("paba: failed to encode string")

	// ErrDecodingFailed is returned when a byte sequence cannot be
	// decoded as valid text in the expected encoding.
	ErrDecodingFailed = errors.New("paba: failed to decode string")

	// ErrConversionError is returned when a slice handed to the endian
	// codec is not exactly the expected width.
	ErrConversionError = errors.New("paba: slice has the wrong width for this conversion")

	// ErrMissingKey names a text archive entry with no label.
	// TextArchiveFromBytes does not return it: it skips such entries.
	ErrMissingKey = errors.New("paba: text archive entry has no key")

	// ErrMissingName is returned when a grouped arc bundle entry has no
	// name pointer.
	ErrMissingName = errors.New("paba: arc entry has no name")

	// ErrNoCount is returned when a grouped arc bundle has no Count label.
	ErrNoCount = errors.New("paba: arc archive has no Count label")

	// ErrNoInfo is returned when a grouped arc bundle has no Info label.
	ErrNoInfo = errors.New("paba: arc archive has no Info label")

	// ErrBadAnimClipTable is returned when an animation-set file has no
	// AnimClipNameTable label.
	ErrBadAnimClipTable = errors.New("paba: animation set file has no AnimClipNameTable label")

	// ErrBadMagic is returned when a legacy arc bundle's magic number
	// does not match "pack".
	ErrBadMagic = errors.New("paba: legacy arc bundle has an invalid magic number")
)
