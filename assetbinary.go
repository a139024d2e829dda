// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

// AssetSpec is one character's visual loadout record: a name plus a
// long tail of optional string references (models, textures,
// skeletons, animations, sounds) and optional numeric fields (colors,
// sizes, unidentified flags), each gated by one bit of a presence
// bitmap that grows from 4 bytes to 8 when any field past its first 32
// bits (ClothingSound, Voice, or one of the numeric fields) is present.
type AssetSpec struct {
	Name                        *string
	Conditional1                *string
	Conditional2                *string
	BodyModel                   *string
	BodyTexture                 *string
	HeadModel                   *string
	HeadTexture                 *string
	HairModel                   *string
	HairTexture                 *string
	OuterClothingModel          *string
	OuterClothingTexture        *string
	UnderwearModel              *string
	UnderwearTexture            *string
	MountModel                  *string
	MountTexture                *string
	MountOuterClothingModel     *string
	MountOuterClothingTexture   *string
	WeaponModelDual             *string
	WeaponModel                 *string
	Skeleton                    *string
	MountSkeleton               *string
	Accessory1Model             *string
	Accessory1Texture           *string
	Accessory2Model             *string
	Accessory2Texture           *string
	Accessory3Model             *string
	Accessory3Texture           *string
	AttackAnimation             *string
	AttackAnimation2            *string
	VisualEffect                *string
	HID                         *string
	FootstepSound               *string
	ClothingSound               *string
	Voice                       *string
	HairColor                   [4]byte
	UseHairColor                bool
	SkinColor                   [4]byte
	UseSkinColor                bool
	WeaponTrailColor            [4]byte
	UseWeaponTrailColor         bool
	ModelSize                   float32
	UseModelSize                bool
	HeadSize                    float32
	UseHeadSize                 bool
	PupilY                      float32
	UsePupilY                   bool
	Unk3                        uint32
	UseUnk3                     bool
	Unk4                        uint32
	UseUnk4                     bool
	Unk5                        uint32
	UseUnk5                     bool
	Unk6                        uint32
	UseUnk6                     bool
	Bitflags                    [4]byte
	UseBitflags                 bool
	Unk7                        uint32
	UseUnk7                     bool
	Unk8                        uint32
	UseUnk8                     bool
	Unk9                        uint32
	UseUnk9                     bool
	Unk10                       uint32
	UseUnk10                    bool
	Unk11                       uint32
	UseUnk11                    bool
	Unk12                       uint32
	UseUnk12                    bool
	Unk13                       uint32
	UseUnk13                    bool
}

func readFlagStr(r *Reader, flags []byte, index int) (*string, error) {
	byteIndex := index / 8
	bitIndex := uint(index % 8)
	if byteIndex >= len(flags) || flags[byteIndex]&(1<<bitIndex) == 0 {
		return nil, nil
	}
	return r.ReadOptionalString()
}

func writeFlagStr(w *Writer, value *string) error {
	if value == nil {
		return nil
	}
	return w.WriteString(*value)
}

func readColor(r *Reader) ([4]byte, error) {
	var arr [4]byte
	b, err := r.ReadBytes(4)
	if err != nil {
		return arr, err
	}
	copy(arr[:], b)
	arr[0], arr[2] = arr[2], arr[0]
	return arr, nil
}

func writeColor(w *Writer, color [4]byte) error {
	arr := color
	arr[0], arr[2] = arr[2], arr[0]
	return w.WriteBytes(arr[:])
}

func countBits(b byte) int {
	n := 0
	for i := uint(0); i < 8; i++ {
		if b&(1<<i) != 0 {
			n++
		}
	}
	return n
}

// AssetSpecFromStream decodes one asset spec record from r, returning
// the first error any of its field reads produces (that error is the
// caller's signal that the stream held no further well-formed record).
func AssetSpecFromStream(r *Reader) (*AssetSpec, error) {
	flagCount := 3
	raw, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if raw&0b1 == 1 {
		flagCount += 4
	}
	rest, err := r.ReadBytes(flagCount)
	if err != nil {
		return nil, err
	}
	flags := append([]byte{raw}, rest...)

	spec := &AssetSpec{}
	spec.Name, err = r.ReadOptionalString()
	if err != nil {
		return nil, err
	}

	fields := []**string{
		&spec.Conditional1, &spec.Conditional2, &spec.BodyModel, &spec.BodyTexture,
		&spec.HeadModel, &spec.HeadTexture, &spec.HairModel,
		&spec.HairTexture, &spec.OuterClothingModel, &spec.OuterClothingTexture,
		&spec.UnderwearModel, &spec.UnderwearTexture, &spec.MountModel, &spec.MountTexture,
		&spec.MountOuterClothingModel,
		&spec.MountOuterClothingTexture, &spec.WeaponModelDual, &spec.WeaponModel,
		&spec.Skeleton, &spec.MountSkeleton, &spec.Accessory1Model, &spec.Accessory1Texture,
		&spec.Accessory2Model,
		&spec.Accessory2Texture, &spec.Accessory3Model, &spec.Accessory3Texture,
		&spec.AttackAnimation, &spec.AttackAnimation2, &spec.VisualEffect, &spec.HID,
		&spec.FootstepSound,
	}
	for i, field := range fields {
		v, err := readFlagStr(r, flags, i+1)
		if err != nil {
			return nil, err
		}
		*field = v
	}

	if flagCount > 3 {
		spec.ClothingSound, err = readFlagStr(r, flags, 32)
		if err != nil {
			return nil, err
		}
		spec.Voice, err = readFlagStr(r, flags, 33)
		if err != nil {
			return nil, err
		}
		if flags[4]&0b100 != 0 {
			spec.UseHairColor = true
			if spec.HairColor, err = readColor(r); err != nil {
				return nil, err
			}
		}
		if flags[4]&0b1000 != 0 {
			spec.UseSkinColor = true
			if spec.SkinColor, err = readColor(r); err != nil {
				return nil, err
			}
		}
		if flags[4]&0b10000 != 0 {
			spec.UseWeaponTrailColor = true
			if spec.WeaponTrailColor, err = readColor(r); err != nil {
				return nil, err
			}
		}
		if flags[4]&0b100000 != 0 {
			spec.UseModelSize = true
			if spec.ModelSize, err = r.ReadF32(); err != nil {
				return nil, err
			}
		}
		if flags[4]&0b1000000 != 0 {
			spec.UseHeadSize = true
			if spec.HeadSize, err = r.ReadF32(); err != nil {
				return nil, err
			}
		}
		if flags[4]&0b10000000 != 0 {
			spec.UsePupilY = true
			if spec.PupilY, err = r.ReadF32(); err != nil {
				return nil, err
			}
		}
		if flags[5]&0b1 != 0 {
			spec.UseUnk3 = true
			if spec.Unk3, err = r.ReadU32(); err != nil {
				return nil, err
			}
		}
		if flags[5]&0b10 != 0 {
			spec.UseUnk4 = true
			if spec.Unk4, err = r.ReadU32(); err != nil {
				return nil, err
			}
		}
		if flags[5]&0b100 != 0 {
			spec.UseUnk5 = true
			if spec.Unk5, err = r.ReadU32(); err != nil {
				return nil, err
			}
		}
		if flags[5]&0b1000 != 0 {
			spec.UseUnk6 = true
			if spec.Unk6, err = r.ReadU32(); err != nil {
				return nil, err
			}
		}
		if flags[5]&0b10000 != 0 {
			spec.UseBitflags = true
			if spec.Bitflags, err = readColor(r); err != nil {
				return nil, err
			}
		}
		if flags[5]&0b100000 != 0 {
			spec.UseUnk7 = true
			if spec.Unk7, err = r.ReadU32(); err != nil {
				return nil, err
			}
		}
		if flags[5]&0b1000000 != 0 {
			spec.UseUnk8 = true
			if spec.Unk8, err = r.ReadU32(); err != nil {
				return nil, err
			}
		}
		if flags[5]&0b10000000 != 0 {
			spec.UseUnk9 = true
			if spec.Unk9, err = r.ReadU32(); err != nil {
				return nil, err
			}
		}
		if flags[6]&0b1 != 0 {
			spec.UseUnk10 = true
			if spec.Unk10, err = r.ReadU32(); err != nil {
				return nil, err
			}
		}
		if flags[6]&0b10 != 0 {
			spec.UseUnk11 = true
			if spec.Unk11, err = r.ReadU32(); err != nil {
				return nil, err
			}
		}
		if flags[6]&0b100 != 0 {
			spec.UseUnk12 = true
			if spec.Unk12, err = r.ReadU32(); err != nil {
				return nil, err
			}
		}
		if flags[6]&0b1000 != 0 {
			spec.UseUnk13 = true
			if spec.Unk13, err = r.ReadU32(); err != nil {
				return nil, err
			}
		}
	}

	return spec, nil
}

func (s *AssetSpec) computeFlags() ([]byte, int) {
	flags := make([]byte, 8)
	setBit := func(byteIndex int, bit uint, present bool) {
		if present {
			flags[byteIndex] |= 1 << bit
		}
	}
	setBit(0, 1, s.Conditional1 != nil)
	setBit(0, 2, s.Conditional2 != nil)
	setBit(0, 3, s.BodyModel != nil)
	setBit(0, 4, s.BodyTexture != nil)
	setBit(0, 5, s.HeadModel != nil)
	setBit(0, 6, s.HeadTexture != nil)
	setBit(0, 7, s.HairModel != nil)

	setBit(1, 0, s.HairTexture != nil)
	setBit(1, 1, s.OuterClothingModel != nil)
	setBit(1, 2, s.OuterClothingTexture != nil)
	setBit(1, 3, s.UnderwearModel != nil)
	setBit(1, 4, s.UnderwearTexture != nil)
	setBit(1, 5, s.MountModel != nil)
	setBit(1, 6, s.MountTexture != nil)
	setBit(1, 7, s.MountOuterClothingModel != nil)

	setBit(2, 0, s.MountOuterClothingTexture != nil)
	setBit(2, 1, s.WeaponModelDual != nil)
	setBit(2, 2, s.WeaponModel != nil)
	setBit(2, 3, s.Skeleton != nil)
	setBit(2, 4, s.MountSkeleton != nil)
	setBit(2, 5, s.Accessory1Model != nil)
	setBit(2, 6, s.Accessory1Texture != nil)
	setBit(2, 7, s.Accessory2Model != nil)

	setBit(3, 0, s.Accessory2Texture != nil)
	setBit(3, 1, s.Accessory3Model != nil)
	setBit(3, 2, s.Accessory3Texture != nil)
	setBit(3, 3, s.AttackAnimation != nil)
	setBit(3, 4, s.AttackAnimation2 != nil)
	setBit(3, 5, s.VisualEffect != nil)
	setBit(3, 6, s.HID != nil)
	setBit(3, 7, s.FootstepSound != nil)

	setBit(4, 0, s.ClothingSound != nil)
	setBit(4, 1, s.Voice != nil)
	setBit(4, 2, s.UseHairColor)
	setBit(4, 3, s.UseSkinColor)
	setBit(4, 4, s.UseWeaponTrailColor)
	setBit(4, 5, s.UseModelSize)
	setBit(4, 6, s.UseHeadSize)
	setBit(4, 7, s.UsePupilY)

	setBit(5, 0, s.UseUnk3)
	setBit(5, 1, s.UseUnk4)
	setBit(5, 2, s.UseUnk5)
	setBit(5, 3, s.UseUnk6)
	setBit(5, 4, s.UseBitflags)
	setBit(5, 5, s.UseUnk7)
	setBit(5, 6, s.UseUnk8)
	setBit(5, 7, s.UseUnk9)

	setBit(6, 0, s.UseUnk10)
	setBit(6, 1, s.UseUnk11)
	setBit(6, 2, s.UseUnk12)
	setBit(6, 3, s.UseUnk13)

	if flags[4] == 0 && flags[5] == 0 && flags[6] == 0 {
		flags = flags[:4]
	}

	size := len(flags) + 4
	for _, f := range flags {
		size += countBits(f) * 4
	}
	if len(flags) > 4 {
		flags[0] |= 1
	}
	return flags, size
}

// Append serializes the spec's bitmap, name, and every present field
// onto the end of store.
func (s *AssetSpec) Append(store *Store) error {
	flags, size := s.computeFlags()
	address := store.Size()
	if err := store.AllocateAtEnd(size); err != nil {
		return err
	}
	w := NewWriter(store)
	w.Seek(address)
	if err := w.WriteBytes(flags); err != nil {
		return err
	}
	if err := w.WriteOptionalString(s.Name); err != nil {
		return err
	}

	fields := []*string{
		s.Conditional1, s.Conditional2, s.BodyModel, s.BodyTexture,
		s.HeadModel, s.HeadTexture, s.HairModel,
		s.HairTexture, s.OuterClothingModel, s.OuterClothingTexture,
		s.UnderwearModel, s.UnderwearTexture, s.MountModel, s.MountTexture,
		s.MountOuterClothingModel,
		s.MountOuterClothingTexture, s.WeaponModelDual, s.WeaponModel,
		s.Skeleton, s.MountSkeleton, s.Accessory1Model, s.Accessory1Texture, s.Accessory2Model,
		s.Accessory2Texture, s.Accessory3Model, s.Accessory3Texture,
		s.AttackAnimation, s.AttackAnimation2, s.VisualEffect, s.HID, s.FootstepSound,
	}
	for _, field := range fields {
		if err := writeFlagStr(w, field); err != nil {
			return err
		}
	}

	if len(flags) > 4 {
		if err := writeFlagStr(w, s.ClothingSound); err != nil {
			return err
		}
		if err := writeFlagStr(w, s.Voice); err != nil {
			return err
		}
		if s.UseHairColor {
			if err := writeColor(w, s.HairColor); err != nil {
				return err
			}
		}
		if s.UseSkinColor {
			if err := writeColor(w, s.SkinColor); err != nil {
				return err
			}
		}
		if s.UseWeaponTrailColor {
			if err := writeColor(w, s.WeaponTrailColor); err != nil {
				return err
			}
		}
		if s.UseModelSize {
			if err := w.WriteF32(s.ModelSize); err != nil {
				return err
			}
		}
		if s.UseHeadSize {
			if err := w.WriteF32(s.HeadSize); err != nil {
				return err
			}
		}
		if s.UsePupilY {
			if err := w.WriteF32(s.PupilY); err != nil {
				return err
			}
		}
		if s.UseUnk3 {
			if err := w.WriteU32(s.Unk3); err != nil {
				return err
			}
		}
		if s.UseUnk4 {
			if err := w.WriteU32(s.Unk4); err != nil {
				return err
			}
		}
		if s.UseUnk5 {
			if err := w.WriteU32(s.Unk5); err != nil {
				return err
			}
		}
		if s.UseUnk6 {
			if err := w.WriteU32(s.Unk6); err != nil {
				return err
			}
		}
		if s.UseBitflags {
			if err := writeColor(w, s.Bitflags); err != nil {
				return err
			}
		}
		if s.UseUnk7 {
			if err := w.WriteU32(s.Unk7); err != nil {
				return err
			}
		}
		if s.UseUnk8 {
			if err := w.WriteU32(s.Unk8); err != nil {
				return err
			}
		}
		if s.UseUnk9 {
			if err := w.WriteU32(s.Unk9); err != nil {
				return err
			}
		}
		if s.UseUnk10 {
			if err := w.WriteU32(s.Unk10); err != nil {
				return err
			}
		}
		if s.UseUnk11 {
			if err := w.WriteU32(s.Unk11); err != nil {
				return err
			}
		}
		if s.UseUnk12 {
			if err := w.WriteU32(s.Unk12); err != nil {
				return err
			}
		}
		if s.UseUnk13 {
			if err := w.WriteU32(s.Unk13); err != nil {
				return err
			}
		}
	}
	return nil
}

// AssetBinary is the flat table of asset specs referenced by a single
// asset-spec table file: a format-version/selector word followed by a
// densely packed run of variable-length AssetSpec records.
type AssetBinary struct {
	Flags uint32
	Specs []*AssetSpec
}

// NewAssetBinary returns an empty asset binary.
func NewAssetBinary() *AssetBinary {
	return &AssetBinary{}
}

// AssetBinaryFromArchive decodes every well-formed spec record it can
// read off store, starting right after the leading flags word, and
// stops silently at the first record that fails to parse — that
// failure is how the format signals "no more records" rather than
// carrying an explicit count.
func AssetBinaryFromArchive(store *Store) (*AssetBinary, error) {
	binary := NewAssetBinary()
	r := NewReader(store)
	flags, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	binary.Flags = flags

	for {
		spec, err := AssetSpecFromStream(r)
		if err != nil {
			break
		}
		binary.Specs = append(binary.Specs, spec)
	}
	return binary, nil
}

// AssetBinaryFromBytes decodes a complete asset-spec table file.
func AssetBinaryFromBytes(buf []byte, endian Endian) (*AssetBinary, error) {
	store, err := FromBytes(buf, endian)
	if err != nil {
		return nil, err
	}
	return AssetBinaryFromArchive(store)
}

// Serialize rebuilds a fresh PABA store from the asset binary's flags
// word and spec records.
func (a *AssetBinary) Serialize() ([]byte, error) {
	store := NewStore(LittleEndian)
	if err := store.AllocateAtEnd(4); err != nil {
		return nil, err
	}
	if err := store.WriteU32(0, a.Flags); err != nil {
		return nil, err
	}
	for _, spec := range a.Specs {
		if err := spec.Append(store); err != nil {
			return nil, err
		}
	}
	if err := store.AllocateAtEnd(4); err != nil {
		return nil, err
	}
	return store.Serialize()
}
