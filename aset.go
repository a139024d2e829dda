// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package paba

// FE14AnimationNames is the fixed 257-entry clip name table carried by
// the newer-generation animation-set file.
var FE14AnimationNames = []string{
	"label",
	"ready",
	"idle_normal",
	"pre_battle_3",
	"idle_dying",
	"run",
	"backstep",
	"forward_step",
	"attack_1",
	"attack_2",
	"attack_t",
	"attack_s",
	"attack_c",
	"attack_f",
	"shoot",
	"shoot_c",
	"evasion",
	"dmg_none",
	"dmg_mid",
	"dmg_high",
	"die",
	"start",
	"win",
	"charge",
	"discharge",
	"cheer",
	"attack_d",
	"attack_dc",
	"deform",
	"sing",
	"shoot_d",
	"shoot_dc",
	"pre_battle_6",
	"standing",
	"walking",
	"small_step_right",
	"large_step_right",
	"small_step_left",
	"large_step_left",
	"talk_1",
	"talk_2",
	"nodding",
	"shaking_head",
	"looking_back",
	"looking_forward",
	"looking_down",
	"falling_into_valley",
	"falling_down",
	"looking_around",
	"jumping_down",
	"landing",
	"grand_gesture",
	"worrying",
	"surprised",
	"retreating",
	"standing_up",
	"arguing",
	"looking_up",
	"bathing_1",
	"sit_down_on_chair",
	"sleeping",
	"sitting_and_talking_1",
	"tiring_1",
	"tiring_2",
	"tiring_3",
	"blown_away",
	"peering_1",
	"peering_2",
	"peering_3",
	"sitting_down_on_chair",
	"standing_from_chair",
	"rising_from_the_dead",
	"rising_from_sleep",
	"sleeping_to_sitting",
	"lying_down_to_vertical_back",
	"talking_with_vertical_back",
	"while_corrin_is_touching_face_1",
	"standing_after_corrin_touches_face",
	"collapsing",
	"flustered",
	"flustered_2",
	"武器を突き出す",
	"武器を戻す",
	"半身起き悩み",
	"半身起き驚き",
	"半身起き驚き留まる",
	"深呼吸",
	"回転",
	"呪文を唱える",
	"跪く",
	"背中を叩く",
	"叩かれてのけぞる",
	"庇う",
	"馬移動1",
	"座って話す2",
	"慌て留まる",
	"ベッドに座る1",
	"よろける",
	"構える",
	"ベッドに座る2",
	"腕を掲げる",
	"慌て上半身上げ2待機",
	"慌て上半身上げ2",
	"よつんばい",
	"よつんばい→見渡す",
	"怯える",
	"顔を撫でる1",
	"慌て上半身上げ",
	"構え振り向き",
	"歌う1",
	"歌う3",
	"死亡→跪く",
	"歌う2",
	"泣く",
	"叩かれてのけぞる2",
	"ベッドに寝る",
	"入浴苦しむ1",
	"入浴苦しむ2",
	"喜ぶ2",
	"跪くうつむく",
	"首横振り武器持ち",
	"手振り武器持ち",
	"話す武器持ち",
	"掲げ戻す",
	"構えよろける",
	"へたりこむ",
	"喜ぶ",
	"手を持つ",
	"飛ぶ1",
	"飛ぶ受け取る",
	"構え嘆く",
	"戴冠式1",
	"戴冠式2",
	"上昇",
	"倒れる",
	"驚く2",
	"扉につく1",
	"死亡1",
	"庇う2",
	"構え見回す1",
	"戦闘態勢のまま下を向く",
	"構えよろける2",
	"腕を胸に当てる",
	"クラスチェンジ体勢1",
	"クラスチェンジ体勢2",
	"寝返り",
	"横たわる",
	"抱きしめる",
	"強く抱きしめる",
	"雷を受けよろける",
	"谷に落ちる2",
	"顔を撫でる2",
	"跪く頷く",
	"よろけ頷く",
	"上半身起き→倒れ",
	"膝立ち待機",
	"膝立ち叫び",
	"膝立ち叫び2",
	"膝立ち叫び3",
	"横たわる死",
	"横たわる死_待機",
	"横たわる死_待機2",
	"脅され待機",
	"風神弓を前に出す",
	"自刃1",
	"自刃2",
	"自刃3",
	"自刃4",
	"膝立ち待機沈む",
	"聞き耳1",
	"聞き耳2",
	"跪く→立つ",
	"よつんばい→首振り",
	"よつんばい→立つ",
	"よつんばい前を見る",
	"none1",
	"よつんばい立ち待機",
	"ショップ用立ち",
	"思い出す",
	"手を持つ2",
	"手を持つ3",
	"手を持つ4",
	"手を持つ5",
	"谷底を覗く",
	"馬と谷に落ちる",
	"攻撃1",
	"攻撃2",
	"跪く待機",
	"リリスに乗る",
	"跪く話す1",
	"跪く話す2",
	"跪く首振り",
	"抱きしめる2",
	"抱きしめる3",
	"抱きしめる4",
	"かがむ",
	"ベッドに座って話す1",
	"手を持つ6",
	"お辞儀",
	"飛び込む",
	"かがむ戻り",
	"ベッドに座って話す2",
	"部分竜化1",
	"部分竜化2",
	"部分竜化3",
	"入浴飛び込む",
	"神託受ける",
	"吹雪の中を歩く",
	"武器を抜く1",
	"武器を抜く2",
	"捉える1",
	"捉える2",
	"囚われる",
	"武器破壊1",
	"武器破壊2",
	"片手を前に出す",
	"片手を前に出して待機",
	"風神弓を掲げる",
	"木に寄りかかり座る",
	"木に寄りかかり座る→待機",
	"木に寄りかかり座る→立つ",
	"立ち_エンディング用",
	"頷く_エンディング用",
	"話す_エンディング用",
	"跪いて抱きかかえる",
	"跪いて抱きかかえる—泣く",
	"切腹死",
	"イベント用吹っ飛びダメージ",
	"イベント用攻撃モーション",
	"威嚇",
	"剣を調べる",
	"花をつける",
	"剣寸止め",
	"剣寸止め待機",
	"剣寸止め戻し",
	"リリス水に潜る1",
	"リリス水に潜る2",
	"リリス気付く",
	"ダメージ落下1",
	"ダメージ落下2",
	"落下中魔法攻撃",
	"座って話す3",
	"武器持ち待機",
	"武器持ち会話1",
	"武器持ち会話2",
	"あたりを見回す2",
	"リリス食事",
	"リリス喜ぶ",
	"店番_いらっしゃい",
	"店番_待機",
	"店番_ありがとう",
	"温泉_会話A1",
	"温泉_会話A2",
	"温泉_会話B1",
	"温泉_会話B2",
	"ポーズ1",
	"none2",
}

// FE15AnimationNames is the fixed 97-entry clip name table carried by
// the later-generation animation-set file.
var FE15AnimationNames = []string{
	"label",
	"IdleNormal",
	"IdleDying",
	"Attack1a",
	"Attack1b",
	"Attack2a",
	"Attack3a",
	"AttackT",
	"AttackC",
	"AttackF",
	"CounterN",
	"CounterE",
	"Backstep",
	"Charge",
	"Thanks",
	"Die",
	"Discharge",
	"DmgHig1",
	"DmgHig2",
	"DmgMid1",
	"DmgMid2",
	"DmgNon",
	"Repelled",
	"Run",
	"EvasionB",
	"EvasionL",
	"EvasionR",
	"TurnL",
	"TurnR",
	"Shoot",
	"ShootC",
	"Start",
	"Win",
	"Special1",
	"Final",
	"予備3",
	"予備4",
	"予備5",
	"TriangleA",
	"TriangleB",
	"TriangleC",
	"IdleNormalD",
	"WalkD",
	"RunD",
	"DashD",
	"TackleD",
	"StopD",
	"FindD",
	"Attack1D",
	"Attack2D",
	"Attack3D",
	"Attack4D",
	"Attack5D",
	"IdleStartD",
	"ClassChange",
	"EnterD",
	"Jump1D",
	"Jump2D",
	"Jump3D",
	"Unused1",
	"Unused2",
	"Unused3",
	"Unused4",
	"Unused5",
	"Unused6",
	"S01_OP_A",
	"S01_OP_B",
	"Unused7",
	"S02_EV01_A",
	"Unused8",
	"S03_BT01_A",
	"S03_BT01_B",
	"Unused9",
	"S03_BT02_A",
	"S03_BT02_B",
	"Unused10",
	"S05_EV_A",
	"S05_EV_B",
	"S05_EV_C",
	"Unused11",
	"S05_EV02_A",
	"S05_EV02_B",
	"Unused12",
	"S05_EV03_A",
	"S05_EV03_B",
	"S05_EV03_C",
	"Unused13",
	"S05_EV04_A",
	"Unused14",
	"T01_A",
	"T01_B",
	"Unused15",
	"T02_A",
	"T02_B",
	"Unused16",
	"S00_END_A",
	"S00_END_B",
}

// AnimationSet is one entry of an ASetFile: slot 0 is the set's own
// label, slots 1..256 are the optional clip names selected by the two
// levels of bitmap (8 sub-flag words of 32 bits each) that an
// animation-set file packs onto disk.
type AnimationSet []*string

// ASetFile is a per-character animation-set file: a fixed 257-entry
// clip name table, an optional metadata string, and a sequence of
// sparsely-populated animation sets keyed against that table.
type ASetFile struct {
	Meta          *string
	AnimClipTable []*string
	Sets          []AnimationSet
}

// NewASetFile returns an empty animation-set file with meta as its
// metadata string.
func NewASetFile(meta *string) *ASetFile {
	return &ASetFile{Meta: meta}
}

// ASetFileFromBytes decodes a complete animation-set file.
func ASetFileFromBytes(buf []byte, endian Endian) (*ASetFile, error) {
	store, err := FromBytes(buf, endian)
	if err != nil {
		return nil, err
	}

	tableAddr, ok := store.FindLabelAddress("AnimClipNameTable")
	if !ok {
		return nil, ErrBadAnimClipTable
	}

	r := NewReader(store)
	r.Skip(4)
	meta, err := r.ReadOptionalString()
	if err != nil {
		return nil, err
	}
	aset := NewASetFile(meta)

	r.Seek(tableAddr)
	for i := 0; i < 257; i++ {
		name, err := r.ReadOptionalString()
		if err != nil {
			return nil, err
		}
		aset.AnimClipTable = append(aset.AnimClipTable, name)
	}

	for r.Tell() < store.Size() {
		var set AnimationSet
		if name, ok := store.OptionalLabel(r.Tell(), 0); ok {
			set = append(set, &name)
		} else {
			set = append(set, nil)
		}

		mainFlags, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		for i := uint(0); i < 8; i++ {
			if mainFlags&(1<<i) == 0 {
				for j := 0; j < 32; j++ {
					set = append(set, nil)
				}
				continue
			}
			flags, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			for bit := uint(0); bit < 32; bit++ {
				if flags&(1<<bit) != 0 {
					name, err := r.ReadOptionalString()
					if err != nil {
						return nil, err
					}
					set = append(set, name)
				} else {
					set = append(set, nil)
				}
			}
		}
		aset.Sets = append(aset.Sets, set)
	}

	return aset, nil
}

func (set AnimationSet) at(index int) *string {
	if index < 0 || index >= len(set) {
		return nil
	}
	return set[index]
}

// Serialize rebuilds a fresh PABA store from the animation-set file's
// clip table and sets.
func (a *ASetFile) Serialize() ([]byte, error) {
	store := NewStore(LittleEndian)
	if err := store.AllocateAtEnd(12); err != nil {
		return nil, err
	}
	if err := store.WriteU32(0, 4); err != nil {
		return nil, err
	}
	if err := store.WriteOptionalString(4, a.Meta); err != nil {
		return nil, err
	}
	if err := store.WriteU32(8, 0x100); err != nil {
		return nil, err
	}

	if err := store.AllocateAtEnd(len(a.AnimClipTable) * 4); err != nil {
		return nil, err
	}
	w := NewWriter(store)
	w.Seek(12)
	if err := w.WriteLabel("AnimClipNameTable"); err != nil {
		return nil, err
	}
	for _, name := range a.AnimClipTable {
		if err := w.WriteOptionalString(name); err != nil {
			return nil, err
		}
	}

	for _, set := range a.Sets {
		var mainFlags uint32
		flagsToWrite := 0
		stringsToWrite := 0
		compiledFlags := make([]uint32, 8)
		for flagSet := 0; flagSet < 8; flagSet++ {
			var setFlags uint32
			for bit := 0; bit < 32; bit++ {
				index := flagSet*32 + bit + 1
				if set.at(index) != nil {
					setFlags |= 1 << uint(bit)
					stringsToWrite++
				}
			}
			compiledFlags[flagSet] = setFlags
			if setFlags != 0 {
				mainFlags |= 1 << uint(flagSet)
				flagsToWrite++
			}
		}

		if err := w.Allocate((flagsToWrite + stringsToWrite + 1) * 4); err != nil {
			return nil, err
		}
		if label := set.at(0); label != nil {
			if err := w.WriteLabel(*label); err != nil {
				return nil, err
			}
		}
		if err := w.WriteU32(mainFlags); err != nil {
			return nil, err
		}
		for flagSet := 0; flagSet < 8; flagSet++ {
			flag := compiledFlags[flagSet]
			if flag == 0 {
				continue
			}
			if err := w.WriteU32(flag); err != nil {
				return nil, err
			}
			for bit := 0; bit < 32; bit++ {
				index := flagSet*32 + bit + 1
				if v := set.at(index); v != nil {
					if err := w.WriteString(*v); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return store.Serialize()
}
