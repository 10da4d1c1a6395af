package form

// LeveledFlag is leveled list flags field. Only three lower bits have known
// meaning, the rest are still kept and reported.
type LeveledFlag uint8

const (
	LeveledFlagCalculateFromAllLevels LeveledFlag = 1 << iota
	LeveledFlagCalculateForEachItem
	LeveledFlagUseAll
	LeveledFlagUnknown3
	LeveledFlagUnknown4
	LeveledFlagUnknown5
	LeveledFlagUnknown6
	LeveledFlagUnknown7
)

// Set returns flags present in f one bit at a time, lowest bit first.
func (f LeveledFlag) Set() []LeveledFlag {
	var out []LeveledFlag
	// uint to avoid wrapping after the top bit
	for bit := uint(1); bit <= 0x80; bit <<= 1 {
		if f.Has(LeveledFlag(bit)) {
			out = append(out, LeveledFlag(bit))
		}
	}
	return out
}

// Bit returns position of the single bit set in f or -1.
func (f LeveledFlag) Bit() int {
	for i := range 8 {
		if f == 1<<i {
			return i
		}
	}
	return -1
}

// Has reports if all bits of flag are set in f.
func (f LeveledFlag) Has(flag LeveledFlag) bool {
	return f&flag == flag
}
