package form

import (
	"testing"
)

func TestParseFormType(t *testing.T) {
	tests := []struct {
		in      string
		want    FormType
		wantErr bool
	}{
		{"LVLI", FormTypeLVLI, false},
		{"lvln", FormTypeLVLN, false},
		{" LVSP ", FormTypeLVSP, false},
		{"flst", FormTypeFLST, false},
		{"NPC_", FormTypeNPC, false},
		{"XXXX", FormTypeNone, true},
		{"", FormTypeNone, true},
	}
	for _, tt := range tests {
		got, err := ParseFormType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormType_Text(t *testing.T) {
	var ft FormType
	if err := ft.UnmarshalText([]byte("weap")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if ft != FormTypeWEAP {
		t.Errorf("UnmarshalText() = %v, want WEAP", ft)
	}
	text, _ := FormTypeNPC.MarshalText()
	if string(text) != "NPC_" {
		t.Errorf("MarshalText() = %s, want NPC_", text)
	}
	if FormType(100).String() != "FormType(100)" {
		t.Errorf("String() of unknown = %s", FormType(100))
	}
	if err := ft.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText() expected error")
	}
}

func TestFormType_IsLeveled(t *testing.T) {
	for _, ft := range []FormType{FormTypeLVLI, FormTypeLVLN, FormTypeLVSP} {
		if !ft.IsLeveled() {
			t.Errorf("%v.IsLeveled() = false", ft)
		}
	}
	for _, ft := range []FormType{FormTypeNone, FormTypeFLST, FormTypeGLOB, FormTypeWEAP} {
		if ft.IsLeveled() {
			t.Errorf("%v.IsLeveled() = true", ft)
		}
	}
}

func TestLeveledFlag_Set(t *testing.T) {
	tests := []struct {
		mask LeveledFlag
		want []LeveledFlag
	}{
		{0, nil},
		{0x05, []LeveledFlag{LeveledFlagCalculateFromAllLevels, LeveledFlagUseAll}},
		{0x80, []LeveledFlag{LeveledFlagUnknown7}},
		{0xFF, []LeveledFlag{1, 2, 4, 8, 16, 32, 64, 128}},
	}
	for _, tt := range tests {
		got := tt.mask.Set()
		if len(got) != len(tt.want) {
			t.Fatalf("Set(%#02x) = %v, want %v", uint8(tt.mask), got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Set(%#02x)[%d] = %v, want %v", uint8(tt.mask), i, got[i], tt.want[i])
			}
		}
	}
}

func TestLeveledFlag_BitAndHas(t *testing.T) {
	if LeveledFlagUseAll.Bit() != 2 || LeveledFlagUnknown7.Bit() != 7 {
		t.Error("Bit() returned wrong position")
	}
	if LeveledFlag(0x03).Bit() != -1 || LeveledFlag(0).Bit() != -1 {
		t.Error("Bit() for multiple or no bits must be -1")
	}
	if !LeveledFlag(0x05).Has(LeveledFlagUseAll) || LeveledFlag(0x05).Has(LeveledFlagCalculateForEachItem) {
		t.Error("Has() mismatch")
	}
}

func TestRecords(t *testing.T) {
	ref := Ref{EditorID: "A", Sources: []string{"Fallout4.esm", "Mod.esp"}, FormID: 0x10}
	if p, ok := ref.Plugin(); !ok || p != "Fallout4.esm" {
		t.Errorf("Plugin() = %q, %v", p, ok)
	}
	if _, ok := (&Ref{}).Plugin(); ok {
		t.Error("Plugin() without sources must fail")
	}
	var nilRef *Ref
	if _, ok := nilRef.Plugin(); ok || nilRef.String() != "<nil>" {
		t.Error("nil Ref mishandled")
	}
	if ref.String() != "A [00000010]" {
		t.Errorf("String() = %s", ref.String())
	}

	records := []struct {
		rec  Record
		want FormType
	}{
		{&LeveledList{Ref: ref, Kind: FormTypeLVSP}, FormTypeLVSP},
		{&FormList{Ref: ref}, FormTypeFLST},
		{&Other{Ref: ref, Kind: FormTypeGLOB}, FormTypeGLOB},
	}
	for _, r := range records {
		if r.rec.Type() != r.want {
			t.Errorf("Type() = %v, want %v", r.rec.Type(), r.want)
		}
		if r.rec.Self().EditorID != "A" {
			t.Errorf("Self() = %v", r.rec.Self())
		}
	}
}

func TestLeveledFlag_SetFollowsHas(t *testing.T) {
	for mask := range 256 {
		f := LeveledFlag(mask)
		for _, bit := range f.Set() {
			if !f.Has(bit) {
				t.Errorf("%#02x: Set() returned %#02x which Has() rejects", mask, uint8(bit))
			}
		}
	}
}
