package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lldump/form"
)

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func testRef(editorID string, id uint32) form.Ref {
	return form.Ref{EditorID: editorID, Sources: []string{"Test.esp"}, FormID: id}
}

func testRefPtr(editorID string, id uint32) *form.Ref {
	r := testRef(editorID, id)
	return &r
}

func sampleLeveledList() *form.LeveledList {
	return &form.LeveledList{
		Ref:            testRef("LL_Test", 0x00001234),
		Kind:           form.FormTypeLVLI,
		ChanceNone:     50,
		MaxUseAllCount: 1,
		Flags:          0x05,
		Entries: []form.LeveledEntry{
			{Level: 1, Reference: testRefPtr("Item1", 0x00000800), Count: 1, ChanceNone: 0},
		},
	}
}

func TestRender_LeveledList(t *testing.T) {
	got, err := NewRenderer(StyleDescriptive).Render(sampleLeveledList())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := lines(
		"{",
		"\t\"EditorID\": \"LL_Test\",",
		"\t\"Plugin\": \"Test.esp\",",
		"\t\"FormID\": \"00001234\",",
		"\t\"ChanceNone\": 50,",
		"\t\"MaxUseAllCount\": 1,",
		"\t\"Flags\": [",
		"\t\t\"calculate from all levels ≤ the actor's level\",",
		"\t\t\"use all entries\"",
		"\t],",
		"\t\"BaseEntryCount\": 1,",
		"\t\"BaseEntries\": [",
		"\t\t{",
		"\t\t\t\"Level\": 1,",
		"\t\t\t\"Reference\": {",
		"\t\t\t\t\"EditorID\": \"Item1\",",
		"\t\t\t\t\"Plugin\": \"Test.esp\",",
		"\t\t\t\t\"FormID\": \"00000800\"",
		"\t\t\t},",
		"\t\t\t\"Count\": 1,",
		"\t\t\t\"ChanceNone\": 0",
		"\t\t}",
		"\t],",
		"\t\"ScriptAddedEntryCount\": 0,",
		"\t\"ScriptAddedEntries\": []",
		"}",
	)
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
	if !json.Valid(got) {
		t.Error("Render() produced invalid JSON")
	}
}

func TestRender_LeveledListLegacyStyle(t *testing.T) {
	got, err := NewRenderer(StyleLegacy).Render(sampleLeveledList())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	s := string(got)
	for _, want := range []string{
		"\t\"MaxCount\": 1,\n",
		"\t\t\"Calculate from all levels <= player's level\",\n",
		"\t\t\"Use All\"\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("legacy output does not contain %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "MaxUseAllCount") {
		t.Error("legacy output uses descriptive key")
	}
}

func TestRender_LeveledListGlobalAndScriptAdded(t *testing.T) {
	ll := sampleLeveledList()
	ll.Kind = form.FormTypeLVLN
	ll.Flags = 0
	ll.Global = testRefPtr("LLChanceGlobal", 0x0001A2B3)
	ll.ScriptAdded = []*form.LeveledEntry{
		{Level: 10, Reference: testRefPtr("Item2", 0x801), Count: -1, ChanceNone: 25},
		{Level: 20, Reference: testRefPtr("Item3", 0x802), Count: 70000, ChanceNone: 100},
	}

	got, err := NewRenderer(StyleDescriptive).Render(ll)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	s := string(got)

	wantGlobal := lines(
		"\t\"Flags\": [],",
		"\t\"UseGlobal\": {",
		"\t\t\"EditorID\": \"LLChanceGlobal\",",
		"\t\t\"Plugin\": \"Test.esp\",",
		"\t\t\"FormID\": \"0001A2B3\"",
		"\t},",
		"\t\"BaseEntryCount\": 1,",
	)
	if !strings.Contains(s, wantGlobal) {
		t.Errorf("missing UseGlobal block:\n%s", s)
	}
	if !strings.Contains(s, "\t\"ScriptAddedEntryCount\": 2,\n\t\"ScriptAddedEntries\": [\n") {
		t.Errorf("missing script added entries header:\n%s", s)
	}
	if !strings.Contains(s, "\t\t\t\"Count\": -1,\n") || !strings.Contains(s, "\t\t\t\"Count\": 70000,\n") {
		t.Errorf("counts are not rendered natively:\n%s", s)
	}
	if !strings.HasSuffix(s, "\t\t}\n\t]\n}\n") {
		t.Errorf("unexpected tail:\n%s", s)
	}

	var parsed struct {
		ScriptAddedEntries []struct {
			Level      int
			Count      int
			ChanceNone int
			Reference  struct{ EditorID, Plugin, FormID string }
		}
	}
	if err := json.Unmarshal(got, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(parsed.ScriptAddedEntries) != 2 || parsed.ScriptAddedEntries[1].Reference.FormID != "00000802" {
		t.Errorf("unexpected parsed entries %+v", parsed.ScriptAddedEntries)
	}
}

func TestRender_EntryCommas(t *testing.T) {
	r := NewRenderer(StyleDescriptive)
	for n := range 6 {
		t.Run(fmt.Sprintf("%d entries", n), func(t *testing.T) {
			ll := sampleLeveledList()
			ll.Entries = nil
			for i := range n {
				ll.Entries = append(ll.Entries, form.LeveledEntry{
					Level:     uint8(i + 1),
					Reference: testRefPtr(fmt.Sprintf("Item%d", i), uint32(0x900+i)),
					Count:     1,
				})
			}

			got, err := r.Render(ll)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			var withComma, withoutComma int
			for _, l := range strings.Split(string(got), "\n") {
				switch l {
				case "\t\t},":
					withComma++
				case "\t\t}":
					withoutComma++
				}
			}
			wantComma, wantLast := n-1, 1
			if n == 0 {
				wantComma, wantLast = 0, 0
			}
			if withComma != wantComma || withoutComma != wantLast {
				t.Errorf("entry closings: %d with comma, %d without; want %d and %d", withComma, withoutComma, wantComma, wantLast)
			}

			var parsed struct {
				BaseEntryCount int
				BaseEntries    []json.RawMessage
			}
			if err := json.Unmarshal(got, &parsed); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, got)
			}
			if parsed.BaseEntryCount != n || len(parsed.BaseEntries) != n {
				t.Errorf("BaseEntryCount = %d, entries = %d, want %d", parsed.BaseEntryCount, len(parsed.BaseEntries), n)
			}
		})
	}
}

func TestRender_FormList(t *testing.T) {
	fl := &form.FormList{
		Ref: testRef("FL_Test", 0x00002000),
		Forms: []*form.Ref{
			testRefPtr("Item1", 0x800),
			{EditorID: "Item2", Sources: []string{"Other.esp", "Test.esp"}, FormID: 0x01000801},
		},
	}

	got, err := NewRenderer(StyleDescriptive).Render(fl)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := lines(
		"{",
		"\t\"EditorID\": \"FL_Test\",",
		"\t\"Plugin\": \"Test.esp\",",
		"\t\"FormID\": \"00002000\",",
		"\t\"FormCount\": 2,",
		"\t\"Forms\": [",
		"\t\t{",
		"\t\t\t\"EditorID\": \"Item1\",",
		"\t\t\t\"Plugin\": \"Test.esp\",",
		"\t\t\t\"FormID\": \"00000800\"",
		"\t\t},",
		"\t\t{",
		"\t\t\t\"EditorID\": \"Item2\",",
		"\t\t\t\"Plugin\": \"Other.esp\",",
		"\t\t\t\"FormID\": \"01000801\"",
		"\t\t}",
		"\t]",
		"}",
	)
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_EmptyFormList(t *testing.T) {
	got, err := NewRenderer(StyleDescriptive).Render(&form.FormList{Ref: testRef("FL_Empty", 0x2001)})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := lines(
		"{",
		"\t\"EditorID\": \"FL_Empty\",",
		"\t\"Plugin\": \"Test.esp\",",
		"\t\"FormID\": \"00002001\",",
		"\t\"FormCount\": 0,",
		"\t\"Forms\": []",
		"}",
	)
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_FormID(t *testing.T) {
	fl := &form.FormList{Ref: testRef("FL", 0x000F4240)}
	for range 2 {
		got, err := NewRenderer(StyleDescriptive).Render(fl)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(string(got), "\t\"FormID\": \"000F4240\",\n") {
			t.Errorf("FormID not rendered as 000F4240:\n%s", got)
		}
	}
	if got := formID(0xFF00ABCD); got != "FF00ABCD" {
		t.Errorf("formID() = %s, want FF00ABCD", got)
	}
}

func TestRender_Errors(t *testing.T) {
	noSources := sampleLeveledList()
	noSources.Entries[0].Reference = &form.Ref{EditorID: "Orphan", FormID: 0x10}

	nilEntry := sampleLeveledList()
	nilEntry.ScriptAdded = []*form.LeveledEntry{nil}

	nilMember := &form.FormList{Ref: testRef("FL", 1), Forms: []*form.Ref{nil}}

	tests := []struct {
		name string
		rec  form.Record
		want error
	}{
		{"nil record", nil, ErrNullRecord},
		{"typed nil leveled list", (*form.LeveledList)(nil), ErrNullRecord},
		{"typed nil form list", (*form.FormList)(nil), ErrNullRecord},
		{"other kind", &form.Other{Ref: testRef("Weapon", 2), Kind: form.FormTypeWEAP}, ErrUnsupportedRecordKind},
		{"leveled layout with wrong kind", &form.LeveledList{Ref: testRef("X", 3), Kind: form.FormTypeFLST}, ErrUnsupportedRecordKind},
		{"self without sources", &form.FormList{Ref: form.Ref{EditorID: "FL", FormID: 4}}, ErrMissingSourceList},
		{"entry without sources", noSources, ErrMissingSourceList},
		{"member without sources", &form.FormList{Ref: testRef("FL", 5), Forms: []*form.Ref{{EditorID: "M"}}}, ErrMissingSourceList},
		{"nil script added entry", nilEntry, ErrNullRecord},
		{"nil member", nilMember, ErrNullRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRenderer(StyleDescriptive).Render(tt.rec)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Render() error = %v, want %v", err, tt.want)
			}
			if got != nil {
				t.Errorf("Render() returned partial output %q", got)
			}
		})
	}
}

func TestRenderer_Labels(t *testing.T) {
	r := NewRenderer(StyleDescriptive)

	tests := []struct {
		mask form.LeveledFlag
		want []string
	}{
		{0x00, []string{}},
		{0x01, []string{"calculate from all levels ≤ the actor's level"}},
		{0x02, []string{"calculate per unit of count"}},
		{0x04, []string{"use all entries"}},
		{0x05, []string{"calculate from all levels ≤ the actor's level", "use all entries"}},
		{0x88, []string{"Unknown 3", "Unknown 7"}},
		{0xF0, []string{"Unknown 4", "Unknown 5", "Unknown 6", "Unknown 7"}},
	}
	for _, tt := range tests {
		got := r.Labels(tt.mask)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("Labels(%#02x) = %q, want %q", uint8(tt.mask), got, tt.want)
		}
	}
}

func TestRender_FlagsAllMasks(t *testing.T) {
	r := NewRenderer(StyleDescriptive)
	for mask := range 256 {
		ll := sampleLeveledList()
		ll.Flags = form.LeveledFlag(mask)

		got, err := r.Render(ll)
		if err != nil {
			t.Fatalf("mask %#02x: Render() error = %v", mask, err)
		}
		var parsed struct{ Flags []string }
		if err := json.Unmarshal(got, &parsed); err != nil {
			t.Fatalf("mask %#02x: invalid JSON: %v\n%s", mask, err, got)
		}
		if len(parsed.Flags) != bits.OnesCount8(uint8(mask)) {
			t.Errorf("mask %#02x: %d labels, want %d", mask, len(parsed.Flags), bits.OnesCount8(uint8(mask)))
		}
	}
}

// Legacy console command stopped scanning bits after 0x04 but decided on the comma
// by comparing whole mask, so 0x09 ended with a dangling comma after the
// first label.
func TestRender_FlagsHighBitRegression(t *testing.T) {
	ll := sampleLeveledList()
	ll.Flags = 0x09

	got, err := NewRenderer(StyleLegacy).Render(ll)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := lines(
		"\t\"Flags\": [",
		"\t\t\"Calculate from all levels <= player's level\",",
		"\t\t\"Unknown 3\"",
		"\t],",
	)
	if !strings.Contains(string(got), want) {
		t.Errorf("unexpected flags block:\n%s", got)
	}
	if !json.Valid(got) {
		t.Error("invalid JSON")
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"", StyleDescriptive, false},
		{"descriptive", StyleDescriptive, false},
		{" Legacy ", StyleLegacy, false},
		{"fancy", StyleDescriptive, true},
	}
	for _, tt := range tests {
		got, err := ParseStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if StyleLegacy.String() != "legacy" {
		t.Errorf("StyleLegacy.String() = %q", StyleLegacy.String())
	}
}

func TestNewRenderer_Style(t *testing.T) {
	for _, s := range []Style{StyleDescriptive, StyleLegacy} {
		if got := NewRenderer(s).Style(); got != s {
			t.Errorf("NewRenderer(%v).Style() = %v", s, got)
		}
	}
}
