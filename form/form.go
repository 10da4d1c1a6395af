// Package form describes game records which could be dumped. Records are
// read-only snapshots supplied by a store, nothing here owns game state.
package form

import "fmt"

// Ref identifies a record.
type Ref struct {
	EditorID string
	// Sources lists plugins which define or override the record, the first
	// one is where record originates.
	Sources []string
	FormID  uint32
}

// Plugin returns originating plugin name.
func (r *Ref) Plugin() (string, bool) {
	if r == nil || len(r.Sources) == 0 {
		return "", false
	}
	return r.Sources[0], true
}

func (r *Ref) String() string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s [%08X]", r.EditorID, r.FormID)
}

// LeveledEntry is one line of leveled list.
type LeveledEntry struct {
	Level      uint8
	Reference  *Ref
	Count      int32
	ChanceNone uint8
}

// Record is implemented by every record kind store could return. The set is
// closed: only types in this package satisfy it.
type Record interface {
	Type() FormType
	Self() *Ref
	record()
}

// LeveledList covers LVLI, LVLN and LVSP records.
type LeveledList struct {
	Ref
	Kind           FormType
	ChanceNone     uint8
	MaxUseAllCount uint8
	Flags          LeveledFlag
	// Global is optional record overriding ChanceNone.
	Global *Ref
	// Entries are authored in plugin.
	Entries []LeveledEntry
	// ScriptAdded are appended at runtime and owned elsewhere.
	ScriptAdded []*LeveledEntry
}

func (l *LeveledList) Type() FormType { return l.Kind }
func (l *LeveledList) Self() *Ref     { return &l.Ref }
func (*LeveledList) record()          {}

// FormList is FLST record.
type FormList struct {
	Ref
	Forms []*Ref
}

func (*FormList) Type() FormType { return FormTypeFLST }
func (f *FormList) Self() *Ref   { return &f.Ref }
func (*FormList) record()        {}

// Other is any record which is neither leveled list nor form list.
type Other struct {
	Ref
	Kind FormType
}

func (o *Other) Type() FormType { return o.Kind }
func (o *Other) Self() *Ref     { return &o.Ref }
func (*Other) record()          {}
