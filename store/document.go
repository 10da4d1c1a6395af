package store

import (
	"lldump/form"
)

// document is YAML layout of record dump:
//
//	records:
//	  - type: LVLI
//	    form_id: 0x00001234
//	    editor_id: LL_Test
//	    sources: [Test.esp]
//	    chance_none: 50
//	    flags: 0x05
//	    entries:
//	      - {level: 1, form: 0x00000800, count: 1}
//
// References (global, entries, forms) are form ids which must be defined in
// the same store.
type document struct {
	Records []recordDoc `yaml:"records"`
}

type recordDoc struct {
	Type           form.FormType `yaml:"type"`
	FormID         uint32        `yaml:"form_id"`
	EditorID       string        `yaml:"editor_id"`
	Sources        []string      `yaml:"sources"`
	ChanceNone     uint8         `yaml:"chance_none,omitempty"`
	MaxUseAllCount uint8         `yaml:"max_use_all_count,omitempty"`
	Flags          uint8         `yaml:"flags,omitempty"`
	Global         *uint32       `yaml:"global,omitempty"`
	Entries        []entryDoc    `yaml:"entries,omitempty"`
	ScriptAdded    []entryDoc    `yaml:"script_added,omitempty"`
	Forms          []uint32      `yaml:"forms,omitempty"`
}

type entryDoc struct {
	Level      uint8  `yaml:"level"`
	Form       uint32 `yaml:"form"`
	Count      int32  `yaml:"count"`
	ChanceNone uint8  `yaml:"chance_none,omitempty"`
}
