package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"lldump/form"
)

// Memory keeps fully resolved records.
type Memory struct {
	byID       map[uint32]form.Record
	byEditorID map[string]form.Record
	ordered    []form.Record
}

func (m *Memory) Lookup(ctx context.Context, id uint32) (form.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if rec, ok := m.byID[id]; ok {
		return rec, nil
	}
	return nil, fmt.Errorf("%w: %08X", ErrNotFound, id)
}

// LookupEditorID ignores case as the game does.
func (m *Memory) LookupEditorID(ctx context.Context, editorID string) (form.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if rec, ok := m.byEditorID[strings.ToLower(editorID)]; ok {
		return rec, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, editorID)
}

// All returns records ordered by form id.
func (m *Memory) All(ctx context.Context) ([]form.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(m.ordered), nil
}

func (m *Memory) Len() int {
	return len(m.ordered)
}

// builder collects raw records, later definitions of the same form id
// replace earlier ones the way later plugins override earlier.
type builder struct {
	docs  map[uint32]recordDoc
	order []uint32
}

func newBuilder() *builder {
	return &builder{docs: make(map[uint32]recordDoc)}
}

func (b *builder) add(docs ...recordDoc) {
	for _, d := range docs {
		if _, ok := b.docs[d.FormID]; !ok {
			b.order = append(b.order, d.FormID)
		}
		b.docs[d.FormID] = d
	}
}

// build creates records first and links references second so records could
// refer to each other in any order.
func (b *builder) build() (*Memory, error) {
	m := &Memory{
		byID:       make(map[uint32]form.Record, len(b.docs)),
		byEditorID: make(map[string]form.Record, len(b.docs)),
	}

	for _, id := range b.order {
		d := b.docs[id]
		ref := form.Ref{EditorID: d.EditorID, Sources: slices.Clone(d.Sources), FormID: d.FormID}

		var rec form.Record
		switch {
		case d.Type.IsLeveled():
			rec = &form.LeveledList{
				Ref:            ref,
				Kind:           d.Type,
				ChanceNone:     d.ChanceNone,
				MaxUseAllCount: d.MaxUseAllCount,
				Flags:          form.LeveledFlag(d.Flags),
			}
		case d.Type == form.FormTypeFLST:
			rec = &form.FormList{Ref: ref}
		case d.Type == form.FormTypeNone:
			return nil, fmt.Errorf("form %08X has no type", id)
		default:
			rec = &form.Other{Ref: ref, Kind: d.Type}
		}
		m.byID[id] = rec
		if d.EditorID != "" {
			m.byEditorID[strings.ToLower(d.EditorID)] = rec
		}
	}

	resolve := func(owner, id uint32) (*form.Ref, error) {
		rec, ok := m.byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %08X refers to %08X", ErrUnresolvedReference, owner, id)
		}
		return rec.Self(), nil
	}
	entries := func(owner uint32, docs []entryDoc) ([]form.LeveledEntry, error) {
		out := make([]form.LeveledEntry, 0, len(docs))
		for _, e := range docs {
			ref, err := resolve(owner, e.Form)
			if err != nil {
				return nil, err
			}
			out = append(out, form.LeveledEntry{Level: e.Level, Reference: ref, Count: e.Count, ChanceNone: e.ChanceNone})
		}
		return out, nil
	}

	for _, id := range b.order {
		d := b.docs[id]
		switch rec := m.byID[id].(type) {
		case *form.LeveledList:
			var err error
			if d.Global != nil {
				if rec.Global, err = resolve(id, *d.Global); err != nil {
					return nil, err
				}
			}
			if rec.Entries, err = entries(id, d.Entries); err != nil {
				return nil, err
			}
			added, err := entries(id, d.ScriptAdded)
			if err != nil {
				return nil, err
			}
			for i := range added {
				rec.ScriptAdded = append(rec.ScriptAdded, &added[i])
			}
		case *form.FormList:
			for _, member := range d.Forms {
				ref, err := resolve(id, member)
				if err != nil {
					return nil, err
				}
				rec.Forms = append(rec.Forms, ref)
			}
		}
	}

	m.ordered = make([]form.Record, 0, len(m.byID))
	for _, rec := range m.byID {
		m.ordered = append(m.ordered, rec)
	}
	slices.SortFunc(m.ordered, func(a, b form.Record) int {
		return cmp.Compare(a.Self().FormID, b.Self().FormID)
	})
	return m, nil
}
