package dump

import (
	"fmt"

	"lldump/form"
	"lldump/utils/debug"
)

func (r *Renderer) leveledList(tw *debug.TreeWriter, depth int, l *form.LeveledList, comma bool) error {
	tw.Open(depth, "", '{')
	if err := r.ref(tw, depth+1, &l.Ref, true); err != nil {
		return err
	}
	tw.Field(depth+1, "ChanceNone", l.ChanceNone, true)
	tw.Field(depth+1, r.maxCountKey, l.MaxUseAllCount, true)
	r.flags(tw, depth+1, l.Flags, true)

	if l.Global != nil {
		if err := r.object(tw, depth+1, "UseGlobal", l.Global, true); err != nil {
			return fmt.Errorf("global: %w", err)
		}
	}

	base := make([]*form.LeveledEntry, len(l.Entries))
	for i := range l.Entries {
		base[i] = &l.Entries[i]
	}
	tw.Field(depth+1, "BaseEntryCount", len(base), true)
	if err := r.entries(tw, depth+1, "BaseEntries", base, true); err != nil {
		return err
	}
	tw.Field(depth+1, "ScriptAddedEntryCount", len(l.ScriptAdded), true)
	if err := r.entries(tw, depth+1, "ScriptAddedEntries", l.ScriptAdded, false); err != nil {
		return err
	}
	tw.Close(depth, '}', comma)
	return nil
}

func (r *Renderer) formList(tw *debug.TreeWriter, depth int, l *form.FormList, comma bool) error {
	tw.Open(depth, "", '{')
	if err := r.ref(tw, depth+1, &l.Ref, true); err != nil {
		return err
	}
	tw.Field(depth+1, "FormCount", len(l.Forms), true)
	if len(l.Forms) == 0 {
		tw.Empty(depth+1, "Forms", false)
	} else {
		tw.Open(depth+1, "Forms", '[')
		for i, f := range l.Forms {
			if err := r.object(tw, depth+2, "", f, i < len(l.Forms)-1); err != nil {
				return fmt.Errorf("form %d: %w", i, err)
			}
		}
		tw.Close(depth+1, ']', false)
	}
	tw.Close(depth, '}', comma)
	return nil
}
