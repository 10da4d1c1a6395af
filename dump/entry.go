package dump

import (
	"fmt"

	"lldump/form"
	"lldump/utils/debug"
)

func (r *Renderer) entry(tw *debug.TreeWriter, depth int, e *form.LeveledEntry, comma bool) error {
	tw.Open(depth, "", '{')
	tw.Field(depth+1, "Level", e.Level, true)
	if err := r.object(tw, depth+1, "Reference", e.Reference, true); err != nil {
		return err
	}
	tw.Field(depth+1, "Count", e.Count, true)
	tw.Field(depth+1, "ChanceNone", e.ChanceNone, false)
	tw.Close(depth, '}', comma)
	return nil
}

// entries writes array of entries under key.
func (r *Renderer) entries(tw *debug.TreeWriter, depth int, key string, entries []*form.LeveledEntry, comma bool) error {
	if len(entries) == 0 {
		tw.Empty(depth, key, comma)
		return nil
	}
	tw.Open(depth, key, '[')
	for i, e := range entries {
		if e == nil {
			return fmt.Errorf("%s entry %d: %w", key, i, ErrNullRecord)
		}
		if err := r.entry(tw, depth+1, e, i < len(entries)-1); err != nil {
			return fmt.Errorf("%s entry %d: %w", key, i, err)
		}
	}
	tw.Close(depth, ']', comma)
	return nil
}
