package dump

import (
	"fmt"

	"lldump/form"
	"lldump/utils/debug"
)

// ref writes record identity lines without enclosing braces.
func (r *Renderer) ref(tw *debug.TreeWriter, depth int, ref *form.Ref, comma bool) error {
	if ref == nil {
		return ErrNullRecord
	}
	// sources must be checked before anything is written
	plugin, ok := ref.Plugin()
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingSourceList, ref)
	}
	tw.Field(depth, "EditorID", ref.EditorID, true)
	tw.Field(depth, "Plugin", plugin, true)
	tw.Field(depth, "FormID", formID(ref.FormID), comma)
	return nil
}

// object writes ref wrapped into its own braces, under key if one is given.
func (r *Renderer) object(tw *debug.TreeWriter, depth int, key string, ref *form.Ref, comma bool) error {
	tw.Open(depth, key, '{')
	if err := r.ref(tw, depth+1, ref, false); err != nil {
		return err
	}
	tw.Close(depth, '}', comma)
	return nil
}

func formID(id uint32) string {
	return fmt.Sprintf("%08X", id)
}
