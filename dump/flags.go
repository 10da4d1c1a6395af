package dump

import (
	"lldump/form"
	"lldump/utils/debug"
)

// flags writes "Flags" array. Only the label of the highest set bit goes
// without comma.
func (r *Renderer) flags(tw *debug.TreeWriter, depth int, f form.LeveledFlag, comma bool) {
	labels := r.Labels(f)
	if len(labels) == 0 {
		tw.Empty(depth, "Flags", comma)
		return
	}
	tw.Open(depth, "Flags", '[')
	for i, l := range labels {
		tw.Value(depth+1, l, i < len(labels)-1)
	}
	tw.Close(depth, ']', comma)
}
