// Package dump renders leveled lists and form ID lists as indented JSON
// text. Rendering happens in memory, callers receive either complete text
// or an error and never a partial result.
package dump

import (
	"fmt"

	"lldump/form"
	"lldump/utils/debug"
)

// Renderer turns records into text. It keeps no state between calls and
// could be shared.
type Renderer struct {
	style       Style
	labels      [8]string
	maxCountKey string
}

func NewRenderer(style Style) *Renderer {
	return &Renderer{
		style:       style,
		labels:      labelsFor(style),
		maxCountKey: maxCountKeyFor(style),
	}
}

func (r *Renderer) Style() Style {
	return r.style
}

// Render produces complete text for rec terminated by single new line.
func (r *Renderer) Render(rec form.Record) ([]byte, error) {
	tw := debug.NewTreeWriter()

	var err error
	switch v := rec.(type) {
	case nil:
		return nil, ErrNullRecord
	case *form.LeveledList:
		if v == nil {
			return nil, ErrNullRecord
		}
		if !v.Kind.IsLeveled() {
			return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedRecordKind, &v.Ref, v.Kind)
		}
		err = r.leveledList(tw, 0, v, false)
	case *form.FormList:
		if v == nil {
			return nil, ErrNullRecord
		}
		err = r.formList(tw, 0, v, false)
	case *form.Other:
		if v == nil {
			return nil, ErrNullRecord
		}
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedRecordKind, &v.Ref, v.Kind)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedRecordKind, rec)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to render %s: %w", rec.Self(), err)
	}
	return tw.Bytes(), nil
}

// Labels returns names of flags set in f in the order they are rendered.
func (r *Renderer) Labels(f form.LeveledFlag) []string {
	set := f.Set()
	out := make([]string, 0, len(set))
	for _, bit := range set {
		out = append(out, r.labels[bit.Bit()])
	}
	return out
}
