package dump

import (
	"context"
	"errors"

	"lldump/form"
)

// Sink persists rendered text and reports where it went.
type Sink interface {
	Write(rec form.Record, data []byte) (string, error)
}

// Dumper renders record, hands result to the sink and reports outcome on
// the console.
type Dumper struct {
	Renderer *Renderer
	Sink     Sink
	Console  Console
}

// Dump returns location of written text. Each call is independent.
func (d *Dumper) Dump(ctx context.Context, rec form.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := d.Renderer.Render(rec)
	if err != nil {
		d.Console.PrintLine("%s.", describe(err))
		return "", err
	}

	where, err := d.Sink.Write(rec, data)
	if err != nil {
		d.Console.PrintLine("Unable to write %s: %v", rec.Self(), err)
		return "", err
	}

	d.Console.PrintLine("Dumped at %s", where)
	return where, nil
}

func describe(err error) string {
	switch {
	case err == ErrNullRecord:
		return "Form is null"
	case errors.Is(err, ErrUnsupportedRecordKind):
		return "Form is not a Leveled List or a FormID List"
	default:
		return "Unable to dump form: " + err.Error()
	}
}
