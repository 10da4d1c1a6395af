package dump

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"lldump/form"
)

type recordingConsole struct {
	lines []string
}

func (c *recordingConsole) PrintLine(format string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}

type memorySink struct {
	written map[string][]byte
	err     error
}

func (s *memorySink) Write(rec form.Record, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.written == nil {
		s.written = make(map[string][]byte)
	}
	name := fmt.Sprintf("mem://%08X", rec.Self().FormID)
	s.written[name] = data
	return name, nil
}

func newTestDumper() (*Dumper, *memorySink, *recordingConsole) {
	sink, console := &memorySink{}, &recordingConsole{}
	return &Dumper{Renderer: NewRenderer(StyleDescriptive), Sink: sink, Console: console}, sink, console
}

func TestDumper_Dump(t *testing.T) {
	d, sink, console := newTestDumper()

	where, err := d.Dump(context.Background(), sampleLeveledList())
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if where != "mem://00001234" {
		t.Errorf("Dump() = %q, want mem://00001234", where)
	}
	if !strings.HasPrefix(string(sink.written[where]), "{\n\t\"EditorID\": \"LL_Test\",\n") {
		t.Errorf("unexpected sink content:\n%s", sink.written[where])
	}
	if len(console.lines) != 1 || console.lines[0] != "Dumped at mem://00001234" {
		t.Errorf("console = %q", console.lines)
	}
}

func TestDumper_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		rec      form.Record
		want     error
		wantLine string
	}{
		{"null", nil, ErrNullRecord, "Form is null."},
		{"unsupported", &form.Other{Ref: testRef("Weapon", 7), Kind: form.FormTypeWEAP}, ErrUnsupportedRecordKind, "Form is not a Leveled List or a FormID List."},
		{"missing sources", &form.FormList{Ref: form.Ref{EditorID: "FL"}}, ErrMissingSourceList, "Unable to dump form: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, sink, console := newTestDumper()

			where, err := d.Dump(context.Background(), tt.rec)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Dump() error = %v, want %v", err, tt.want)
			}
			if where != "" || len(sink.written) != 0 {
				t.Errorf("rejected record produced output %q", where)
			}
			if len(console.lines) != 1 || !strings.HasPrefix(console.lines[0], tt.wantLine) {
				t.Errorf("console = %q, want line starting with %q", console.lines, tt.wantLine)
			}
		})
	}
}

func TestDumper_SinkFailure(t *testing.T) {
	d, sink, console := newTestDumper()
	sink.err = errors.New("disk full")

	if _, err := d.Dump(context.Background(), sampleLeveledList()); err == nil {
		t.Fatal("Dump() expected error")
	}
	if len(console.lines) != 1 || !strings.Contains(console.lines[0], "disk full") {
		t.Errorf("console = %q", console.lines)
	}
}

func TestDumper_Cancelled(t *testing.T) {
	d, sink, console := newTestDumper()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.Dump(ctx, sampleLeveledList()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Dump() error = %v, want context.Canceled", err)
	}
	if len(sink.written) != 0 || len(console.lines) != 0 {
		t.Error("cancelled dump did some work")
	}
}

func TestZapConsole(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ZapConsole{Log: zap.New(core)}.PrintLine("Dumped at %s", "x.json")

	entries := logs.All()
	if len(entries) != 1 || entries[0].Message != "Dumped at x.json" {
		t.Errorf("logged %v", entries)
	}

	// nil logger is ignored
	ZapConsole{}.PrintLine("nothing")
}
