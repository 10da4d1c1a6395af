// Package output persists rendered dumps.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gosimple/slug"

	"lldump/config"
	"lldump/form"
)

const ext = ".json"

// Namer builds time stamped dump file names.
type Namer struct {
	Prefix string
	Layout string
	Scheme config.NameScheme
	// Now is used for time stamps, time.Now when nil
	Now func() time.Time
}

// NewNamer prepares namer from configuration.
func NewNamer(cfg *config.DumpConfig) *Namer {
	return &Namer{
		Prefix: cfg.Prefix,
		Layout: cfg.TimestampLayout,
		Scheme: cfg.NameScheme,
	}
}

// Name returns file name (no directory) for rec.
func (n *Namer) Name(rec form.Record) string {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	name := n.Prefix + now().Format(n.Layout)

	if n.Scheme == config.NameSchemeEditorID && rec != nil {
		id := slug.Make(rec.Self().EditorID)
		if id == "" {
			id = fmt.Sprintf("%08X", rec.Self().FormID)
		}
		name += "_" + id
	}
	return config.CleanFileName(name) + ext
}

// FileSink writes dumps into directory.
type FileSink struct {
	Dir       string
	Namer     *Namer
	Overwrite bool
	// Report receives copy of every written dump, may be nil
	Report *config.Report
}

// Write stores data and returns absolute path of created file.
func (s *FileSink) Write(rec form.Record, data []byte) (string, error) {
	name := s.Namer.Name(rec)
	outPath, err := filepath.Abs(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(outPath); err == nil {
		if !s.Overwrite {
			return "", fmt.Errorf("output file already exists: %s (use --overwrite)", outPath)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", err
	}
	s.Report.StoreData("dumps/"+name, data)
	return outPath, nil
}
