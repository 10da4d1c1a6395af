package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/multierr"

	"lldump/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty debug report. When configured destination could not
// be created report goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{items: make(map[string]item), file: f}, nil
}

// item is either local file (path is set) read at the end or data captured
// at the time of the call.
type item struct {
	path  string
	data  []byte
	stamp time.Time
}

func (it item) describe() string {
	if len(it.path) > 0 {
		return "file " + it.path
	}
	return fmt.Sprintf("data %d bytes", len(it.data))
}

// Report collects log files, configuration and produced dumps into single
// ZIP archive for troubleshooting. Not safe for concurrent use.
type Report struct {
	items map[string]item
	file  *os.File
}

// Close writes collected items and closes report archive.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return multierr.Append(r.finalize(), r.file.Close())
}

// Name returns absolute path of report archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	name := r.file.Name()
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return name
}

// Store remembers local file to be put into report under name. File is read
// when report is closed, so it may still be written to until then.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if old, ok := r.items[name]; ok && old.path != path {
		panic(fmt.Sprintf("report entry %q already refers to %s, cannot store %s", name, old.path, path))
	}
	r.items[name] = item{path: path}
}

// StoreData puts copy of data into report under name. Repeated names get
// time stamp suffix.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	it := item{data: bytes.Clone(data), stamp: time.Now()}
	if _, ok := r.items[name]; ok {
		name = fmt.Sprintf("%s-%d", name, it.stamp.UnixNano())
	}
	r.items[name] = it
}

func (r *Report) finalize() (err error) {
	arc := zip.NewWriter(r.file)
	defer func() { err = multierr.Append(err, arc.Close()) }()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case natural.Less(a, b):
			return -1
		default:
			return 1
		}
	})

	now := time.Now()
	manifest := new(bytes.Buffer)
	for _, name := range names {
		it := r.items[name]
		stamp := it.stamp
		if stamp.IsZero() {
			stamp = now
		}
		fmt.Fprintf(manifest, "%s\t%s\t%s\n", stamp.UTC().Format(time.RFC3339), name, it.describe())
	}
	if err := addEntry(arc, "MANIFEST", now, manifest); err != nil {
		return err
	}

	for _, name := range names {
		it := r.items[name]
		if len(it.path) == 0 {
			if err := addEntry(arc, name, it.stamp, bytes.NewReader(it.data)); err != nil {
				return err
			}
			continue
		}
		if err := addLocalFile(arc, name, it.path); err != nil {
			return err
		}
	}
	return nil
}

// addLocalFile skips files which do not exist (yet), log file may never be
// created for example.
func addLocalFile(arc *zip.Writer, name, path string) error {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return addEntry(arc, name, fi.ModTime(), f)
}

func addEntry(arc *zip.Writer, name string, modified time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modified})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
