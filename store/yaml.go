package store

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
	yaml "gopkg.in/yaml.v3"

	"lldump/archive"
)

// loadYAML reads every document of the stream.
func (b *builder) loadYAML(r io.Reader, name string) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	for n := 0; ; n++ {
		var doc document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("%s document %d: %w", name, n, err)
		}
		b.add(doc.Records...)
	}
}

func (b *builder) loadYAMLFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return b.loadYAML(f, filepath.Base(path))
}

func (b *builder) loadYAMLArchive(path, pattern string) error {
	return archive.Walk(path, pattern, func(_ string, file *zip.File) error {
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		return b.loadYAML(rc, file.Name)
	})
}

// loadYAMLDir loads matching files under dir, natural order of paths
// decides which definition wins.
func (b *builder) loadYAMLDir(dir, pattern string) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ok, err := filepath.Match(pattern, d.Name()); err != nil {
			return err
		} else if ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Sort(natural.StringSlice(paths))

	for _, p := range paths {
		if err := b.loadYAMLFile(p); err != nil {
			return err
		}
	}
	return nil
}
