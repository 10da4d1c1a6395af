// Package store provides read-only access to game records loaded from
// record dumps: YAML documents (plain files, directories or ZIP archives)
// and SQLite databases.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding"

	"lldump/form"
)

var (
	ErrNotFound            = errors.New("form not found")
	ErrUnresolvedReference = errors.New("form refers to unknown form")
	ErrUnknownSource       = errors.New("unrecognized record source")
	ErrOutOfRange          = errors.New("out of range")
)

// Store gives access to records by identity.
type Store interface {
	Lookup(ctx context.Context, id uint32) (form.Record, error)
	LookupEditorID(ctx context.Context, editorID string) (form.Record, error)
	All(ctx context.Context) ([]form.Record, error)
}

// Options control loading.
type Options struct {
	// CodePage is used to decode raw strings from SQLite databases, nil
	// means strings are UTF-8 already.
	CodePage encoding.Encoding
	// Pattern selects documents inside archives and directories.
	Pattern string
}

const defaultPattern = "*.yaml"

// Kind of record source.
type Kind int

const (
	KindUnknown Kind = iota
	KindYAML
	KindArchive
	KindSQLite
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindYAML:
		return "yaml"
	case KindArchive:
		return "archive"
	case KindSQLite:
		return "sqlite"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Detect decides how source should be loaded looking at its content.
func Detect(path string) (Kind, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return KindUnknown, err
	}
	if fi.IsDir() {
		return KindDirectory, nil
	}
	if !fi.Mode().IsRegular() {
		return KindUnknown, fmt.Errorf("%w: %s is not a regular file", ErrUnknownSource, path)
	}
	if fi.Size() == 0 {
		return KindYAML, nil
	}

	kind, err := filetype.MatchFile(path)
	if err != nil {
		return KindUnknown, err
	}
	switch kind.Extension {
	case "sqlite":
		return KindSQLite, nil
	case "zip":
		return KindArchive, nil
	case filetype.Unknown.Extension:
		// text has no signature
		return KindYAML, nil
	default:
		return KindUnknown, fmt.Errorf("%w: %s looks like %s", ErrUnknownSource, path, kind.MIME.Value)
	}
}

// Open loads all records from path.
func Open(path string, opts Options) (*Memory, error) {
	if opts.Pattern == "" {
		opts.Pattern = defaultPattern
	}

	kind, err := Detect(path)
	if err != nil {
		return nil, err
	}

	b := newBuilder()
	switch kind {
	case KindYAML:
		err = b.loadYAMLFile(path)
	case KindArchive:
		err = b.loadYAMLArchive(path, opts.Pattern)
	case KindDirectory:
		err = b.loadYAMLDir(path, opts.Pattern)
	case KindSQLite:
		err = b.loadSQLite(path, opts.CodePage)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load %s %s: %w", kind, path, err)
	}
	return b.build()
}
