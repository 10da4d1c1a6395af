package dump

import "errors"

var (
	// ErrNullRecord is returned when record (or record it refers to) is absent.
	ErrNullRecord = errors.New("form is null")
	// ErrUnsupportedRecordKind is returned for anything except leveled lists
	// and form ID lists.
	ErrUnsupportedRecordKind = errors.New("form is not a leveled list or a form ID list")
	// ErrMissingSourceList is returned when record does not know which plugin
	// it came from.
	ErrMissingSourceList = errors.New("form has no source files")
)
