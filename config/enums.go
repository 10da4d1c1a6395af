package config

// NameScheme selects how dump file names are built.
type NameScheme string

const (
	// NameSchemeTimestamp names dumps <prefix><timestamp>.json
	NameSchemeTimestamp NameScheme = "timestamp"
	// NameSchemeEditorID appends editor id of the dumped record to the
	// timestamped name
	NameSchemeEditorID NameScheme = "editorid"
)
