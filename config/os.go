package config

import "os"

const badFileName = "_bad_file_name_"

// noColor follows https://no-color.org convention.
func noColor() bool {
	v, ok := os.LookupEnv("NO_COLOR")
	return ok && v != ""
}
