package ids

import "github.com/segmentio/ksuid"

// New returns a new sortable record key.
func New() string {
	return ksuid.New().String()
}

// Valid reports whether the value parses as a record key.
func Valid(value string) bool {
	_, err := ksuid.Parse(value)
	return err == nil
}
