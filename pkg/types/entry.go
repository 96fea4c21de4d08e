package types

import "time"

// Entry represents a single file or directory reported by an rclone listing.
type Entry struct {
	Path       string // path relative to the listing root
	Size       int64  // bytes; -1 when unknown
	ModTime    time.Time
	ModTimeRaw string // modtime as reported by rclone; zero ModTime means it did not parse
	IsDir      bool
	Hashes     map[string]string // hash name -> hex digest, when requested
}

// Hash returns the named hash for the entry, or "" if not present.
func (e Entry) Hash(name string) string {
	if e.Hashes == nil {
		return ""
	}
	return e.Hashes[name]
}
