// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"path/filepath"
	"regexp"
	"time"
)

var filenameDateRe = regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`)

// DateFromFilename returns the meeting date encoded in the first M-D-YYYY
// substring of the file's base name. It returns nil when there is none or
// when it does not name a real calendar date.
func DateFromFilename(name string) *time.Time {
	m := filenameDateRe.FindString(filepath.Base(name))
	if m == "" {
		return nil
	}
	t, err := time.Parse("1-2-2006", m)
	if err != nil {
		return nil
	}
	return &t
}
