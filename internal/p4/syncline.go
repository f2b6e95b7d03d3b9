package p4

import (
	"regexp"
	"strings"
)

// Action classifies one line of p4 sync output.
type Action string

const (
	ActionAdd     Action = "add"
	ActionDelete  Action = "del"
	ActionUpdate  Action = "upd"
	ActionClobber Action = "clb"
	ActionNone    Action = ""
)

// clobberPrefix is the exact message p4 emits when it refuses to overwrite
// a writable file it does not consider checked out.
const clobberPrefix = "Can't clobber writable file "

// upToDateRe matches the notice p4 prints when every revision is already
// synced.
var upToDateRe = regexp.MustCompile(`//\.\.\.@\d+ - file\(s\) up-to-date\.`)

// syncMarkers are the fixed substrings that classify p4 sync output.
// They must track the p4 client's message format.
var syncMarkers = []struct {
	action Action
	marker string
}{
	{ActionAdd, " - added as "},
	{ActionDelete, " - deleted as "},
	{ActionUpdate, " - updating "},
	{ActionClobber, clobberPrefix},
}

// ParseSyncLine classifies one line of p4 sync output and returns the file
// path the line refers to. Lines matching none of the markers yield
// (ActionNone, "").
func ParseSyncLine(line string) (Action, string) {
	for _, m := range syncMarkers {
		if _, after, found := strings.Cut(line, m.marker); found {
			return m.action, after
		}
	}
	return ActionNone, ""
}

// IsUpToDateNotice reports whether line is the "file(s) up-to-date" notice.
func IsUpToDateNotice(line string) bool {
	return upToDateRe.MatchString(line)
}

// WritableFiles extracts, in original order, the paths of files p4 refused
// to clobber from captured stderr lines.
func WritableFiles(stderr []string) []string {
	var files []string
	for _, line := range stderr {
		if !strings.HasPrefix(line, clobberPrefix) {
			continue
		}
		files = append(files, strings.TrimRight(line[len(clobberPrefix):], " \t\r\n"))
	}
	return files
}
