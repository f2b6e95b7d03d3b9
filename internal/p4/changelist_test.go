package p4

import (
	"reflect"
	"testing"
)

var sampleSpec = []string{
	"# A Perforce Change Specification.",
	"",
	"Change:\tnew",
	"",
	"Client:\tbuild-ws",
	"",
	"Description:",
	"\tFix crash in renderer",
	"\t",
	"\t1. first commit",
	"\t2. second commit",
	"",
	"Files:",
	"\t//depot/main/a.c",
}

func TestExtractDescription(t *testing.T) {
	got := ExtractDescription(sampleSpec)
	want := []string{
		"Fix crash in renderer",
		"",
		"1. first commit",
		"2. second commit",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractDescription = %q, want %q", got, want)
	}
}

func TestExtractDescriptionMissing(t *testing.T) {
	spec := []string{"Change:\tnew", "", "Client:\tbuild-ws"}
	if got := ExtractDescription(spec); got != nil {
		t.Errorf("ExtractDescription = %q, want nil", got)
	}
}

func TestReplaceDescription(t *testing.T) {
	got := ReplaceDescription(sampleSpec, []string{"New message", "1. only commit"})

	want := []string{
		"# A Perforce Change Specification.",
		"",
		"Change:\tnew",
		"",
		"Client:\tbuild-ws",
		"",
		"Description:",
		"\tNew message",
		"\t1. only commit",
		"",
		"Files:",
		"\t//depot/main/a.c",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReplaceDescription =\n%q\nwant\n%q", got, want)
	}
}

func TestSplitDescription(t *testing.T) {
	tests := []struct {
		name         string
		lines        []string
		wantMessage  []string
		wantCommits  []string
		wantTrailing []string
	}{
		{
			name:        "message and commits",
			lines:       []string{"Fix crash", "", "1. first", "2. second"},
			wantMessage: []string{"Fix crash", ""},
			wantCommits: []string{"1. first", "2. second"},
		},
		{
			name:         "trailing text after list",
			lines:        []string{"msg", "1. first", "#review"},
			wantMessage:  []string{"msg"},
			wantCommits:  []string{"1. first"},
			wantTrailing: []string{"#review"},
		},
		{
			name:        "no numbered list",
			lines:       []string{"just a message", "two lines"},
			wantMessage: []string{"just a message", "two lines"},
		},
		{
			name:         "non-consecutive numbers end the list",
			lines:        []string{"1. first", "3. not next"},
			wantMessage:  []string{},
			wantCommits:  []string{"1. first"},
			wantTrailing: []string{"3. not next"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message, commits, trailing := SplitDescription(tt.lines)
			if !equalLines(message, tt.wantMessage) {
				t.Errorf("message = %q, want %q", message, tt.wantMessage)
			}
			if !equalLines(commits, tt.wantCommits) {
				t.Errorf("commits = %q, want %q", commits, tt.wantCommits)
			}
			if !equalLines(trailing, tt.wantTrailing) {
				t.Errorf("trailing = %q, want %q", trailing, tt.wantTrailing)
			}
		})
	}
}

// equalLines treats nil and empty slices the same.
func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDescriptionBounds(t *testing.T) {
	start, end := descriptionBounds(sampleSpec)
	if start != 6 {
		t.Errorf("start = %d, want 6", start)
	}
	if end != 11 {
		t.Errorf("end = %d, want 11", end)
	}

	if start, _ := descriptionBounds([]string{"Change:\tnew"}); start != -1 {
		t.Errorf("start = %d, want -1", start)
	}
}
