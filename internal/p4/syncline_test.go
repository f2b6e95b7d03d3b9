package p4

import (
	"reflect"
	"testing"
)

func TestParseSyncLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantAction Action
		wantPath   string
	}{
		{
			name:       "added file",
			line:       "//depot/main/a.c#1 - added as /ws/main/a.c",
			wantAction: ActionAdd,
			wantPath:   "/ws/main/a.c",
		},
		{
			name:       "deleted file",
			line:       "//depot/main/old.c#3 - deleted as /ws/main/old.c",
			wantAction: ActionDelete,
			wantPath:   "/ws/main/old.c",
		},
		{
			name:       "updated file",
			line:       "//depot/main/b.c#7 - updating /ws/main/b.c",
			wantAction: ActionUpdate,
			wantPath:   "/ws/main/b.c",
		},
		{
			name:       "clobber refusal",
			line:       "Can't clobber writable file /ws/main/gen.h",
			wantAction: ActionClobber,
			wantPath:   "/ws/main/gen.h",
		},
		{
			name:       "unclassified line",
			line:       "//depot/main/... - must resolve before submitting",
			wantAction: ActionNone,
			wantPath:   "",
		},
		{
			name:       "empty line",
			line:       "",
			wantAction: ActionNone,
			wantPath:   "",
		},
		{
			name:       "path containing spaces",
			line:       "//depot/doc/read me.txt#2 - updating /ws/doc/read me.txt",
			wantAction: ActionUpdate,
			wantPath:   "/ws/doc/read me.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, path := ParseSyncLine(tt.line)
			if action != tt.wantAction {
				t.Errorf("action = %q, want %q", action, tt.wantAction)
			}
			if path != tt.wantPath {
				t.Errorf("path = %q, want %q", path, tt.wantPath)
			}
		})
	}
}

func TestIsUpToDateNotice(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"//...@12345 - file(s) up-to-date.", true},
		{"//depot/main/a.c#1 - added as /ws/main/a.c", false},
		{"//...@abc - file(s) up-to-date.", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsUpToDateNotice(tt.line); got != tt.want {
			t.Errorf("IsUpToDateNotice(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWritableFiles(t *testing.T) {
	stderr := []string{
		"Can't clobber writable file /ws/b/second.c",
		"some unrelated diagnostic",
		"Can't clobber writable file /ws/a/first.c  ",
		"Can't clobber writable file /ws/c/third.c",
	}

	got := WritableFiles(stderr)
	want := []string{"/ws/b/second.c", "/ws/a/first.c", "/ws/c/third.c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WritableFiles = %v, want %v", got, want)
	}
}

func TestWritableFilesNone(t *testing.T) {
	stderr := []string{"error: connection reset", "usage: p4 sync"}
	if got := WritableFiles(stderr); got != nil {
		t.Errorf("WritableFiles = %v, want nil", got)
	}
}
