package edit

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestParseNameStatus(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    Changes
		wantErr bool
	}{
		{
			name: "mixed statuses",
			lines: []string{
				"M\tsrc/a.c",
				"A\tsrc/new.c",
				"D\tsrc/old.c",
				"R100\tsrc/from.c\tsrc/to.c",
			},
			want: Changes{
				Adds:  []string{"src/new.c"},
				Mods:  []string{"src/a.c"},
				Dels:  []string{"src/old.c"},
				Moves: []Move{{From: "src/from.c", To: "src/to.c"}},
			},
		},
		{
			name:  "partial rename similarity",
			lines: []string{"R087\ta.c\tb.c"},
			want: Changes{
				Moves: []Move{{From: "a.c", To: "b.c"}},
			},
		},
		{
			name:    "rename without target",
			lines:   []string{"R100\tonly-source.c"},
			wantErr: true,
		},
		{
			name:    "unknown status",
			lines:   []string{"C50\ta.c\tb.c"},
			wantErr: true,
		},
		{
			name:    "malformed line",
			lines:   []string{"garbage"},
			wantErr: true,
		},
		{
			name: "empty input",
			want: Changes{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNameStatus(tt.lines)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNameStatus: %v", err)
			}
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("ParseNameStatus = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestChangesEmpty(t *testing.T) {
	if !(&Changes{}).Empty() {
		t.Error("zero Changes should be empty")
	}
	if (&Changes{Adds: []string{"a"}}).Empty() {
		t.Error("Changes with an add should not be empty")
	}
}

// fakeDepot records operations and simulates files already opened in
// changelists.
type fakeDepot struct {
	opened map[string]string // path -> changelist
	ops    []string
}

func (d *fakeDepot) record(verb, changelist, path string) error {
	d.ops = append(d.ops, verb+" "+changelist+" "+path)
	return nil
}

func (d *fakeDepot) Add(_ context.Context, cl, path string) error {
	return d.record("add", cl, path)
}

func (d *fakeDepot) Edit(_ context.Context, cl, path string) error {
	return d.record("edit", cl, path)
}

func (d *fakeDepot) Reopen(_ context.Context, cl, path string) error {
	return d.record("reopen", cl, path)
}

func (d *fakeDepot) Delete(_ context.Context, cl, path string) error {
	return d.record("delete", cl, path)
}

func (d *fakeDepot) OpenedChangelist(_ context.Context, path string) (string, bool, error) {
	cl, ok := d.opened[path]
	return cl, ok, nil
}

func TestOpenerOpen(t *testing.T) {
	depot := &fakeDepot{
		opened: map[string]string{
			"mod-elsewhere.c": "999",
			"mod-same.c":      "100",
		},
	}

	changes := &Changes{
		Adds:  []string{"new.c"},
		Mods:  []string{"mod-fresh.c", "mod-elsewhere.c", "mod-same.c"},
		Dels:  []string{"gone.c"},
		Moves: []Move{{From: "old-name.c", To: "new-name.c"}},
	}

	opener := NewOpener(depot)
	if err := opener.Open(context.Background(), changes, "100"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	want := []string{
		"add 100 new.c",
		"edit 100 mod-fresh.c",
		"reopen 100 mod-elsewhere.c",
		"delete 100 gone.c",
		"delete 100 old-name.c",
		"add 100 new-name.c",
	}
	if !reflect.DeepEqual(depot.ops, want) {
		t.Errorf("operations = %q, want %q", depot.ops, want)
	}
}

func TestOpenerDryRun(t *testing.T) {
	depot := &fakeDepot{}
	var buf bytes.Buffer

	opener := NewOpener(depot)
	opener.DryRun = true
	opener.Out = &buf

	changes := &Changes{Adds: []string{"new.c"}, Dels: []string{"gone.c"}}
	if err := opener.Open(context.Background(), changes, "42"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if len(depot.ops) != 0 {
		t.Errorf("dry run executed operations: %q", depot.ops)
	}
	out := buf.String()
	for _, want := range []string{"would run: p4 add -c 42 new.c", "would run: p4 delete -c 42 gone.c"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
