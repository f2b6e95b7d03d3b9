package alias

import (
	"errors"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Save("my-feature", "12345", false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load("my-feature")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "12345" {
		t.Errorf("Load = %q, want %q", got, "12345")
	}
}

func TestStoreSaveExisting(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Save("dup", "1", false); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("dup", "2", false); !errors.Is(err, ErrExists) {
		t.Errorf("err = %v, want ErrExists", err)
	}

	// Force overwrites.
	if err := store.Save("dup", "2", true); err != nil {
		t.Fatalf("Save with force: %v", err)
	}
	if got, _ := store.Load("dup"); got != "2" {
		t.Errorf("Load = %q, want %q", got, "2")
	}
}

func TestStoreRejectsAtSign(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save("bad@name", "1", false); !errors.Is(err, ErrInvalidName) {
		t.Errorf("err = %v, want ErrInvalidName", err)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreResolve(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save("release", "777", false); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{value: "12345", want: "12345"},
		{value: "release", want: "777"},
		{value: "missing", wantErr: true},
	}

	for _, tt := range tests {
		got, err := store.Resolve(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Resolve(%q) succeeded, want error", tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("Resolve(%q): %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestStoreListAndDelete(t *testing.T) {
	store := NewStore(t.TempDir())

	for name, cl := range map[string]string{"beta": "2", "alpha": "1"} {
		if err := store.Save(name, cl, false); err != nil {
			t.Fatal(err)
		}
	}

	aliases, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(aliases) != 2 || aliases[0].Name != "alpha" || aliases[1].Name != "beta" {
		t.Errorf("List = %+v, want alpha then beta", aliases)
	}

	if err := store.Delete("alpha"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete("alpha"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	aliases, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(aliases) != 1 || aliases[0].Name != "beta" {
		t.Errorf("List after delete = %+v, want only beta", aliases)
	}
}

func TestStoreListEmpty(t *testing.T) {
	store := NewStore(t.TempDir())
	aliases, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(aliases) != 0 {
		t.Errorf("List = %+v, want empty", aliases)
	}
}
