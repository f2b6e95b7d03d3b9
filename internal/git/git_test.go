package git

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot: %v", err)
	}
	if got != root {
		t.Errorf("FindRoot = %q, want %q", got, root)
	}
}

func TestFindRootNoWorkspace(t *testing.T) {
	_, err := FindRoot(t.TempDir())
	if !errors.Is(err, ErrNoWorkspace) {
		t.Errorf("err = %v, want ErrNoWorkspace", err)
	}
}

func TestFindRootIgnoresGitFile(t *testing.T) {
	// Submodules and worktrees have a .git file, not a directory; the
	// search keeps walking up past those.
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "vendor", "lib")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, ".git"), []byte("gitdir: ../../.git/modules/lib\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot(sub)
	if err != nil {
		t.Fatalf("FindRoot: %v", err)
	}
	if got != root {
		t.Errorf("FindRoot = %q, want %q", got, root)
	}
}

func TestEnumerateSubjects(t *testing.T) {
	subjects := []string{"first change", "second change"}

	got := EnumerateSubjects(subjects, 3)
	want := []string{"3. first change", "4. second change"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EnumerateSubjects = %q, want %q", got, want)
	}

	if got := EnumerateSubjects(nil, 1); len(got) != 0 {
		t.Errorf("EnumerateSubjects(nil) = %q, want empty", got)
	}
}
