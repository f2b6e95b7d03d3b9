package p4

import (
	"context"
	"fmt"
	"strings"
)

// Shelve shelves the changelist so its files are available for review.
func (d *Depot) Shelve(ctx context.Context, changelist string) error {
	res, err := d.run.Run(ctx, "p4", "shelve", "-f", "-Af", "-c", changelist)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("p4 shelve -c %s failed: %s", changelist, strings.Join(res.Stderr, "\n"))
	}
	return nil
}

// AddReviewKeyword appends the #review keyword to the changelist
// description so the review system picks it up on shelve. Adding the
// keyword twice is a no-op.
func (d *Depot) AddReviewKeyword(ctx context.Context, changelist string) (added bool, err error) {
	spec, err := d.Spec(ctx, changelist)
	if err != nil {
		return false, err
	}

	start, end := descriptionBounds(spec)
	if start < 0 {
		return false, fmt.Errorf("changelist %s spec has no Description field", changelist)
	}
	for _, line := range spec[start:end] {
		if strings.Contains(line, "#review") {
			return false, nil
		}
	}

	updated := make([]string, 0, len(spec)+1)
	updated = append(updated, spec[:end]...)
	updated = append(updated, "\t#review")
	updated = append(updated, spec[end:]...)

	if err := d.SaveSpec(ctx, updated); err != nil {
		return false, err
	}
	return true, nil
}

// descriptionBounds returns the index of the Description: header and the
// index one past the last tab-indented line of its block. start is -1
// when there is no Description field.
func descriptionBounds(spec []string) (start, end int) {
	start = -1
	for i, line := range spec {
		if strings.TrimSpace(line) == "Description:" {
			start = i
			break
		}
	}
	if start < 0 {
		return -1, -1
	}

	end = start + 1
	for end < len(spec) && strings.HasPrefix(spec[end], "\t") {
		end++
	}
	return start, end
}
