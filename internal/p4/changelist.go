package p4

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// changeCreatedRe extracts the number from "Change 12345 created."
var changeCreatedRe = regexp.MustCompile(`Change (\d+) created`)

// CreateChangelist creates a new changelist whose description is the given
// lines, and returns its number.
func (d *Depot) CreateChangelist(ctx context.Context, description []string) (string, error) {
	tabbed := strings.Join(description, "\n\t")
	spec := fmt.Sprintf("Change: new\n\nDescription:\n\t%s\n", tabbed)

	res, err := d.run.RunInput(ctx, spec, "p4", "change", "-i")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("p4 change -i failed: %s", strings.Join(res.Stderr, "\n"))
	}

	for _, line := range res.Stdout {
		if m := changeCreatedRe.FindStringSubmatch(line); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("no changelist number in p4 change output: %q", strings.Join(res.Stdout, "\n"))
}

// Spec fetches the changelist spec as raw lines from p4 change -o.
func (d *Depot) Spec(ctx context.Context, changelist string) ([]string, error) {
	res, err := d.run.Run(ctx, "p4", "change", "-o", changelist)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("p4 change -o %s failed: %s", changelist, strings.Join(res.Stderr, "\n"))
	}
	return res.Stdout, nil
}

// SaveSpec writes a modified spec back with p4 change -i.
func (d *Depot) SaveSpec(ctx context.Context, spec []string) error {
	res, err := d.run.RunInput(ctx, strings.Join(spec, "\n")+"\n", "p4", "change", "-i")
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("p4 change -i failed: %s", strings.Join(res.Stderr, "\n"))
	}
	return nil
}

// UpdateDescription splices new enumerated commit lines into an existing
// changelist's description, preserving the user message, the existing
// numbered list, and any trailing text.
//
// newLines is a function of the next list number so callers can generate
// the continuation only once the existing count is known.
func (d *Depot) UpdateDescription(ctx context.Context, changelist string, newLines func(startNumber int) ([]string, error)) error {
	spec, err := d.Spec(ctx, changelist)
	if err != nil {
		return err
	}

	desc := ExtractDescription(spec)
	message, commits, trailing := SplitDescription(desc)

	added, err := newLines(len(commits) + 1)
	if err != nil {
		return err
	}

	var rebuilt []string
	rebuilt = append(rebuilt, message...)
	rebuilt = append(rebuilt, commits...)
	rebuilt = append(rebuilt, added...)
	rebuilt = append(rebuilt, trailing...)

	return d.SaveSpec(ctx, ReplaceDescription(spec, rebuilt))
}

// ExtractDescription returns the tab-indented lines under the
// "Description:" header of a changelist spec, tabs stripped.
func ExtractDescription(spec []string) []string {
	i := findLineWithPrefix(spec, "Description:") + 1

	var desc []string
	for ; i < len(spec) && strings.HasPrefix(spec[i], "\t"); i++ {
		desc = append(desc, spec[i][1:])
	}
	return desc
}

// ReplaceDescription returns a copy of the spec with its Description block
// replaced by the given lines.
func ReplaceDescription(spec []string, desc []string) []string {
	i := findLineWithPrefix(spec, "Description:")
	if i >= len(spec) {
		return spec
	}

	out := make([]string, 0, len(spec)+len(desc))
	out = append(out, spec[:i+1]...)
	for _, line := range desc {
		out = append(out, "\t"+line)
	}

	// Skip the old tab-indented block.
	i++
	for i < len(spec) && strings.HasPrefix(spec[i], "\t") {
		i++
	}
	return append(out, spec[i:]...)
}

// SplitDescription splits description lines into the user message, the
// enumerated commit list, and any trailing text. The commit list starts at
// the first "1. " line and continues while lines carry consecutive numbers.
func SplitDescription(lines []string) (message, commits, trailing []string) {
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "1. ") {
			start = i
			break
		}
	}
	if start < 0 {
		return lines, nil, nil
	}

	end := start + 1
	expected := 2
	for j := end; j < len(lines); j++ {
		if strings.HasPrefix(lines[j], fmt.Sprintf("%d. ", expected)) {
			expected++
			end = j + 1
		} else {
			break
		}
	}

	return lines[:start], lines[start:end], lines[end:]
}

func findLineWithPrefix(lines []string, prefix string) int {
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return i
		}
	}
	return len(lines)
}
