package git

import (
	"context"
	"fmt"
	"strings"
)

// CommitSubjectsSince returns the commit subjects between base and HEAD,
// oldest first.
func (r *Repo) CommitSubjectsSince(ctx context.Context, base string) ([]string, error) {
	res, err := r.run.Run(ctx, "git", "log", "--oneline", "--reverse",
		fmt.Sprintf("%s..HEAD", base))
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("git log failed: %s", strings.Join(res.Stderr, "\n"))
	}

	subjects := make([]string, 0, len(res.Stdout))
	for _, line := range res.Stdout {
		// Strip the abbreviated hash from "hash subject".
		if _, subject, found := strings.Cut(line, " "); found {
			subjects = append(subjects, subject)
		} else {
			subjects = append(subjects, line)
		}
	}
	return subjects, nil
}

// EnumerateSubjects renders subjects as a numbered list starting at start,
// the format embedded in changelist descriptions.
func EnumerateSubjects(subjects []string, start int) []string {
	lines := make([]string, 0, len(subjects))
	for i, subject := range subjects {
		lines = append(lines, fmt.Sprintf("%d. %s", start+i, subject))
	}
	return lines
}
