package command

import (
	"fmt"

	"github.com/kballard/go-shellquote"
)

// Split breaks a command line into words using POSIX shell quoting.
func Split(line string) ([]string, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("splitting command line: %w", err)
	}
	return words, nil
}

// Quote renders words as a command line that Split reads back unchanged.
func Quote(words ...string) string {
	return shellquote.Join(words...)
}
