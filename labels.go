package objtrack

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadLabels reads the class labels of a detection network from file, one
// label per line with the line index being the class ID.  Lines starting
// with '#' are comments and do not take a class ID.
func LoadLabels(file string) ([]string, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening labels file: %w", err)
	}

	defer f.Close()

	labels, err := ReadLabels(f)

	if err != nil {
		return nil, fmt.Errorf("error reading labels %s: %w", file, err)
	}

	return labels, nil
}

// ReadLabels parses class labels from r.  Blank lines keep their class ID
// as an empty label, except at the end of input where they are dropped.
func ReadLabels(r io.Reader) ([]string, error) {

	scanner := bufio.NewScanner(r)

	var labels []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "#") {
			continue
		}

		labels = append(labels, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for len(labels) > 0 && labels[len(labels)-1] == "" {
		labels = labels[:len(labels)-1]
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("no labels found")
	}

	return labels, nil
}
