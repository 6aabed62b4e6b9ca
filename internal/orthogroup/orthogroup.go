package orthogroup

// Package orthogroup parses OrthoFinder-style membership files:
//
//	OG0000001: SA_p1 SB_p4 SC_p2
//
// one orthogroup per line, ID before the first colon, members
// whitespace-separated after it. Source order is preserved so output is
// reproducible.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Orthogroup is one parsed membership line.
type Orthogroup struct {
	ID      string
	Members []string
}

// MalformedLineError reports a non-blank line without the colon
// separator. Silently dropping such a line would desynchronize the
// species counts from the source file, so parsing stops here.
type MalformedLineError struct {
	Path string
	Line int
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%s:%d: orthogroup line missing %q separator: %q", e.Path, e.Line, ":", e.Text)
}

// Parse reads orthogroups from r; name is used in error messages.
// Blank lines are skipped.
func Parse(r io.Reader, name string) ([]Orthogroup, error) {
	sc := bufio.NewScanner(r)
	// membership lines of large orthogroups run long
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var groups []Orthogroup
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		id, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, &MalformedLineError{Path: name, Line: lineNo, Text: raw}
		}
		groups = append(groups, Orthogroup{
			ID:      strings.TrimSpace(id),
			Members: strings.Fields(rest),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return groups, nil
}

// ParseFile parses the orthogroup membership file at path.
func ParseFile(path string) ([]Orthogroup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}
