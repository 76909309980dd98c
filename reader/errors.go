package reader

import (
	"fmt"
	"strings"
)

// FileAccessError reports a corpus file that could not be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("reader: cannot read corpus %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// MalformedLineError reports a non-blank line that does not hold exactly
// one word and one tag.
type MalformedLineError struct {
	Path   string
	Line   int
	Text   string
	Fields int
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("reader: %s:%d: expected 2 fields, got %d: %q", e.Path, e.Line, e.Fields, e.Text)
}

// MalformedLinesError collects the lines skipped under the Skip policy.
type MalformedLinesError struct {
	Lines []*MalformedLineError
}

func (e *MalformedLinesError) Error() string {
	if len(e.Lines) == 1 {
		return e.Lines[0].Error()
	}

	nums := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		nums = append(nums, fmt.Sprint(l.Line))
	}
	return fmt.Sprintf("reader: %d malformed lines skipped (lines %s)", len(e.Lines), strings.Join(nums, ", "))
}

// LineNumbers returns the 1-based numbers of the skipped lines.
func (e *MalformedLinesError) LineNumbers() []int {
	nums := make([]int, 0, len(e.Lines))
	for _, l := range e.Lines {
		nums = append(nums, l.Line)
	}
	return nums
}
