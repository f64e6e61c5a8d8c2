package resolver

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed matches every *StructureError.
var ErrMalformed = errors.New("malformed conflict structure")

type Rule string

const (
	RuleUnexpectedSeparator Rule = "unexpected separator marker"
	RuleUnexpectedEnd       Rule = "unexpected end marker"
	RuleNestedStart         Rule = "start marker inside an open conflict"
	RuleUnterminatedBlock   Rule = "conflict not closed before end of input"
)

// StructureError reports a marker that violates the start/separator/end order.
type StructureError struct {
	Rule Rule
	// Offset is the line that broke the rule, or the input length for
	// RuleUnterminatedBlock.
	Offset int
	Line   string
	// OpenedAt is the start offset of the block left open, -1 when none was.
	OpenedAt int
	state    mode
}

func newStructureError(rule Rule, offset int, line string) *StructureError {
	return &StructureError{
		Rule:     rule,
		Offset:   offset,
		Line:     strings.TrimRight(line, "\r\n"),
		OpenedAt: -1,
	}
}

func (e *StructureError) Error() string {
	if e.Rule == RuleUnterminatedBlock {
		return fmt.Sprintf("%s: %s (opened at line %d, in %s section)", ErrMalformed, e.Rule, e.OpenedAt, e.state)
	}
	return fmt.Sprintf("%s: %s at line %d (%q, in %s section)", ErrMalformed, e.Rule, e.Offset, e.Line, e.state)
}

func (e *StructureError) Is(target error) bool {
	return target == ErrMalformed
}
