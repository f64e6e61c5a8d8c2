package resolver

import "strings"

type mode int

const (
	modeNormal mode = iota
	modeHead
	modeTheirs
)

func (m mode) String() string {
	switch m {
	case modeHead:
		return "head"
	case modeTheirs:
		return "theirs"
	default:
		return "normal"
	}
}

// scanner is the per-call state of one Resolve pass.
type scanner struct {
	decide    func(offset int) Side
	mode      mode
	block     Block
	out       []string
	decisions []Decision
}

func (s *scanner) step(offset int, line string) error {
	switch s.mode {
	case modeNormal:
		switch {
		case IsStart(line):
			s.block = Block{Start: offset}
			s.mode = modeHead
		case IsSeparator(line):
			return s.fail(RuleUnexpectedSeparator, offset, line)
		case IsEnd(line):
			return s.fail(RuleUnexpectedEnd, offset, line)
		default:
			s.out = append(s.out, line)
		}

	case modeHead:
		switch {
		case IsSeparator(line):
			s.block.Separator = offset
			s.mode = modeTheirs
		case IsStart(line):
			return s.fail(RuleNestedStart, offset, line)
		case IsEnd(line):
			return s.fail(RuleUnexpectedEnd, offset, line)
		default:
			s.block.Head = append(s.block.Head, line)
		}

	case modeTheirs:
		switch {
		case IsEnd(line):
			s.block.End = offset
			s.block.Ref = strings.TrimSpace(strings.TrimPrefix(line, EndMarker))
			s.close()
		case IsStart(line):
			return s.fail(RuleNestedStart, offset, line)
		case IsSeparator(line):
			return s.fail(RuleUnexpectedSeparator, offset, line)
		default:
			s.block.Theirs = append(s.block.Theirs, line)
		}
	}
	return nil
}

func (s *scanner) close() {
	d := Decision{Offset: s.block.Start, Side: s.decide(s.block.Start), Block: s.block}
	s.out = append(s.out, d.Kept()...)
	s.decisions = append(s.decisions, d)
	s.block = Block{}
	s.mode = modeNormal
}

func (s *scanner) finish(total int) error {
	if s.mode == modeNormal {
		return nil
	}
	return s.fail(RuleUnterminatedBlock, total, "")
}

func (s *scanner) fail(rule Rule, offset int, line string) *StructureError {
	err := newStructureError(rule, offset, line)
	err.state = s.mode
	if s.mode != modeNormal {
		err.OpenedAt = s.block.Start
	}
	return err
}
