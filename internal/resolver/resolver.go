package resolver

import "strings"

// Marker prefixes. Matching is line-initial and case-sensitive; whatever follows the
// prefix is ignored.
const (
	StartMarker     = "<<<<<<< HEAD"
	SeparatorMarker = "======="
	EndMarker       = ">>>>>>>"
)

// DefaultThreshold is the offset below which a conflict keeps HEAD.
const DefaultThreshold = 100

type Side int

const (
	KeepHead Side = iota
	KeepTheirs
)

func (s Side) String() string {
	if s == KeepHead {
		return "head"
	}
	return "theirs"
}

// Block is one conflict span. Offsets are 0-based positions in the original input.
type Block struct {
	Start     int
	Separator int
	End       int
	Head      []string
	Theirs    []string
	// Ref is the text after the end marker, e.g. a branch name. It plays no part in
	// the decision.
	Ref string
}

// Decision binds a chosen side to the block it was made for.
type Decision struct {
	Offset int
	Side   Side
	Block  Block
}

// Kept returns the lines the decision keeps.
func (d Decision) Kept() []string {
	if d.Side == KeepHead {
		return d.Block.Head
	}
	return d.Block.Theirs
}

type Result struct {
	Lines     []string
	Decisions []Decision
}

// Changed reports whether any conflict block was resolved.
func (r Result) Changed() bool {
	return len(r.Decisions) > 0
}

type Options struct {
	// Threshold is compared against each block's start offset. Zero keeps THEIRS
	// for every block.
	Threshold int
	// Observer, when set, receives every decision in scan order once the whole input
	// has been resolved.
	Observer func(Decision)
}

// Resolver holds immutable options and is safe for concurrent use.
type Resolver struct {
	threshold int
	observer  func(Decision)
}

func New(opts Options) *Resolver {
	threshold := opts.Threshold
	if threshold < 0 {
		threshold = 0
	}
	return &Resolver{threshold: threshold, observer: opts.Observer}
}

// Default returns a resolver using DefaultThreshold.
func Default() *Resolver {
	return New(Options{Threshold: DefaultThreshold})
}

func (r *Resolver) Threshold() int {
	return r.threshold
}

// Decide applies the positional rule to a block start offset.
func (r *Resolver) Decide(offset int) Side {
	if offset < r.threshold {
		return KeepHead
	}
	return KeepTheirs
}

// Resolve scans lines once and returns the output with every conflict replaced by the
// side its position selects. Lines are expected to carry their terminators.
func (r *Resolver) Resolve(lines []string) (Result, error) {
	s := scanner{decide: r.Decide, out: make([]string, 0, len(lines))}
	for i, line := range lines {
		if err := s.step(i, line); err != nil {
			return Result{}, err
		}
	}
	if err := s.finish(len(lines)); err != nil {
		return Result{}, err
	}

	if r.observer != nil {
		for _, d := range s.decisions {
			r.observer(d)
		}
	}
	return Result{Lines: s.out, Decisions: s.decisions}, nil
}

// ResolveString is Resolve over text split with SplitLines.
func (r *Resolver) ResolveString(text string) (string, []Decision, error) {
	res, err := r.Resolve(SplitLines(text))
	if err != nil {
		return "", nil, err
	}
	return strings.Join(res.Lines, ""), res.Decisions, nil
}

// SplitLines splits text after every '\n', keeping the terminator on each line. A final
// line without a terminator is kept as is.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func IsStart(line string) bool {
	return strings.HasPrefix(line, StartMarker)
}

func IsSeparator(line string) bool {
	return strings.HasPrefix(line, SeparatorMarker)
}

func IsEnd(line string) bool {
	return strings.HasPrefix(line, EndMarker)
}

// IsMarker reports whether line matches any of the three marker prefixes.
func IsMarker(line string) bool {
	return IsStart(line) || IsSeparator(line) || IsEnd(line)
}
