package pattern

import (
	"fmt"
	"unicode"
)

// DefaultStepBudget bounds how many VM instructions a single match
// attempt may execute before the engine gives up, guarding against
// catastrophic backtracking on pathological input/pattern combinations
// (spec.md §7's step-counter budget).
const DefaultStepBudget = 1_000_000

// ErrStepBudgetExceeded is returned when a match attempt runs past its
// step budget.
var ErrStepBudgetExceeded = fmt.Errorf("pattern: step budget exceeded")

// MatchResult is one successful match: its span plus any named captures.
type MatchResult struct {
	Start    int
	End      int
	Text     string
	Captures map[string]string
}

type vm struct {
	input  []rune
	prog   *Program
	budget int
}

// runFrom attempts to match prog anchored exactly at sp, returning the
// end position and capture slots on success.
func (m *vm) runFrom(sp int, captures []int) (int, []int, bool, error) {
	return m.step(0, sp, captures)
}

func (m *vm) step(pc, sp int, captures []int) (int, []int, bool, error) {
	m.budget--
	if m.budget <= 0 {
		return 0, nil, false, ErrStepBudgetExceeded
	}
	instr := m.prog.Instructions[pc]
	switch instr.Op {
	case OpChar:
		if sp >= len(m.input) || m.input[sp] != instr.Rune {
			return 0, nil, false, nil
		}
		return m.step(pc+1, sp+1, captures)
	case OpCharClass:
		if sp >= len(m.input) || !matchesClass(m.input[sp], instr.Class, instr.Negated) {
			return 0, nil, false, nil
		}
		return m.step(pc+1, sp+1, captures)
	case OpAnchor:
		if !m.checkAnchor(instr.Anchor, sp) {
			return 0, nil, false, nil
		}
		return m.step(pc+1, sp, captures)
	case OpJump:
		return m.step(instr.X, sp, captures)
	case OpSplit:
		branchCaps := append([]int(nil), captures...)
		if end, caps, ok, err := m.step(instr.X, sp, branchCaps); ok || err != nil {
			return end, caps, ok, err
		}
		return m.step(instr.Y, sp, captures)
	case OpStartCapture:
		next := append([]int(nil), captures...)
		next[instr.CaptureIdx*2] = sp
		return m.step(pc+1, sp, next)
	case OpEndCapture:
		next := append([]int(nil), captures...)
		next[instr.CaptureIdx*2+1] = sp
		return m.step(pc+1, sp, next)
	case OpBackreference:
		start, end := captures[instr.CaptureIdx*2], captures[instr.CaptureIdx*2+1]
		if start < 0 || end < 0 {
			return 0, nil, false, nil
		}
		text := m.input[start:end]
		if sp+len(text) > len(m.input) {
			return 0, nil, false, nil
		}
		for i, r := range text {
			if m.input[sp+i] != r {
				return 0, nil, false, nil
			}
		}
		return m.step(pc+1, sp+len(text), captures)
	case OpLookahead:
		matched, _, err := m.runSub(instr.Sub, sp)
		if err != nil {
			return 0, nil, false, err
		}
		if matched == instr.SubNegative {
			return 0, nil, false, nil
		}
		return m.step(pc+1, sp, captures)
	case OpLookbehind:
		start := sp - instr.SubLength
		if start < 0 {
			if instr.SubNegative {
				return m.step(pc+1, sp, captures)
			}
			return 0, nil, false, nil
		}
		matched, end, err := m.runSub(instr.Sub, start)
		if err != nil {
			return 0, nil, false, err
		}
		ok := matched && end == sp
		if ok == instr.SubNegative {
			return 0, nil, false, nil
		}
		return m.step(pc+1, sp, captures)
	case OpMatch:
		return sp, captures, true, nil
	default:
		return 0, nil, false, fmt.Errorf("pattern: unknown opcode %v", instr.Op)
	}
}

// runSub runs a lookaround's self-contained sub-program anchored at sp,
// sharing this vm's budget and input.
func (m *vm) runSub(sub *Program, sp int) (bool, int, error) {
	caps := make([]int, sub.NumCaptures*2)
	for i := range caps {
		caps[i] = -1
	}
	subVM := &vm{input: m.input, prog: sub, budget: m.budget}
	end, _, ok, err := subVM.step(0, sp, caps)
	m.budget = subVM.budget
	if err != nil {
		return false, 0, err
	}
	return ok, end, nil
}

func (m *vm) checkAnchor(kind AnchorKind, sp int) bool {
	switch kind {
	case AnchorStartOfText:
		return sp == 0
	case AnchorEndOfText:
		return sp == len(m.input)
	case AnchorWordBoundary:
		before := sp > 0 && isWordRune(m.input[sp-1])
		after := sp < len(m.input) && isWordRune(m.input[sp])
		return before != after
	default:
		return false
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func matchesClass(r rune, name ClassName, negated bool) bool {
	var in bool
	switch name {
	case ClassDigit:
		in = unicode.IsDigit(r)
	case ClassLetter:
		in = unicode.IsLetter(r)
	case ClassWhitespace:
		in = unicode.IsSpace(r)
	case ClassWord:
		in = isWordRune(r)
	case ClassAny:
		in = true
	}
	if negated {
		return !in
	}
	return in
}

// FindFrom searches input (as runes) for the first match of prog at or
// after fromRune, returning nil if none is found within the step budget.
func FindFrom(prog *Program, input []rune, fromRune int, budget int) (*MatchResult, error) {
	for start := fromRune; start <= len(input); start++ {
		caps := make([]int, prog.NumCaptures*2)
		for i := range caps {
			caps[i] = -1
		}
		m := &vm{input: input, prog: prog, budget: budget}
		end, finalCaps, ok, err := m.runFrom(start, caps)
		if err != nil {
			return nil, err
		}
		if ok {
			return buildResult(prog, input, start, end, finalCaps), nil
		}
	}
	return nil, nil
}

func buildResult(prog *Program, input []rune, start, end int, caps []int) *MatchResult {
	captures := make(map[string]string, len(prog.CaptureNames))
	for name, idx := range prog.CaptureNames {
		s, e := caps[idx*2], caps[idx*2+1]
		if s >= 0 && e >= 0 {
			captures[name] = string(input[s:e])
		}
	}
	return &MatchResult{Start: start, End: end, Text: string(input[start:end]), Captures: captures}
}
