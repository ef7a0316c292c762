package pattern

import "fmt"

// Op identifies one bytecode instruction.
type Op int

const (
	OpChar          Op = iota // match a literal rune
	OpCharClass               // match a rune against a ClassName (Negated honored)
	OpAnchor                  // zero-width position assertion
	OpSplit                   // fork execution to two program counters (X then Y, backtracking to Y on X's failure)
	OpJump                    // unconditional jump
	OpStartCapture            // push the current input position as the start of capture N
	OpEndCapture              // record [start, current position) as capture N's span
	OpBackreference           // match exactly the text captured by group N
	OpLookahead               // run a sub-program at the current position without consuming input
	OpLookbehind              // run a sub-program ending at the current position without consuming input
	OpMatch                   // accept
)

// Instruction is one bytecode word. Fields are interpreted according to
// Op; unused fields are zero.
type Instruction struct {
	Op          Op
	Rune        rune
	Class       ClassName
	Negated     bool
	Anchor      AnchorKind
	X, Y        int // OpSplit's two targets; OpJump's single target is X
	CaptureIdx  int
	Sub         *Program // OpLookahead/OpLookbehind's sub-program
	SubNegative bool
	SubLength   int // OpLookbehind's fixed match length, computed at compile time
}

// Program is a compiled pattern: its instruction stream plus the names
// assigned to numbered capture groups.
type Program struct {
	Instructions []Instruction
	CaptureNames map[string]int // name -> capture index, for named captures
	NumCaptures  int
}

// compiler mirrors the original pattern compiler's structure: an
// instruction buffer plus capture bookkeeping, built by recursively
// compiling the Expr tree into patched Split/Jump chains.
type compiler struct {
	prog         []Instruction
	captureNames map[string]int
	saveCounter  int
}

// Compile lexes, parses, and compiles pattern DSL source text into a
// runnable Program.
func Compile(source string) (*Program, error) {
	expr, err := Parse(source)
	if err != nil {
		return nil, err
	}
	c := &compiler{captureNames: make(map[string]int)}
	if err := c.compileExpr(expr); err != nil {
		return nil, err
	}
	c.emit(Instruction{Op: OpMatch})
	return &Program{Instructions: c.prog, CaptureNames: c.captureNames, NumCaptures: c.saveCounter}, nil
}

func (c *compiler) emit(instr Instruction) int {
	c.prog = append(c.prog, instr)
	return len(c.prog) - 1
}

func (c *compiler) here() int { return len(c.prog) }

func (c *compiler) compileExpr(expr Expr) error {
	switch e := expr.(type) {
	case Literal:
		for _, r := range e.Text {
			c.emit(Instruction{Op: OpChar, Rune: r})
		}
		return nil
	case CharClass:
		c.emit(Instruction{Op: OpCharClass, Class: e.Name, Negated: e.Negated})
		return nil
	case Anchor:
		c.emit(Instruction{Op: OpAnchor, Anchor: e.Kind})
		return nil
	case Sequence:
		for _, item := range e.Items {
			if err := c.compileExpr(item); err != nil {
				return err
			}
		}
		return nil
	case Alternative:
		return c.compileAlternative(e.Options)
	case Quantified:
		return c.compileQuantified(e)
	case Capture:
		return c.compileCapture(e)
	case Backreference:
		idx, ok := c.captureNames[e.Name]
		if !ok {
			return fmt.Errorf("pattern: backreference to unknown capture %q", e.Name)
		}
		c.emit(Instruction{Op: OpBackreference, CaptureIdx: idx})
		return nil
	case Lookahead:
		sub, err := compileSub(e.Inner)
		if err != nil {
			return err
		}
		c.emit(Instruction{Op: OpLookahead, Sub: sub, SubNegative: e.Negative})
		return nil
	case Lookbehind:
		length, ok := fixedLength(e.Inner)
		if !ok {
			return fmt.Errorf("pattern: lookbehind requires a fixed-length expression")
		}
		sub, err := compileSub(e.Inner)
		if err != nil {
			return err
		}
		c.emit(Instruction{Op: OpLookbehind, Sub: sub, SubNegative: e.Negative, SubLength: length})
		return nil
	default:
		return fmt.Errorf("pattern: unhandled expression type %T", expr)
	}
}

// compileSub compiles expr as a self-contained Program, for lookaround
// sub-matching, which runs independently of the parent program's
// instruction stream.
func compileSub(expr Expr) (*Program, error) {
	c := &compiler{captureNames: make(map[string]int)}
	if err := c.compileExpr(expr); err != nil {
		return nil, err
	}
	c.emit(Instruction{Op: OpMatch})
	return &Program{Instructions: c.prog, CaptureNames: c.captureNames, NumCaptures: c.saveCounter}, nil
}

// compileAlternative emits a Split/Jump chain: Split(branch1, next),
// branch1, Jump(end), next: Split(branch2, next2), ... each branch
// falling through to a final Jump to end once it matches.
func (c *compiler) compileAlternative(options []Expr) error {
	var jumpsToEnd []int
	for i, opt := range options {
		isLast := i == len(options)-1
		var splitIdx int
		if !isLast {
			splitIdx = c.emit(Instruction{Op: OpSplit})
		}
		branchStart := c.here()
		if err := c.compileExpr(opt); err != nil {
			return err
		}
		if !isLast {
			jumpsToEnd = append(jumpsToEnd, c.emit(Instruction{Op: OpJump}))
			nextBranch := c.here()
			c.prog[splitIdx].X = branchStart
			c.prog[splitIdx].Y = nextBranch
		}
	}
	end := c.here()
	for _, idx := range jumpsToEnd {
		c.prog[idx].X = end
	}
	return nil
}

// compileQuantified lowers each repetition shape to Split/Jump loops,
// desugaring Exactly/Between into repeated copies of Inner.
func (c *compiler) compileQuantified(q Quantified) error {
	switch q.Kind {
	case QuantOptional:
		splitIdx := c.emit(Instruction{Op: OpSplit})
		branchStart := c.here()
		if err := c.compileExpr(q.Inner); err != nil {
			return err
		}
		end := c.here()
		c.prog[splitIdx].X = branchStart
		c.prog[splitIdx].Y = end
		return nil
	case QuantZeroOrMore:
		loopStart := c.here()
		splitIdx := c.emit(Instruction{Op: OpSplit})
		bodyStart := c.here()
		if err := c.compileExpr(q.Inner); err != nil {
			return err
		}
		c.emit(Instruction{Op: OpJump, X: loopStart})
		end := c.here()
		c.prog[splitIdx].X = bodyStart
		c.prog[splitIdx].Y = end
		return nil
	case QuantOneOrMore:
		bodyStart := c.here()
		if err := c.compileExpr(q.Inner); err != nil {
			return err
		}
		splitIdx := c.emit(Instruction{Op: OpSplit})
		end := c.here()
		c.prog[splitIdx].X = bodyStart
		c.prog[splitIdx].Y = end
		return nil
	case QuantExactly:
		for i := 0; i < q.Min; i++ {
			if err := c.compileExpr(q.Inner); err != nil {
				return err
			}
		}
		return nil
	case QuantBetween:
		for i := 0; i < q.Min; i++ {
			if err := c.compileExpr(q.Inner); err != nil {
				return err
			}
		}
		var splits []int
		for i := 0; i < q.Max-q.Min; i++ {
			splitIdx := c.emit(Instruction{Op: OpSplit})
			bodyStart := c.here()
			c.prog[splitIdx].X = bodyStart
			splits = append(splits, splitIdx)
			if err := c.compileExpr(q.Inner); err != nil {
				return err
			}
		}
		end := c.here()
		for _, idx := range splits {
			c.prog[idx].Y = end
		}
		return nil
	default:
		return fmt.Errorf("pattern: unhandled quantifier kind %v", q.Kind)
	}
}

func (c *compiler) compileCapture(cap Capture) error {
	idx := c.saveCounter
	c.saveCounter++
	c.captureNames[cap.Name] = idx
	c.emit(Instruction{Op: OpStartCapture, CaptureIdx: idx})
	if err := c.compileExpr(cap.Inner); err != nil {
		return err
	}
	c.emit(Instruction{Op: OpEndCapture, CaptureIdx: idx})
	return nil
}

// fixedLength returns expr's match length when it is statically known
// (every alternative/repetition resolves to the same number of runes),
// as required for lookbehind (spec.md §7).
func fixedLength(expr Expr) (int, bool) {
	switch e := expr.(type) {
	case Literal:
		return len([]rune(e.Text)), true
	case CharClass, Anchor:
		if _, ok := expr.(Anchor); ok {
			return 0, true
		}
		return 1, true
	case Sequence:
		total := 0
		for _, item := range e.Items {
			n, ok := fixedLength(item)
			if !ok {
				return 0, false
			}
			total += n
		}
		return total, true
	case Alternative:
		var length int
		for i, opt := range e.Options {
			n, ok := fixedLength(opt)
			if !ok {
				return 0, false
			}
			if i == 0 {
				length = n
			} else if n != length {
				return 0, false
			}
		}
		return length, true
	case Quantified:
		if e.Kind == QuantExactly {
			n, ok := fixedLength(e.Inner)
			if !ok {
				return 0, false
			}
			return n * e.Min, true
		}
		return 0, false
	case Capture:
		return fixedLength(e.Inner)
	default:
		return 0, false
	}
}
