package pattern

import (
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// compileGroup memoizes concurrent compiles of the same pattern source so
// two goroutines racing to use a fresh pattern string only pay the parse
// and compile cost once.
var compileGroup singleflight.Group

// compileCache holds every source string this process has already
// compiled, keyed by the raw DSL text.
var compileCache = struct {
	mu sync.Mutex
	m  map[string]*Program
}{m: make(map[string]*Program)}

// CompileCached compiles source, reusing a prior compilation of the same
// text when one exists.
func CompileCached(source string) (*Program, error) {
	compileCache.mu.Lock()
	prog, ok := compileCache.m[source]
	compileCache.mu.Unlock()
	if ok {
		return prog, nil
	}
	result, err, _ := compileGroup.Do(source, func() (any, error) {
		prog, err := Compile(source)
		if err != nil {
			return nil, err
		}
		compileCache.mu.Lock()
		compileCache.m[source] = prog
		compileCache.mu.Unlock()
		return prog, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Program), nil
}

// IsMatch reports whether prog matches any substring of text.
func IsMatch(prog *Program, text string) (bool, error) {
	m, err := FindFrom(prog, []rune(text), 0, DefaultStepBudget)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// Find returns the first match of prog within text, if any.
func Find(prog *Program, text string) (*MatchResult, error) {
	return FindFrom(prog, []rune(text), 0, DefaultStepBudget)
}

// FindAll returns every non-overlapping match of prog within text, left
// to right. Zero-length matches advance by one rune to guarantee
// termination.
func FindAll(prog *Program, text string) ([]MatchResult, error) {
	input := []rune(text)
	var results []MatchResult
	pos := 0
	for pos <= len(input) {
		m, err := FindFrom(prog, input, pos, DefaultStepBudget)
		if err != nil {
			return results, err
		}
		if m == nil {
			break
		}
		results = append(results, *m)
		if m.End == m.Start {
			pos = m.End + 1
		} else {
			pos = m.End
		}
	}
	return results, nil
}

// Replace substitutes every match of prog in text with replacement.
func Replace(prog *Program, text, replacement string) (string, error) {
	matches, err := FindAll(prog, text)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return text, nil
	}
	input := []rune(text)
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(string(input[last:m.Start]))
		b.WriteString(replacement)
		last = m.End
	}
	b.WriteString(string(input[last:]))
	return b.String(), nil
}

// Split divides text around every match of prog, the way strings.Split
// divides around a literal separator.
func Split(prog *Program, text string) ([]string, error) {
	matches, err := FindAll(prog, text)
	if err != nil {
		return nil, err
	}
	input := []rune(text)
	if len(matches) == 0 {
		return []string{text}, nil
	}
	var parts []string
	last := 0
	for _, m := range matches {
		parts = append(parts, string(input[last:m.Start]))
		last = m.End
	}
	parts = append(parts, string(input[last:]))
	return parts, nil
}
