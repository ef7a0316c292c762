package wfl

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// TestEndToEndScenarios snapshots the stdout (or error text, for the
// failing cases) of each concrete scenario a complete implementation
// must satisfy: declaration/display, an undefined-variable semantic
// error, a constant-modification violation, a forward action call, and a
// mistyped arithmetic operator. Pattern find-all is covered by
// pattern/pattern_test.go's TestFindAll instead.
func TestEndToEndScenarios(t *testing.T) {
	scenarios := []struct {
		name   string
		source string
	}{
		{
			name: "declaration_and_display",
			source: `store x as 10
display x`,
		},
		{
			name:   "undefined_variable",
			source: `display y`,
		},
		{
			name: "constant_violation",
			source: `create constant pi as 3.14
change pi to 3`,
		},
		{
			name: "forward_action_call",
			source: `define action first:
    call second
end action
define action second:
    display "ok"
end action
call first`,
		},
		{
			name:   "type_checked_operator",
			source: `store a as 1 minus "hello"`,
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			var out bytes.Buffer
			engine, err := New(WithStdout(&out))
			require.NoError(t, err)

			runErr := engine.Eval(sc.source)

			result := out.String()
			if runErr != nil {
				result = fmt.Sprintf("error: %v", runErr)
			}
			snaps.MatchSnapshot(t, sc.name+"_output", result)
		})
	}
}
