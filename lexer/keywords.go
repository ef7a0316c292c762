package lexer

import "github.com/wfl-lang/wfl/token"

// phrase is one entry of the keyword-phrase folding table: a sequence of
// lowercase words that fold into a single token of Type, e.g.
// {"is", "greater", "than", "or", "equal", "to"} -> token.GREATER_EQ.
//
// spec.md §4.1 requires the table be unambiguous by longest match: phrases
// sharing a prefix ("is greater than" / "is greater than or equal to") are
// resolved by longest match: the folder checks every phrase in phraseTable
// against the upcoming words and keeps the longest one that matches, so
// the order of entries in phraseTable does not matter.
type phrase struct {
	words []string
	typ   token.Type
}

// phraseTable lists every multi-word keyword phrase WFL recognizes. Every
// phrase here is an operation or construct spec.md names explicitly.
var phraseTable = []phrase{
	// Relational / equality operators (longest alternatives first within
	// each shared prefix so the greedy folder doesn't stop early).
	{[]string{"is", "greater", "than", "or", "equal", "to"}, token.GREATER_EQ},
	{[]string{"is", "less", "than", "or", "equal", "to"}, token.LESS_EQ},
	{[]string{"is", "not", "equal", "to"}, token.IS_NOT},
	{[]string{"is", "equal", "to"}, token.IS},
	{[]string{"is", "greater", "than"}, token.GREATER},
	{[]string{"is", "less", "than"}, token.LESS},
	{[]string{"is", "not"}, token.IS_NOT},

	// Arithmetic word operators.
	{[]string{"divided", "by"}, token.DIVIDED_BY},
	{[]string{"multiplied", "by"}, token.TIMES},
	{[]string{"raised", "to", "the", "power", "of"}, token.POWER},

	// Declarations.
	{[]string{"create", "constant"}, token.CREATE_CONSTANT},
	{[]string{"create", "directory"}, token.CREATE_DIRECTORY},

	// Actions.
	{[]string{"define", "action"}, token.DEFINE_ACTION},
	{[]string{"end", "action"}, token.END_ACTION},
	{[]string{"gives", "back"}, token.GIVES_BACK},

	// Conditionals.
	{[]string{"check", "if"}, token.CHECK_IF},
	{[]string{"end", "check"}, token.END_CHECK},

	// Loops.
	{[]string{"count", "from"}, token.COUNT_FROM},
	{[]string{"end", "count"}, token.END_COUNT},
	{[]string{"for", "each"}, token.FOR_EACH},
	{[]string{"end", "for"}, token.END_FOR},
	{[]string{"end", "while"}, token.END_WHILE},
	{[]string{"repeat", "while"}, token.REPEAT_WHILE},
	{[]string{"repeat", "until"}, token.REPEAT_UNTIL},
	{[]string{"end", "repeat"}, token.END_REPEAT},
	{[]string{"end", "forever"}, token.END_FOREVER},

	// Exceptions.
	{[]string{"end", "try"}, token.END_TRY},

	// Containers / interfaces.
	{[]string{"define", "container"}, token.DEFINE_CONTAINER},
	{[]string{"end", "container"}, token.END_CONTAINER},
	{[]string{"define", "interface"}, token.DEFINE_INTERFACE},
	{[]string{"end", "interface"}, token.END_INTERFACE},
	{[]string{"end", "method"}, token.END_METHOD},

	// Events.
	{[]string{"define", "event"}, token.DEFINE_EVENT},
	{[]string{"end", "event"}, token.END_EVENT},

	// Patterns.
	{[]string{"define", "pattern"}, token.DEFINE_PATTERN},

	// Async / time.
	{[]string{"wait", "for"}, token.WAIT_FOR},
	{[]string{"current", "time"}, token.CURRENT_TIME},
}

// singleWordKeywords maps one-word keywords directly to their Type. Every
// word here is reserved and will never lex as IDENT.
var singleWordKeywords = map[string]token.Type{
	"store": token.STORE, "create": token.CREATE, "constant": token.CONSTANT,
	"as": token.AS, "change": token.CHANGE, "to": token.TO,
	"define": token.DEFINE, "action": token.ACTION, "call": token.CALL,
	"return": token.RETURN, "needs": token.NEEDS,
	"if": token.IF, "otherwise": token.OTHERWISE, "then": token.THEN,
	"while": token.WHILE, "forever": token.FOREVER,
	"break": token.BREAK, "continue": token.CONTINUE, "exit": token.EXIT,
	"from": token.FROM, "in": token.IN, "of": token.OF, "by": token.BY,
	"with": token.WITH, "at": token.AT, "into": token.INTO,
	"try": token.TRY, "when": token.WHEN,
	"extends": token.EXTENDS, "implements": token.IMPLEMENTS,
	"property": token.PROPERTY, "method": token.METHOD, "static": token.STATIC, "new": token.NEW,
	"trigger": token.TRIGGER, "on": token.ON, "handler": token.HANDLER,
	"pattern": token.PATTERN, "matches": token.MATCHES,
	"find": token.FIND, "replace": token.REPLACE, "split": token.SPLIT,
	"open": token.OPEN, "read": token.READ, "write": token.WRITE, "close": token.CLOSE,
	"delete": token.DELETE, "file": token.FILE, "directory": token.DIRECTORY, "load": token.LOAD,
	"get": token.GET, "post": token.POST, "listen": token.LISTEN,
	"request": token.REQUEST, "respond": token.RESPOND, "header": token.HEADER,
	"await": token.AWAIT, "duration": token.DURATION,
	"push": token.PUSH, "add": token.ADD, "remove": token.REMOVE, "clear": token.CLEAR, "list": token.LIST,
	"display": token.DISPLAY,
	"plus":    token.PLUS, "minus": token.MINUS, "times": token.TIMES,
	"modulo": token.MODULO, "mod": token.MODULO,
	"is": token.IS, "not": token.NOT, "and": token.AND, "or": token.OR,
	"contains": token.CONTAINS,
	"true":     token.BOOLEAN, "false": token.BOOLEAN,
	"nothing": token.NOTHING, "missing": token.NOTHING, "undefined": token.NOTHING,
}

// maxPhraseWords is the longest phrase word count. The folder does not
// read it.
var maxPhraseWords = func() int {
	max := 1
	for _, p := range phraseTable {
		if len(p.words) > max {
			max = len(p.words)
		}
	}
	return max
}()
