package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeRangePredicates(t *testing.T) {
	require.True(t, STRING.IsLiteral())
	require.False(t, STORE.IsLiteral())

	require.True(t, STORE.IsKeyword())
	require.True(t, GREATER_EQ.IsKeyword() == false)

	require.True(t, GREATER_EQ.IsOperator())
	require.True(t, AND.IsOperator())
	require.False(t, STORE.IsOperator())

	require.True(t, LPAREN.IsPunctuation())
	require.False(t, AND.IsPunctuation())
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "GREATER_EQ", GREATER_EQ.String())
	require.Equal(t, "UNKNOWN", Type(99999).String())
}
