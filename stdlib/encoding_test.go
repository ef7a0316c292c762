package stdlib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/value"
)

func TestEncoding_Hashes(t *testing.T) {
	in := newTestInterp()
	registerEncoding(in)

	v, err := call(t, in, "hash_md5", value.Text("hello"))
	require.NoError(t, err)
	require.Equal(t, value.Text("5d41402abc4b2a76b9719d911017c592"), v)

	v, err = call(t, in, "hash_sha1", value.Text("hello"))
	require.NoError(t, err)
	require.Equal(t, value.Text("aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"), v)

	v, err = call(t, in, "hash_sha256", value.Text("hello"))
	require.NoError(t, err)
	require.Equal(t, value.Text("2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"), v)
}

func TestEncoding_Base64RoundTrip(t *testing.T) {
	in := newTestInterp()
	registerEncoding(in)

	encoded, err := call(t, in, "base64_encode", value.Text("hello world"))
	require.NoError(t, err)
	require.Equal(t, value.Text("aGVsbG8gd29ybGQ="), encoded)

	decoded, err := call(t, in, "base64_decode", encoded)
	require.NoError(t, err)
	require.Equal(t, value.Text("hello world"), decoded)
}

func TestEncoding_Base64DecodeInvalidErrors(t *testing.T) {
	in := newTestInterp()
	registerEncoding(in)

	_, err := call(t, in, "base64_decode", value.Text("not valid base64!!"))
	require.Error(t, err)
}
