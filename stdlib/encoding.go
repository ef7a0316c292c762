package stdlib

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/wfl-lang/wfl/interp"
	"github.com/wfl-lang/wfl/value"
)

// registerEncoding wires the hashing and base64 functions named in
// SPEC_FULL.md's SUPPLEMENTED FEATURES section. No example repo in the
// pack pulls in a hashing or base64 library, so this is a justified
// standard-library component (crypto/*, encoding/base64).
func registerEncoding(in *interp.Interpreter) {
	in.RegisterNative("hash_md5", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("hash_md5", args)
		if err != nil {
			return nil, err
		}
		sum := md5.Sum([]byte(s))
		return value.Text(hex.EncodeToString(sum[:])), nil
	})
	in.RegisterNative("hash_sha1", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("hash_sha1", args)
		if err != nil {
			return nil, err
		}
		sum := sha1.Sum([]byte(s))
		return value.Text(hex.EncodeToString(sum[:])), nil
	})
	in.RegisterNative("hash_sha256", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("hash_sha256", args)
		if err != nil {
			return nil, err
		}
		sum := sha256.Sum256([]byte(s))
		return value.Text(hex.EncodeToString(sum[:])), nil
	})
	in.RegisterNative("base64_encode", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("base64_encode", args)
		if err != nil {
			return nil, err
		}
		return value.Text(base64.StdEncoding.EncodeToString([]byte(s))), nil
	})
	in.RegisterNative("base64_decode", func(args []value.Value) (value.Value, error) {
		s, err := unaryText("base64_decode", args)
		if err != nil {
			return nil, err
		}
		decoded, derr := base64.StdEncoding.DecodeString(s)
		if derr != nil {
			return nil, fmt.Errorf("base64_decode: %v", derr)
		}
		return value.Text(decoded), nil
	})
}
