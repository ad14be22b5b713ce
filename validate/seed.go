// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package validate

import (
	"crypto/sha1"

	"golang.org/x/crypto/pbkdf2"
)

// deterministicSalt is fixed, not secret: DeterministicPayload isn't deriving
// a key, it's stretching a seed string into reproducible filler bytes for
// sweeps that want pseudorandom-looking data without a hidden dependency on
// math/rand's global state.
const deterministicSalt = "schifra-validate"

// DeterministicPayload stretches seed into n reproducible bytes, the same
// construction the teacher uses to turn a pre-shared key into a session key
// (pbkdf2.Key over SHA-1), repurposed here so a validation run's "random"
// fixtures are identical across repeated invocations without carrying a
// math/rand seed of their own.
func DeterministicPayload(seed string, n int) []byte {
	return pbkdf2.Key([]byte(seed), []byte(deterministicSalt), 4096, n, sha1.New)
}
