package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/hasher_mock.go -package=mock

// Hasher produces and verifies one-way password digests.
//
// Two digests of the same plaintext differ (each carries its own salt), so
// the only way to establish a match is [Hasher.Verify].
type Hasher interface {
	// Hash returns the digest of plaintext using the configured cost.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. A malformed digest
	// never matches.
	Verify(plaintext, digest string) bool
}
