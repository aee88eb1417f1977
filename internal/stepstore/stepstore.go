// Package stepstore provides the ephemeral key-value surface that carries
// draft checkout data between stages. Entries live for the duration of a
// browsing session; no cross-session consistency is guaranteed.
package stepstore

// Store is the dependency injected into the checkout pipeline. Values are
// serialized blobs keyed per session token; a deterministic in-memory fake
// satisfies it in tests.
type Store interface {
	// Get returns the value under key for the session, if present.
	Get(sessionToken, key string) ([]byte, bool)

	// Set stores value under key for the session, replacing any prior value.
	Set(sessionToken, key string, value []byte)

	// Delete removes the value under key for the session. No-op if absent.
	Delete(sessionToken, key string)
}
