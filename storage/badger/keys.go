package badger

import "fmt"

// Key prefix for directory state documents. Keeps them separated from any
// other data cohabiting the database.
const statePrefix = "dirstate"

// makeStateKey generates the badger key for a logical state key.
func makeStateKey(key string) []byte {
	return []byte(fmt.Sprintf("%s:%s", statePrefix, key))
}
