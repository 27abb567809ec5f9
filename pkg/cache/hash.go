package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey addresses parts under namespace as "namespace:<sha256>". Parts
// are JSON encoded so field order in option structs is part of the key.
func hashKey(namespace string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		panic("cache: unencodable key part: " + err.Error())
	}
	return namespace + ":" + Hash(data)
}
