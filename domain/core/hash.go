package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Domain-specific hash types
type (
	PriorHash   Hash
	CodeVersion Hash
)

func NewPriorHash(data []byte) PriorHash     { return PriorHash(NewHash(data)) }
func NewCodeVersion(data []byte) CodeVersion { return CodeVersion(NewHash(data)) }

func (h PriorHash) String() string   { return Hash(h).String() }
func (h CodeVersion) String() string { return Hash(h).String() }

// ComputePriorHash fingerprints a prior's declared coordinate systems:
// sampled parameter specs (ordered) and the standard parameter set (sorted).
func ComputePriorHash(sampled []string, bounds map[string][2]float64, standard []string) PriorHash {
	var data strings.Builder
	for _, name := range sampled {
		data.WriteString(name)
		if b, ok := bounds[name]; ok {
			data.WriteString(fmt.Sprintf("[%v,%v)", b[0], b[1]))
		}
		data.WriteString("|")
	}
	std := make([]string, len(standard))
	copy(std, standard)
	sort.Strings(std)
	data.WriteString("->")
	data.WriteString(strings.Join(std, ","))

	return NewPriorHash([]byte(data.String()))
}
