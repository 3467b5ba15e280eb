/**
 * @description
 * This file provides the deterministic identifier generator for IBANs and
 * card numbers. The generator is seeded explicitly and owned by the engine,
 * so replaying the same command batch from the same seed produces identical
 * identifiers, and resets happen through the owner rather than through
 * package-level shared state.
 *
 * @dependencies
 * - math/rand, strings: Standard Go libraries.
 */

package app

import (
	"math/rand"
	"strings"
)

const ibanPrefix = "RO"
const ibanBankCode = "VLTB"

// Sequence generates IBANs and card numbers from a seeded source.
type Sequence struct {
	rng *rand.Rand
}

// NewSequence creates a generator from an explicit seed.
func NewSequence(seed int64) *Sequence {
	return &Sequence{rng: rand.New(rand.NewSource(seed))}
}

// IBAN returns a fresh account identifier: country code, two check digits,
// bank code, sixteen account digits.
func (s *Sequence) IBAN() string {
	var b strings.Builder
	b.WriteString(ibanPrefix)
	s.writeDigits(&b, 2)
	b.WriteString(ibanBankCode)
	s.writeDigits(&b, 16)
	return b.String()
}

// CardNumber returns a fresh sixteen-digit card number.
func (s *Sequence) CardNumber() string {
	var b strings.Builder
	s.writeDigits(&b, 16)
	return b.String()
}

func (s *Sequence) writeDigits(b *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + s.rng.Intn(10)))
	}
}
