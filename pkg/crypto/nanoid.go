package crypto

import (
	"crypto/rand"
	"math"
)

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	idSize     = 22 // 22 * 6 = 132 bits of entropy, more than a uuid
)

// NanoIDGenerator produces short, URL-safe unique identifiers from
// crypto/rand. Used for user record IDs.
type NanoIDGenerator struct {
	mask int
}

func NewNanoID() *NanoIDGenerator {
	return &NanoIDGenerator{mask: alphabetMask(len(idAlphabet))}
}

func alphabetMask(alphabetLen int) int {
	for i := 1; i <= 8; i++ {
		mask := (2 << uint(i)) - 1
		if mask > alphabetLen-1 {
			return mask
		}
	}
	return 255
}

func (n *NanoIDGenerator) Generate() (string, error) {
	alphabetLen := len(idAlphabet)
	step := int(math.Ceil(1.6 * float64(n.mask*idSize) / float64(alphabetLen)))

	id := make([]byte, idSize)
	buffer := make([]byte, step)

	for position := 0; position < idSize; {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}

		for i := 0; i < step && position < idSize; i++ {
			// Masked candidate index; discard values past the alphabet
			index := buffer[i] & byte(n.mask)
			if int(index) < alphabetLen {
				id[position] = idAlphabet[index]
				position++
			}
		}
	}

	return string(id), nil
}
