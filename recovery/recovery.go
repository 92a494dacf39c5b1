// Package recovery generates the recovery codes displayed to a user on
// vault creation. These are not a cryptographic backup of the vault key;
// they exist only to be written down and compared against later by the
// user.
package recovery

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	// numCodes is the number of "w-w-w" groups Generate returns.
	numCodes     = 4
	wordsPerCode = 3
)

// Generate returns numCodes strings, each three NATO-style words joined by
// "-", e.g. "alpha-bravo-charlie". Each word is drawn independently and
// uniformly from the fixed 26-word list, giving each code log2(26^3) ≈ 14.1
// bits and the full set of twelve words ≈ 56.4 bits of entropy.
func Generate() ([]string, error) {
	codes := make([]string, numCodes)

	for i := range codes {
		words := make([]string, wordsPerCode)

		for j := range words {
			w, err := randomWord()
			if err != nil {
				return nil, err
			}

			words[j] = w
		}

		codes[i] = strings.Join(words, "-")
	}

	return codes, nil
}

func randomWord() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(wordlist))))
	if err != nil {
		return "", err
	}

	return wordlist[n.Int64()], nil
}
