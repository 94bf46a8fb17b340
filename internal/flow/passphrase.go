package flow

import (
	"math/rand/v2"
	"sort"
	"strings"
)

const (
	// PassphraseWords is the length of a generated passphrase.
	PassphraseWords = 18
	// ChallengeWords is how many positions a verification challenge asks for.
	ChallengeWords = 4
)

// PlaceholderPassphrase marks an account recovered from a raw private
// key, where no real passphrase exists.
const PlaceholderPassphrase = "(recovered-privatekey)"

// wordList is the fixed vocabulary passphrases are sampled from. Words
// are drawn independently and uniformly with replacement, so collisions
// across accounts are possible and not checked for.
var wordList = []string{
	"anchor", "asset", "beacon", "bridge", "chain", "cipher", "clarity",
	"credit", "crystal", "digital", "ember", "falcon", "garnet", "global",
	"harbor", "hash", "honest", "ledger", "lumen", "meadow", "mint",
	"open", "orbit", "proof", "quartz", "river", "secure", "signal",
	"stone", "token", "trust", "unity", "value", "vault", "wallet", "zephyr",
}

// GeneratePassphrase produces an 18-word passphrase.
func GeneratePassphrase(rng *rand.Rand) string {
	words := make([]string, PassphraseWords)
	for i := range words {
		words[i] = wordList[rng.IntN(len(wordList))]
	}
	return strings.Join(words, " ")
}

// NewChallenge selects 4 distinct positions (0-based, ascending) out of
// the 18 passphrase words.
func NewChallenge(rng *rand.Rand) []int {
	positions := append([]int(nil), rng.Perm(PassphraseWords)[:ChallengeWords]...)
	sort.Ints(positions)
	return positions
}

// VerifyChallenge accepts only if every challenged position matches the
// corresponding answer, case-insensitively after trimming whitespace.
func VerifyChallenge(passphrase string, positions []int, answers []string) bool {
	words := strings.Fields(passphrase)
	if len(answers) != len(positions) {
		return false
	}
	for i, pos := range positions {
		if pos < 0 || pos >= len(words) {
			return false
		}
		if !strings.EqualFold(strings.TrimSpace(answers[i]), words[pos]) {
			return false
		}
	}
	return true
}
