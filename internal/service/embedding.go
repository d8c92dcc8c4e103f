package service

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// GenerateEmbedding returns a cheap deterministic embedding for the given
// text: total length, vowel count and consonant count. Good enough for
// nearest-neighbour ordering of catalog searches without an external model.
func GenerateEmbedding(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var vowels, consonants float32
	for _, r := range text {
		if strings.ContainsRune("aeiou", r) {
			vowels++
		} else if r >= 'a' && r <= 'z' {
			consonants++
		}
	}
	return pgvector.NewVector([]float32{float32(len(text)), vowels, consonants})
}
