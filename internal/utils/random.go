package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const numberRunes = "0123456789"

// GenerateReference builds a human-readable record number like BK-20260829-4821.
func GenerateReference(prefix string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), randomDigits(4))
}

func randomDigits(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(numberRunes))))
		if err != nil {
			// crypto/rand only fails when the platform entropy source is broken
			b[i] = '0'
			continue
		}
		b[i] = numberRunes[idx.Int64()]
	}
	return string(b)
}
