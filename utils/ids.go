package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomBase36(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Alphabet))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		b.WriteByte(base36Alphabet[n.Int64()])
	}
	return b.String()
}

// GenerateComplaintID returns a human-shareable tracking token in the form
// CMP-<timestamp36>-<rand4>.
func GenerateComplaintID() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("CMP-%s-%s", timestamp, randomBase36(4))
}

// GenerateCitizenID returns a citizen identifier in the form CIT-NNNN.
func GenerateCitizenID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("CIT-%04d", n.Int64())
}

// GenerateOTPCode returns a 4-digit numeric one-time code.
func GenerateOTPCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%04d", n.Int64())
}
