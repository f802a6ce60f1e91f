package crm

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Human-readable code prefixes. Codes are generated once at creation and
// never change afterwards.
const (
	clientCodePrefix = "CL"
	leadCodePrefix   = "LD"
	eventIDPrefix    = "EV"
)

// randomDigits returns n random decimal digits
func randomDigits(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand failing is unrecoverable for code generation
			panic(err)
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits)
}

// GenerateClientCode returns a new client code, e.g. CL-20260115-04821
func GenerateClientCode(now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", clientCodePrefix, now.Format("20060102"), randomDigits(5))
}

// GenerateLeadCode returns a new lead code, e.g. LD-20260115-73190
func GenerateLeadCode(now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", leadCodePrefix, now.Format("20060102"), randomDigits(5))
}

// GenerateEventID returns a new automation event id,
// e.g. EV-20260115-093012-55810
func GenerateEventID(now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", eventIDPrefix, now.Format("20060102-150405"), randomDigits(5))
}
