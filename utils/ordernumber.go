package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber builds the human-facing order number: the order date as
// YYMMDD followed by five random digits. Not guaranteed globally unique; the
// database order ID remains the real key.
func GenerateOrderNumber(at time.Time) string {
	return fmt.Sprintf("%s%05d", at.Format("060102"), rand.Intn(100000))
}
