package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 7, 15, 4, 5, 0, time.UTC)
	pattern := regexp.MustCompile(`^260307\d{5}$`)
	for i := 0; i < 20; i++ {
		number := GenerateOrderNumber(at)
		require.Len(t, number, 11)
		require.Regexp(t, pattern, number)
	}
}
