package format

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"datathieves/internal/domain"
)

func TestHumanReadable(t *testing.T) {
	cases := []struct {
		in   domain.Gelds
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1K"},
		{1234, "1.23K"},
		{1500000, "1.5M"},
		{2000000000, "2B"},
		{3_450_000_000_000, "3.45T"},
		{999_999, "1M"},
		{math.MaxUint64, "18.45Qi"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HumanReadable(tc.in), "input %d", tc.in)
	}
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, int64(2), Seconds(2*time.Second))
	assert.Equal(t, int64(1), Seconds(1900*time.Millisecond))
	assert.Equal(t, int64(0), Seconds(0))
}
