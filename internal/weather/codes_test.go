package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeCode_KnownCodes(t *testing.T) {
	for code, want := range codeDescriptions {
		assert.Equal(t, want, DescribeCode(code), "code %d", code)
	}
}

func TestDescribeCode_SpotChecks(t *testing.T) {
	assert.Equal(t, "Clear", DescribeCode(0))
	assert.Equal(t, "Partly cloudy", DescribeCode(2))
	assert.Equal(t, "Depositing rime fog", DescribeCode(48))
	assert.Equal(t, "Thunderstorm with heavy hail", DescribeCode(99))
}

func TestDescribeCode_UnknownCodes(t *testing.T) {
	for _, code := range []int{-1, 4, 44, 50, 60, 100, 1000} {
		assert.Equal(t, CodeUnknown, DescribeCode(code), "code %d", code)
	}
}
