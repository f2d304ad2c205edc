package stopwatch

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		millis int64
		want   string
	}{
		{millis: 0, want: "0.00"},
		{millis: 5, want: "0.00"},
		{millis: 10, want: "0.00"},
		{millis: 11, want: "0.01"},
		{millis: 99, want: "0.09"},
		{millis: 100, want: "0.10"},
		{millis: 999, want: "0.99"},
		{millis: 1010, want: "1.00"},
		{millis: 5000, want: "5.00"},
		{millis: 12345, want: "12.34"},
		{millis: 59999, want: "59.99"},
		{millis: 60000, want: "1:00.0"},
		{millis: 65000, want: "1:05.0"},
		{millis: 65987, want: "1:05.9"},
		{millis: 599999, want: "9:59.9"},
		{millis: 600000, want: "10:00.0"},
		{millis: 3599999, want: "59:59.9"},
		{millis: 6000000, want: "100:00.0"},
		{millis: -250, want: "0.00"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Format(tc.millis), "millis=%d", tc.millis)
	}
}

func TestFormatLayoutByMagnitude(t *testing.T) {
	underMinute := regexp.MustCompile(`^[0-9]{1,2}\.[0-9]{2}$`)
	singleMinute := regexp.MustCompile(`^[1-9]:[0-5][0-9]\.[0-9]$`)
	manyMinutes := regexp.MustCompile(`^[1-9][0-9]+:[0-5][0-9]\.[0-9]$`)

	for millis := int64(0); millis < 2*3600*1000; millis += 997 {
		text := Format(millis)
		assert.Equal(t, text, Format(millis))
		switch {
		case millis < 60000:
			assert.Regexp(t, underMinute, text)
		case millis < 600000:
			assert.Regexp(t, singleMinute, text)
		default:
			assert.Regexp(t, manyMinutes, text)
		}
	}
}
