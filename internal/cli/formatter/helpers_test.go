package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"just now", now.Add(-20 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-26 * time.Hour), "Yesterday 10:00"},
		{"older", time.Date(2025, 9, 30, 8, 15, 0, 0, time.UTC), "Sep 30, 2025 08:15"},
		{"future", now.Add(time.Hour), "Today 13:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestamp(tt.input, now))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{-4, "0m"},
		{13, "13m"},
		{60, "1h"},
		{95, "1h 35m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in))
	}
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "0f8e3c2a", TruncID("0f8e3c2a-1111-2222-3333-444455556666"))
	assert.Equal(t, "abc", TruncID("abc"))
}

func TestFormatMillis(t *testing.T) {
	assert.Equal(t, "2120ms", FormatMillis(2120*time.Millisecond))
}

func TestRenderBox_UppercasesTitle(t *testing.T) {
	out := RenderBox("history", "body")
	assert.Contains(t, out, "HISTORY")
	assert.Contains(t, out, "body")
}
