package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanLower(t *testing.T) {
	assert.Equal(t, "jane@example.com", CleanLower("  Jane@Example.COM\t"))
	assert.Equal(t, "go 101", CleanString("  go 101 "))
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "blank", in: "   ", want: nil},
		{name: "trimmed", in: "3, 4 ,5", want: []string{"3", "4", "5"}},
		{name: "blank items kept", in: "A,,B", want: []string{"A", "", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.in))
		})
	}
}
