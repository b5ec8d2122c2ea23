package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Ask(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("Lunch\n\n"), &out)
	ctx := context.Background()

	answer, err := p.Ask(ctx, "Title", "")
	require.NoError(t, err)
	assert.Equal(t, "Lunch", answer)

	answer, err = p.Ask(ctx, "Category", "General")
	require.NoError(t, err)
	assert.Equal(t, "General", answer, "empty answer takes the default")
	assert.Contains(t, out.String(), "Category [General]:")
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(context.Background(), "Move to trash?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Move to trash? (y/N)")
		})
	}
}

func TestPrompter_CancelledContext(t *testing.T) {
	p := NewPrompter(strings.NewReader("y\n"), &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Confirm(ctx, "Move to trash?")
	assert.ErrorIs(t, err, ErrInputCancelled)
}
