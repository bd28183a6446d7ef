package charts

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalRenderer_Bars(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, 10)

	require.NoError(t, r.Render(context.Background(), Revenue.Build(sampleTable())))

	text := out.String()
	assert.Contains(t, text, "Monthly Revenue Analysis")
	assert.Contains(t, text, "1,500")
	assert.Contains(t, text, "12,500")
	assert.Contains(t, text, strings.Repeat("█", 10), "largest value fills the bar")
	assert.NotContains(t, text, strings.Repeat("█", 11))
}

func TestTerminalRenderer_UndefinedValues(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, 0)

	require.NoError(t, r.Render(context.Background(), Margin.Build(sampleTable())))

	lines := strings.Split(out.String(), "\n")
	var february string
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "February") {
			february = l
		}
	}
	assert.Contains(t, february, "n/a")
	assert.NotContains(t, february, "█")
}

func TestTerminalRenderer_Trend(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, 20)

	require.NoError(t, r.Render(context.Background(), ProfitTrend.Build(sampleTable())))

	text := out.String()
	assert.Contains(t, text, "Monthly Profit Trend")
	assert.Contains(t, text, "▁")
	assert.Contains(t, text, "█")
	assert.Contains(t, text, "-600")
}

func TestTerminalRenderer_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewTerminalRenderer(&out, 10).Render(ctx, Revenue.Build(sampleTable()))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
