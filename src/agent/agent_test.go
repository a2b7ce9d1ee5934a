package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoker_ModeSelection(t *testing.T) {
	inv, err := NewInvoker(Config{Mode: "simulated"})
	require.NoError(t, err)
	assert.IsType(t, &SimulatedInvoker{}, inv)

	inv, err = NewInvoker(Config{Mode: "openai", APIKey: "sk-test"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIInvoker{}, inv)

	_, err = NewInvoker(Config{Mode: "openai"})
	assert.Error(t, err, "openai mode without a key must fail at construction")

	_, err = NewInvoker(Config{Mode: "bogus"})
	assert.Error(t, err)
}

func TestSimulatedInvoker_MirrorsAlertDirection(t *testing.T) {
	inv := NewSimulatedInvoker()

	reply, err := inv.Invoke(context.Background(), "", "Alert Action: buy\n")
	require.NoError(t, err)
	assert.Contains(t, reply, "Recommended Action: buy")
	assert.Contains(t, reply, "Confidence: 78%")

	reply, err = inv.Invoke(context.Background(), "", "Alert Action: alert\n")
	require.NoError(t, err)
	assert.Contains(t, reply, "Recommended Action: hold")
}

func TestSimulatedInvoker_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulatedInvoker().Invoke(ctx, "", "Alert Action: buy")
	assert.Error(t, err)
}

func TestDrainStream_ConcatenatesFragments(t *testing.T) {
	stream := strings.NewReader(strings.Join([]string{
		`data: {"choices":[{"delta":{"content":"Recommended "}}]}`,
		``,
		`data: {"choices":[{"delta":{"content":"Action: buy"}}]}`,
		`: keep-alive comment`,
		`data: {"choices":[{"delta":{"content":"\nConfidence: 85%"}}]}`,
		`data: [DONE]`,
		``,
	}, "\n"))

	got, err := drainStream(context.Background(), stream)
	require.NoError(t, err)
	assert.Equal(t, "Recommended Action: buy\nConfidence: 85%", got)
}

func TestDrainStream_BadChunkIsFatal(t *testing.T) {
	stream := strings.NewReader("data: {not json}\n")

	_, err := drainStream(context.Background(), stream)
	assert.Error(t, err)
}

func TestDrainStream_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stream := strings.NewReader(`data: {"choices":[{"delta":{"content":"x"}}]}` + "\n")
	_, err := drainStream(ctx, stream)
	assert.Error(t, err)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "(unset)", maskKey(""))
	assert.Equal(t, "****", maskKey("abc"))
	assert.Equal(t, "****6789", maskKey("sk-123456789"))
}
