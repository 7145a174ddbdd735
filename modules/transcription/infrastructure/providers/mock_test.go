package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTranscriptionProvider_CyclesThroughFixedList(t *testing.T) {
	p := NewMockTranscriptionProvider()
	ctx := context.Background()

	for i := 0; i < len(mockCycle); i++ {
		text, err := p.Transcribe(ctx, []byte("chunk"), "")
		require.NoError(t, err)
		assert.Equal(t, mockCycle[i], text)
	}

	wrapped, err := p.Transcribe(ctx, []byte("chunk"), "")
	require.NoError(t, err)
	assert.Equal(t, mockCycle[0], wrapped)
}

func TestMockTranscriptionProvider_NewSessionResetsCounter(t *testing.T) {
	p := NewMockTranscriptionProvider()
	ctx := context.Background()

	_, _ = p.Transcribe(ctx, []byte("chunk"), "")
	_, _ = p.Transcribe(ctx, []byte("chunk"), "")

	fresh := p.NewSession()
	text, err := fresh.Transcribe(ctx, []byte("chunk"), "")
	require.NoError(t, err)
	assert.Equal(t, mockCycle[0], text)
}

func TestMockTranscriptionProvider_InstancesDoNotShareState(t *testing.T) {
	a := NewMockTranscriptionProvider()
	b := NewMockTranscriptionProvider()
	ctx := context.Background()

	_, _ = a.Transcribe(ctx, []byte("chunk"), "")
	_, _ = a.Transcribe(ctx, []byte("chunk"), "")

	text, err := b.Transcribe(ctx, []byte("chunk"), "")
	require.NoError(t, err)
	assert.Equal(t, mockCycle[0], text)
}
