package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequency(t *testing.T) {
	assert.InDelta(t, 440, Frequency(0), 1e-9)
	assert.InDelta(t, 880, Frequency(5), 1e-9)
	assert.InDelta(t, 440, Frequency(10), 1e-9)
	assert.Equal(t, Frequency(0), Frequency(-3))
	assert.Greater(t, Frequency(1), Frequency(0))
}

func TestToneIsFinite(t *testing.T) {
	s, err := Tone(2)
	require.NoError(t, err)

	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			assert.LessOrEqual(t, buf[i][0], 1.0)
			assert.GreaterOrEqual(t, buf[i][0], -1.0)
		}
		if !ok || n == 0 {
			break
		}
	}
	assert.Equal(t, sampleRate.N(chimeLength), total)
}

func TestSilentChime(t *testing.T) {
	c := Silent()
	assert.False(t, c.Enabled())
	c.Play(1)
	c.Close()
}
