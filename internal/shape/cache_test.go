package shape

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]string{"<p>", "</p>"}, false)
	b := Fingerprint([]string{"<p>", "</p>"}, false)
	assert.Equal(t, a, b)

	// The separator keeps chunk boundaries from colliding.
	assert.NotEqual(t,
		Fingerprint([]string{"ab", "c"}, false),
		Fingerprint([]string{"a", "bc"}, false))

	// Parse mode participates in the key.
	assert.NotEqual(t,
		Fingerprint([]string{"<p>x</p>"}, false),
		Fingerprint([]string{"<p>x</p>"}, true))
}

func TestGetOrParseCachesTrees(t *testing.T) {
	c := New(8)
	chunks := []string{"<p>", "</p>"}

	first, err := c.GetOrParse(chunks, false)
	require.NoError(t, err)
	second, err := c.GetOrParse(chunks, false)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())

	hits, misses, _ := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestGetOrParseDoesNotCacheFailures(t *testing.T) {
	c := New(8)
	_, err := c.GetOrParse([]string{"<div>"}, false)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestEviction(t *testing.T) {
	c := New(2)
	for i := 0; i < 3; i++ {
		_, err := c.GetOrParse([]string{fmt.Sprintf("<p>%d</p>", i)}, false)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())

	_, _, evictions := c.Stats()
	assert.Equal(t, int64(1), evictions)
}

func TestEvictionOrderIsLRU(t *testing.T) {
	c := New(2)
	a := []string{"<p>a</p>"}
	b := []string{"<p>b</p>"}

	_, err := c.GetOrParse(a, false)
	require.NoError(t, err)
	_, err = c.GetOrParse(b, false)
	require.NoError(t, err)

	// Touch a so b becomes the eviction candidate.
	_, err = c.GetOrParse(a, false)
	require.NoError(t, err)
	_, err = c.GetOrParse([]string{"<p>c</p>"}, false)
	require.NoError(t, err)

	hitsBefore, _, _ := c.Stats()
	_, err = c.GetOrParse(a, false)
	require.NoError(t, err)
	hitsAfter, _, _ := c.Stats()
	assert.Equal(t, hitsBefore+1, hitsAfter, "a should still be cached")
}

func TestDefaultCapacityFallback(t *testing.T) {
	assert.NotNil(t, New(0))
	assert.NotNil(t, New(-5))
}

func TestConcurrentAccess(t *testing.T) {
	c := New(16)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				chunks := []string{fmt.Sprintf("<li>%d</li>", j%20)}
				_, err := c.GetOrParse(chunks, false)
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 16)
}
