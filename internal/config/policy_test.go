package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestPolicyReplace(t *testing.T) {
	policy := NewTestPolicy(TestConfig{AllowRetake: false, RequireAllAnswered: true})

	assert.False(t, policy.AllowRetake())
	assert.True(t, policy.RequireAllAnswered())

	policy.Replace(TestConfig{AllowRetake: true, RequireAllAnswered: false})

	assert.True(t, policy.AllowRetake())
	assert.False(t, policy.RequireAllAnswered())
}

// Handlers read the knobs while the config watcher swaps snapshots;
// the race detector fails this test if either side bypasses the
// atomic pointer.
func TestTestPolicyConcurrentReload(t *testing.T) {
	policy := NewTestPolicy(TestConfig{})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(retake bool) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				policy.Replace(TestConfig{AllowRetake: retake, RequireAllAnswered: !retake})
			}
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				policy.AllowRetake()
				policy.RequireAllAnswered()
			}
		}()
	}
	wg.Wait()
}
