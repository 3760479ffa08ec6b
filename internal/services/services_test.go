package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStopMatchingEmptyPattern(t *testing.T) {
	assert.Nil(t, StopMatching("", false), "empty pattern must stop nothing")
}

func TestStopMatchingDryRunStopsNothing(t *testing.T) {
	results := StopMatching("residue-test-no-such-service", true)
	for _, r := range results {
		assert.False(t, r.Stopped)
	}
	assert.Empty(t, results)
}
