package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSafeSegment(t *testing.T) {
	safe := []string{"t1", "task-42", "a1b2c3", "UPPER", "with_underscore"}
	for _, segment := range safe {
		assert.True(t, isSafeSegment(segment), "segment %q should be accepted", segment)
	}

	unsafe := []string{"", "..", "a..b", "a/b", `a\b`, ".hidden", "."}
	for _, segment := range unsafe {
		assert.False(t, isSafeSegment(segment), "segment %q should be rejected", segment)
	}
}
