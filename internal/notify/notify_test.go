package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottle_AllowsFirstAndBlocksRepeat(t *testing.T) {
	now := time.Unix(0, 0)
	th := NewThrottle(2500 * time.Millisecond)
	th.now = func() time.Time { return now }

	assert.True(t, th.Allow("save:primary"))
	assert.False(t, th.Allow("save:primary"))

	now = now.Add(time.Second)
	assert.False(t, th.Allow("save:primary"))

	now = now.Add(2 * time.Second)
	assert.True(t, th.Allow("save:primary"))
}

func TestThrottle_ClassesAreIndependent(t *testing.T) {
	now := time.Unix(0, 0)
	th := NewThrottle(2500 * time.Millisecond)
	th.now = func() time.Time { return now }

	assert.True(t, th.Allow("save:primary"))
	assert.True(t, th.Allow("save:portrait"))
	assert.False(t, th.Allow("save:primary"))
	assert.False(t, th.Allow("save:portrait"))
}

func TestFuncConfirmer(t *testing.T) {
	var got string
	c := FuncConfirmer(func(message string) bool {
		got = message
		return true
	})

	assert.True(t, c.Confirm("Remove this entry?"))
	assert.Equal(t, "Remove this entry?", got)
}

func TestAutoConfirmer(t *testing.T) {
	assert.True(t, AutoConfirmer{}.Confirm("anything"))
}
