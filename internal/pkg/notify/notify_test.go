package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifier(t *testing.T) {
	var n Notifier
	var calls []string

	unsubA := n.Subscribe(func() { calls = append(calls, "a") })
	n.Subscribe(func() { calls = append(calls, "b") })

	n.Notify()
	assert.Equal(t, []string{"a", "b"}, calls)

	unsubA()
	calls = nil
	n.Notify()
	assert.Equal(t, []string{"b"}, calls)
}

func TestNotifierSubscriberMaySubscribe(t *testing.T) {
	var n Notifier
	count := 0
	n.Subscribe(func() {
		count++
		n.Subscribe(func() {})
	})

	n.Notify()
	assert.Equal(t, 1, count)
}
