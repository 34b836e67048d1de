package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryDispatcher_Publish(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string

	d.Subscribe(EventHackerCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.HackerID)
		return errors.New("boom")
	})
	d.Subscribe(EventHackerCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.HackerID)
		return nil
	})
	d.Subscribe(EventResumeUploaded, func(context.Context, Event) error {
		t.Fatal("unexpected handler")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventHackerCreated, HackerID: "h1"})

	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"first:h1", "second:h1"}, got)
}

func TestInMemoryDispatcher_NoListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventHackerUpdated}))
}

func TestInMemoryDispatcher_RecoversPanickingHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	called := false

	d.Subscribe(EventResumeUploaded, func(context.Context, Event) error {
		panic("bad handler")
	})
	d.Subscribe(EventResumeUploaded, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventResumeUploaded})

	assert.ErrorContains(t, err, "bad handler")
	assert.True(t, called)
}
