package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	got []Event
	err error
}

func (r *recorder) Publish(_ context.Context, e Event) error {
	r.got = append(r.got, e)
	return r.err
}

func TestMulti_FansOut(t *testing.T) {
	a := &recorder{}
	b := &recorder{err: errors.New("broker down")}
	c := &recorder{}

	err := Multi{a, nil, b, c}.Publish(context.Background(), New(OrderCreated, 9, map[string]any{"id": 1}))

	assert.EqualError(t, err, "broker down")
	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 1)
	assert.Len(t, c.got, 1)
	assert.Equal(t, int64(9), c.got[0].UserID)
	assert.Equal(t, OrderCreated, c.got[0].Type)
}

func TestOrNoop(t *testing.T) {
	assert.NoError(t, OrNoop(nil).Publish(context.Background(), Event{}))
}
