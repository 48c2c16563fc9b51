package counter

import (
	"testing"

	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/assert"
	"github.com/weegigs/wee-counter-go/we"
)

const samples = 200

func randomInt(f faker.Faker) int {
	return f.IntBetween(0, 2_000_000) - 1_000_000
}

func TestReduce(t *testing.T) {
	f := faker.New()

	t.Run("increment adds one", func(t *testing.T) {
		for i := 0; i < samples; i++ {
			n := randomInt(f)
			assert.Equal(t, n+1, Reduce(Counter{Current: n}, Increment{}).Value())
		}
	})

	t.Run("decrement subtracts one", func(t *testing.T) {
		for i := 0; i < samples; i++ {
			n := randomInt(f)
			assert.Equal(t, n-1, Reduce(Counter{Current: n}, Decrement{}).Value())
		}
	})

	t.Run("increment by amount adds the amount", func(t *testing.T) {
		for i := 0; i < samples; i++ {
			n, amount := randomInt(f), randomInt(f)
			assert.Equal(t, n+amount, Reduce(Counter{Current: n}, IncrementByAmount{Amount: amount}).Value())
		}
	})

	t.Run("decrement then increment restores the value", func(t *testing.T) {
		for i := 0; i < samples; i++ {
			n := randomInt(f)
			state := Reduce(Reduce(Counter{Current: n}, Decrement{}), Increment{})
			assert.Equal(t, n, state.Value())
		}
	})

	t.Run("increment async has no synchronous effect", func(t *testing.T) {
		n := randomInt(f)
		assert.Equal(t, n, Reduce(Counter{Current: n}, IncrementAsync{Amount: 10}).Value())
	})

	t.Run("increment by a negative amount", func(t *testing.T) {
		assert.Equal(t, 2, Reduce(Counter{Current: 5}, IncrementByAmount{Amount: -3}).Value())
	})
}

func TestActionNames(t *testing.T) {
	assert.Equal(t, IncrementAction, we.ActionNameOf(Increment{}))
	assert.Equal(t, DecrementAction, we.ActionNameOf(Decrement{}))
	assert.Equal(t, IncrementByAmountAction, we.ActionNameOf(IncrementByAmount{}))
	assert.Equal(t, IncrementAsyncAction, we.ActionNameOf(IncrementAsync{}))
	assert.Equal(t, "counter:counter", we.StateTypeOf(Counter{}))
}

func TestDecodeAction(t *testing.T) {
	t.Run("decodes actions without payloads", func(t *testing.T) {
		action, err := DecodeAction(we.RemoteAction{Action: IncrementAction})
		assert.Nil(t, err)
		assert.Equal(t, Increment{}, action)

		action, err = DecodeAction(we.RemoteAction{Action: DecrementAction})
		assert.Nil(t, err)
		assert.Equal(t, Decrement{}, action)
	})

	t.Run("decodes amounts", func(t *testing.T) {
		action, err := DecodeAction(we.RemoteAction{Action: IncrementByAmountAction, Payload: []byte(`{"amount":-3}`)})
		assert.Nil(t, err)
		assert.Equal(t, IncrementByAmount{Amount: -3}, action)

		action, err = DecodeAction(we.RemoteAction{Action: IncrementAsyncAction, Payload: []byte(`{"amount":10}`)})
		assert.Nil(t, err)
		assert.Equal(t, IncrementAsync{Amount: 10}, action)
	})

	t.Run("rejects unknown actions", func(t *testing.T) {
		action, err := DecodeAction(we.RemoteAction{Action: "counter:randomize"})
		assert.Nil(t, action)
		assert.Equal(t, we.ActionNotFound("counter:randomize"), err)
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		action, err := DecodeAction(we.RemoteAction{Action: IncrementByAmountAction, Payload: []byte(`[1]`)})
		assert.Nil(t, action)
		assert.NotNil(t, err)
	})
}
