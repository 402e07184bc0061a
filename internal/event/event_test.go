package event_test

import (
	"testing"

	"go-creep-defense/internal/event"
	"go-creep-defense/internal/event/mocks"

	"go.uber.org/mock/gomock"
)

func TestDispatch_DeliversInSubscriptionOrder(t *testing.T) {
	d := event.NewDispatcher()
	var order []int
	d.Subscribe(event.WaveStarted, event.ListenerFunc(func(event.Event) { order = append(order, 1) }))
	d.Subscribe(event.WaveStarted, event.ListenerFunc(func(event.Event) { order = append(order, 2) }))
	d.Subscribe(event.WaveCompleted, event.ListenerFunc(func(event.Event) { order = append(order, 99) }))

	d.Dispatch(event.Event{Type: event.WaveStarted})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

func TestDispatch_Mock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	l := mocks.NewMockListener(ctrl)
	want := event.Event{Type: event.CoinsChanged, Data: event.CoinsChangedData{Coins: 7}}
	l.EXPECT().OnEvent(want).Times(1)

	d := event.NewDispatcher()
	d.Subscribe(event.CoinsChanged, l)
	d.Dispatch(want)
	d.Dispatch(event.Event{Type: event.WaveChanged})
}

func TestUnsubscribe_DuringDispatch(t *testing.T) {
	d := event.NewDispatcher()
	calls := 0
	var sub event.Subscription
	sub = d.Subscribe(event.CreepKilled, event.ListenerFunc(func(event.Event) {
		calls++
		d.Unsubscribe(sub)
	}))
	second := 0
	d.Subscribe(event.CreepKilled, event.ListenerFunc(func(event.Event) { second++ }))

	d.Dispatch(event.Event{Type: event.CreepKilled})
	d.Dispatch(event.Event{Type: event.CreepKilled})

	if calls != 1 {
		t.Errorf("unsubscribed listener called %d times, want 1", calls)
	}
	if second != 2 {
		t.Errorf("remaining listener called %d times, want 2", second)
	}
	if got := d.Listeners(event.CreepKilled); got != 1 {
		t.Errorf("Listeners = %d, want 1", got)
	}
}
