package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatchInSubscriptionOrder(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		got = append(got, "first:"+e.Data.(BufferSavedData).FilePath)
		return false
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		got = append(got, "second")
		return false
	})

	m.Dispatch(TypeBufferSaved, BufferSavedData{FilePath: "a.txt"})

	require.Equal(t, []string{"first:a.txt", "second"}, got)
}

func TestConsumedEventStopsDelivery(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeAppQuit, func(Event) bool { calls++; return true })
	m.Subscribe(TypeAppQuit, func(Event) bool { calls++; return false })

	m.Dispatch(TypeAppQuit, AppQuitData{})

	require.Equal(t, 1, calls)
}

func TestDispatchWithoutHandlers(t *testing.T) {
	m := NewManager()
	require.NotPanics(t, func() { m.Dispatch(TypeAppReady, nil) })
}

func TestHandlerMaySubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	m.Subscribe(TypeOptionsChanged, func(Event) bool {
		m.Subscribe(TypeOptionsChanged, func(Event) bool { return false })
		return false
	})

	require.NotPanics(t, func() { m.Dispatch(TypeOptionsChanged, OptionsChangedData{}) })
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "selections-changed", TypeSelectionsChanged.String())
	require.Equal(t, "unknown", Type(99).String())
}
