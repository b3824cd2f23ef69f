package queue

import (
	"testing"

	"github.com/Javier1520/share-board/internal/utils/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustMarshal(t *testing.T) {
	raw := MustMarshal(types.TouchRoomPayload{RoomCode: "room-1"})
	assert.JSONEq(t, `{"room_code":"room-1"}`, string(raw))
}

func TestMustMarshalPanicsOnUnencodablePayload(t *testing.T) {
	// a silent nil payload here would only surface as a broken job much
	// later, in a worker
	require.Panics(t, func() {
		MustMarshal(make(chan int))
	})
}
