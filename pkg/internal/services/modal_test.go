package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduleModal(t *testing.T) {
	var modal ScheduleModal

	state, channel := modal.State()
	assert.Equal(t, ModalClosed, state)
	assert.Empty(t, channel)

	modal.Open("C1")
	state, channel = modal.State()
	assert.Equal(t, ModalOpen, state)
	assert.Equal(t, "C1", channel)

	modal.Open("C2")
	_, channel = modal.State()
	assert.Equal(t, "C2", channel)

	modal.Close()
	assert.False(t, modal.IsOpen())
	_, channel = modal.State()
	assert.Empty(t, channel)
}
