package services

import "sync"

type ModalState = int8

const (
	ModalClosed = ModalState(iota)
	ModalOpen
)

// ScheduleModal is the visibility of the scheduling dialog. It belongs to
// the host and is only changed through Open and Close.
type ScheduleModal struct {
	mu        sync.Mutex
	state     ModalState
	channelID string
}

// Open shows the dialog for channelID. Opening an open dialog rescopes it.
func (v *ScheduleModal) Open(channelID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = ModalOpen
	v.channelID = channelID
}

func (v *ScheduleModal) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = ModalClosed
	v.channelID = ""
}

// State returns the current state and, when open, the channel it is scoped to.
func (v *ScheduleModal) State() (ModalState, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state, v.channelID
}

func (v *ScheduleModal) IsOpen() bool {
	state, _ := v.State()
	return state == ModalOpen
}
