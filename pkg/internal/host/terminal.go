package host

import (
	"fmt"
	"io"
	"sync"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/services"
	"github.com/fatih/color"
)

// Terminal is the environment of the command line client. Meeting links
// are printed instead of opened.
type Terminal struct {
	w     io.Writer
	modal services.ScheduleModal

	mu        sync.Mutex
	channelID string
	opened    []string
	events    []models.EphemeralEvent
}

func NewTerminal(w io.Writer, channelID string) *Terminal {
	return &Terminal{w: w, channelID: channelID}
}

func (v *Terminal) OpenURL(url string) {
	v.mu.Lock()
	v.opened = append(v.opened, url)
	v.mu.Unlock()

	color.New(color.FgGreen, color.Bold).Fprint(v.w, "Meeting ready: ")
	fmt.Fprintln(v.w, url)
}

func (v *Terminal) OpenScheduleDialog(channelID string) {
	v.modal.Open(channelID)
	color.New(color.FgCyan).Fprintf(v.w, "Scheduling a meeting in %s\n", channelID)
}

func (v *Terminal) CloseScheduleDialog() {
	v.modal.Close()
}

func (v *Terminal) PublishEphemeral(event models.EphemeralEvent) {
	v.mu.Lock()
	v.events = append(v.events, event)
	v.mu.Unlock()

	color.New(color.FgRed).Fprint(v.w, "(only visible to you) ")
	fmt.Fprintln(v.w, event.Message)
}

func (v *Terminal) CurrentChannelID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.channelID
}

func (v *Terminal) SetCurrentChannel(channelID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.channelID = channelID
}

func (v *Terminal) Modal() *services.ScheduleModal {
	return &v.modal
}

// Opened returns the links shown so far.
func (v *Terminal) Opened() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.opened...)
}

func (v *Terminal) Events() []models.EphemeralEvent {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.EphemeralEvent(nil), v.events...)
}
