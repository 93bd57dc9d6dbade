package transport

import "fmt"

// TransportError is returned for every failed call.
// StatusCode is zero when no response was received at all.
type TransportError struct {
	Path       string
	StatusCode int
	Message    string
	Cause      error
}

func (v *TransportError) Error() string {
	if v.StatusCode == 0 {
		return fmt.Sprintf("request to %s failed: %v", v.Path, v.Cause)
	}
	if len(v.Message) == 0 {
		return fmt.Sprintf("request to %s failed with status %d", v.Path, v.StatusCode)
	}
	return fmt.Sprintf("request to %s failed with status %d: %s", v.Path, v.StatusCode, v.Message)
}

func (v *TransportError) Unwrap() error {
	return v.Cause
}

// HasStatus reports whether the server answered at all.
func (v *TransportError) HasStatus() bool {
	return v.StatusCode != 0
}
