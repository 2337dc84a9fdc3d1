// Package browser owns the client's interaction with the user's web browser
// during the membership handshake: opening the external authorization window,
// receiving the redirect on a loopback listener, and fanning the resulting
// message out to subscribers.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Window is the transient external-window resource opened for one handshake.
// Close is best-effort: an external browser tab cannot be forced shut, but
// terminal transitions must still release whatever the launcher holds.
type Window interface {
	Close() error
}

// Launcher opens an external browser window at a URL.
type Launcher interface {
	Open(url string) (Window, error)
}

// startCommand is a test seam for exec.Command(...).Start.
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// ExecLauncher opens URLs through the platform's default browser.
type ExecLauncher struct{}

func (ExecLauncher) Open(url string) (Window, error) {
	var err error
	switch runtime.GOOS {
	case "darwin":
		err = startCommand("open", url)
	case "windows":
		err = startCommand("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		err = startCommand("xdg-open", url)
	}
	if err != nil {
		return nil, fmt.Errorf("opening browser: %w", err)
	}
	return noopWindow{}, nil
}

type noopWindow struct{}

func (noopWindow) Close() error { return nil }
