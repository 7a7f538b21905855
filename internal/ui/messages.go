package ui

import "github.com/tbtop/tbtop/internal/ui/panels"

// RunsChangedMsg signals that the backend's run set changed; the app reads
// the fresh snapshot from the backend when handling it.
type RunsChangedMsg struct{}

// ConnStatusMsg is sent when the connection status or error text changed.
type ConnStatusMsg = panels.ConnStatusMsg

// YankMsg requests that text be copied to the clipboard.
type YankMsg = panels.YankMsg

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg = panels.CloseModalMsg

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg = panels.ClearFlashMsg

// pollTickMsg fires when the poll timer elapses. Gen identifies the timer
// generation that scheduled it; stale generations are dropped so changing
// the interval cancels pending ticks.
type pollTickMsg struct {
	Gen int
}

// pollDoneMsg is sent after a poll attempt finishes, whatever the outcome.
type pollDoneMsg struct{}
