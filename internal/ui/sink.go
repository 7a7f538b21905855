package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Sink bridges backend notifications into the bubbletea message loop.
// Notifications are buffered so a poll never blocks on the UI; the app
// drains the channel with listenForNotifications.
type Sink struct {
	ch chan tea.Msg
}

func NewSink() *Sink {
	return &Sink{ch: make(chan tea.Msg, 16)}
}

// RunsChanged implements backend.Sink.
func (s *Sink) RunsChanged() {
	s.send(RunsChangedMsg{})
}

// ConnectionStatusChanged implements backend.Sink.
func (s *Sink) ConnectionStatusChanged(connected bool, errText string) {
	s.send(ConnStatusMsg{Connected: connected, Err: errText})
}

// Messages returns the channel the UI drains.
func (s *Sink) Messages() <-chan tea.Msg {
	return s.ch
}

func (s *Sink) send(msg tea.Msg) {
	select {
	case s.ch <- msg:
	default:
		// UI not draining; drop rather than stall the poller.
	}
}

func listenForNotifications(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
