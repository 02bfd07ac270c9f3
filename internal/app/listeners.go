package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"talkworld/internal/logger"
	"talkworld/internal/realtime"
)

// RealtimeConnectedMsg is sent when the websocket dial completes.
type RealtimeConnectedMsg struct {
	Source EventSource
	Err    error
}

// RealtimeEventMsg carries one server event off the websocket.
type RealtimeEventMsg struct {
	Event realtime.Event
}

// RealtimeClosedMsg is sent when the websocket drops and its event
// channel closes.
type RealtimeClosedMsg struct{}

// reconnectTickMsg fires after the reconnect backoff elapses.
type reconnectTickMsg time.Time

// connectRealtime dials the websocket endpoint from config.
func (m *Model) connectRealtime() tea.Cmd {
	wsURL := m.config.GetServers().WS
	if wsURL == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := realtime.Dial(ctx, wsURL)
		if err != nil {
			return RealtimeConnectedMsg{Err: err}
		}
		return RealtimeConnectedMsg{Source: client}
	}
}

// listenForEvent waits for the next event on the open websocket. The
// handler re-arms this listener after each event, so exactly one
// goroutine blocks on the channel at a time.
func (m *Model) listenForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events.Events()
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return RealtimeClosedMsg{}
		}
		return RealtimeEventMsg{Event: evt}
	}
}

// handleRealtimeConnected installs the event source and starts listening.
func (m *Model) handleRealtimeConnected(msg RealtimeConnectedMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Warn("realtime connect failed: %v", msg.Err)
		m.header.SetStatus("offline")
		return m.scheduleReconnect()
	}
	m.events = msg.Source
	m.header.SetStatus("")
	return m.listenForEvent()
}

// handleRealtimeClosed drops the dead connection and schedules a redial.
func (m *Model) handleRealtimeClosed() tea.Cmd {
	logger.Warn("realtime connection closed, reconnecting in %s", reconnectDelay)
	if m.events != nil {
		m.events.Close()
		m.events = nil
	}
	m.header.SetStatus("reconnecting…")
	return m.scheduleReconnect()
}

func (m *Model) scheduleReconnect() tea.Cmd {
	return tea.Tick(reconnectDelay, func(t time.Time) tea.Msg {
		return reconnectTickMsg(t)
	})
}
