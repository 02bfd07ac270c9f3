package app

import (
	"context"
	"io"
	"time"

	tea "charm.land/bubbletea/v2"

	"talkworld/internal/api"
	"talkworld/internal/chat"
	"talkworld/internal/clipboard"
	"talkworld/internal/config"
	"talkworld/internal/interaction"
	"talkworld/internal/logger"
	"talkworld/internal/realtime"
	"talkworld/internal/speech"
	"talkworld/internal/translate"
	"talkworld/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// Backend is the slice of the REST API the app model uses. It is an
// interface so tests can substitute a fake without a server.
type Backend interface {
	Conversations(ctx context.Context) ([]chat.Conversation, error)
	Messages(ctx context.Context, conversationID string) ([]chat.Message, error)
	SendMessage(ctx context.Context, msg chat.Message) (chat.Message, error)
	CreateConversation(ctx context.Context, name string, participants []string) (chat.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID string) error
	RequestOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) (string, error)
	SendReaction(messageID, emoji string)
}

// Translator translates message text between languages.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (translate.Result, error)
}

// Speaker converts between message text and audio: synthesis for reading
// messages aloud, transcription for received voice messages.
type Speaker interface {
	Synthesize(ctx context.Context, text, language string, speed float64) ([]byte, error)
	Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (speech.Transcription, error)
}

// EventSource is a live websocket session delivering server events.
type EventSource interface {
	Events() <-chan realtime.Event
	SendTyping(conversationID string, typing bool) error
	Close() error
}

// typingSendInterval throttles outgoing typing notifications while the
// user keeps hitting keys in the composer.
const typingSendInterval = 2 * time.Second

// typingIndicatorTTL is how long a remote typing indicator stays up
// without a refresh before it is cleared.
const typingIndicatorTTL = 4 * time.Second

// reconnectDelay is the pause before redialing a dropped websocket.
const reconnectDelay = 3 * time.Second

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)
	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	backend    Backend
	translator Translator
	speaker    Speaker
	events     EventSource

	// Clipboard image reader, swapped for a fake in tests.
	readImage func() (*clipboard.ImageData, error)

	store        *chat.Store
	coordinators map[string]*interaction.Coordinator

	width  int
	height int
	focus  Focus

	activeConversation string

	// Profile captured from the onboarding form, held until the OTP
	// round trip confirms it.
	pendingProfile config.Profile

	lastTypingSent time.Time
}

// New creates a new app model wired to the real backend services named
// in the config.
func New(cfg *config.Config, version string) *Model {
	servers := cfg.GetServers()
	m := newModel(cfg, version)
	m.backend = api.NewClient(servers.API)
	m.translator = translate.NewClient(servers.Translate)
	m.speaker = speech.NewClient(servers.Speech, servers.TTS)
	return m
}

// newModel builds the model without network clients. Tests install
// fakes on the returned model.
func newModel(cfg *config.Config, version string) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	return &Model{
		config:       cfg,
		version:      version,
		header:       ui.NewHeader(),
		footer:       ui.NewFooter(),
		sidebar:      ui.NewSidebar(),
		chat:         ui.NewChat(),
		modal:        ui.NewModal(),
		store:        chat.NewStore(),
		coordinators: make(map[string]*interaction.Coordinator),
		readImage:    clipboard.ReadImage,
		focus:        FocusSidebar,
	}
}

// StartupModalMsg is sent on app start to trigger welcome/onboarding modals
type StartupModalMsg struct{}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg { return StartupModalMsg{} },
	}
	if m.config.HasProfile() {
		cmds = append(cmds, m.loadConversations(), m.connectRealtime())
	}
	return tea.Batch(cmds...)
}

// coordinatorFor returns the interaction coordinator for a conversation,
// creating it on first use. Each conversation gets its own selection,
// reply draft, and popover state.
func (m *Model) coordinatorFor(conversationID string) *interaction.Coordinator {
	if coord, ok := m.coordinators[conversationID]; ok {
		return coord
	}
	coord := interaction.New(clipboardWriter{}, reactionSender{backend: m.backend})
	m.coordinators[conversationID] = coord
	return coord
}

// profile returns the signed-in user's profile.
func (m *Model) profile() config.Profile {
	return m.config.GetProfile()
}

// activeCoordinator returns the coordinator for the open conversation,
// or nil when no conversation is open.
func (m *Model) activeCoordinator() *interaction.Coordinator {
	if m.activeConversation == "" {
		return nil
	}
	return m.coordinators[m.activeConversation]
}

// selectConversation opens a conversation in the chat panel and moves
// focus there.
func (m *Model) selectConversation(id string) tea.Cmd {
	conv, ok := m.store.Conversation(id)
	if !ok {
		logger.Warn("select of unknown conversation %s", id)
		return nil
	}

	m.activeConversation = id
	m.sidebar.SelectConversation(id)
	m.header.SetConversationName(conv.Name)

	m.chat.SetConversation(id, m.profile().ID, m.coordinatorFor(id))
	msgs := m.store.Messages(id)
	m.chat.SetMessages(msgs)

	m.store.MarkRead(id)
	m.sidebar.SetConversations(m.store.Conversations())

	m.focus = FocusChat
	m.chat.Focus()

	// History not cached yet; fetch it.
	if len(msgs) == 0 {
		return m.loadMessages(id)
	}
	return nil
}

// Close shuts down the websocket session on exit.
func (m *Model) Close() {
	if m.events != nil {
		m.events.Close()
		m.events = nil
	}
}

// toggleFocus switches between the sidebar and the chat panel.
func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar {
		// Can't focus an empty chat panel.
		if m.activeConversation == "" {
			return
		}
		m.focus = FocusChat
		m.chat.Focus()
		return
	}
	m.focus = FocusSidebar
	m.chat.Blur()
}
