package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talkworld/internal/chat"
	"talkworld/internal/realtime"
)

func TestConversationsLoaded_PopulatesStore(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)

	m.Update(ConversationsLoadedMsg{Conversations: []chat.Conversation{
		{ID: "c1", Name: "Ana"},
		{ID: "c2", Name: "Family"},
	}})

	if got := len(m.store.Conversations()); got != 2 {
		t.Errorf("store has %d conversations, want 2", got)
	}
}

func TestConversationsLoaded_ErrorSetsOfflineStatus(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	m.Update(ConversationsLoadedMsg{Err: errors.New("connection refused")})
	if got := len(m.store.Conversations()); got != 0 {
		t.Errorf("store has %d conversations after error, want 0", got)
	}
}

func TestIncomingMessage_IncrementsUnreadWhenInactive(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)

	incoming := chat.Message{
		ID: "m2", ConversationID: "c2", SenderID: "u2", SenderName: "Ben",
		Text: "dinner at 8", Timestamp: time.Now(),
	}
	m.Update(RealtimeEventMsg{Event: event(t, realtime.EventMessageNew, incoming)})

	conv, _ := m.store.Conversation("c2")
	if conv.Unread != 1 {
		t.Errorf("unread = %d, want 1", conv.Unread)
	}
	if conv.LastMessage != "dinner at 8" {
		t.Errorf("last message = %q", conv.LastMessage)
	}
}

func TestIncomingMessage_ActiveConversationStaysRead(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)
	m.selectConversation("c1")

	incoming := chat.Message{
		ID: "m2", ConversationID: "c1", SenderID: "u1", SenderName: "Ana",
		Text: "still there?", Timestamp: time.Now(),
	}
	m.Update(RealtimeEventMsg{Event: event(t, realtime.EventMessageNew, incoming)})

	conv, _ := m.store.Conversation("c1")
	if conv.Unread != 0 {
		t.Errorf("unread = %d, want 0 for the open conversation", conv.Unread)
	}
	if got := len(m.chat.Messages()); got != 2 {
		t.Errorf("chat shows %d messages, want 2", got)
	}
}

func TestIncomingMessage_OwnEchoIgnored(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)

	echo := chat.Message{
		ID: "m2", ConversationID: "c1", SenderID: "me", Text: "hello",
	}
	m.Update(RealtimeEventMsg{Event: event(t, realtime.EventMessageNew, echo)})

	if got := len(m.store.Messages("c1")); got != 1 {
		t.Errorf("store has %d messages, want 1 (echo must be dropped)", got)
	}
}

func TestIncomingMessage_AutoTranslated(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetAutoTranslate(true)
	m, _ := testModelWithSize(t, cfg, 100, 30)
	seedConversations(m)

	incoming := chat.Message{
		ID: "m2", ConversationID: "c1", SenderID: "u1", SenderName: "Ana",
		Text: "hasta luego", SourceLanguage: "es", Timestamp: time.Now(),
	}
	_, cmd := m.Update(RealtimeEventMsg{Event: event(t, realtime.EventMessageNew, incoming)})
	if cmd == nil {
		t.Fatal("expected a translation command")
	}

	msg := runCmd(cmd)
	translated, ok := msg.(MessageTranslatedMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want MessageTranslatedMsg", msg)
	}
	if translated.Message.Text != "[en] hasta luego" {
		t.Errorf("translated text = %q", translated.Message.Text)
	}
	if translated.Message.OriginalText != "hasta luego" {
		t.Errorf("original text = %q", translated.Message.OriginalText)
	}

	m.Update(translated)
	msgs := m.store.Messages("c1")
	if len(msgs) != 2 {
		t.Fatalf("store has %d messages, want 2", len(msgs))
	}
	if msgs[1].Text != "[en] hasta luego" {
		t.Errorf("stored text = %q", msgs[1].Text)
	}
}

func TestIncomingMessage_TranslationFailureFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetAutoTranslate(true)
	m, _ := testModelWithSize(t, cfg, 100, 30)
	m.translator = &fakeTranslator{err: errors.New("service down")}
	seedConversations(m)

	incoming := chat.Message{
		ID: "m2", ConversationID: "c1", SenderID: "u1", Text: "hasta luego",
		SourceLanguage: "es",
	}
	_, cmd := m.Update(RealtimeEventMsg{Event: event(t, realtime.EventMessageNew, incoming)})
	translated := runCmd(cmd).(MessageTranslatedMsg)

	if translated.Message.Text != "hasta luego" {
		t.Errorf("fallback text = %q, want original", translated.Message.Text)
	}
	if translated.Message.OriginalText != "" {
		t.Errorf("original text = %q, want empty on fallback", translated.Message.OriginalText)
	}
}

func TestShouldTranslate(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetAutoTranslate(true)
	m, _ := testModel(t, cfg)

	if !m.shouldTranslate(chat.Message{Text: "hola", SourceLanguage: "es"}) {
		t.Error("spanish message with english profile should translate")
	}
	if m.shouldTranslate(chat.Message{Text: "hello", SourceLanguage: "en"}) {
		t.Error("same-language message should not translate")
	}
	if m.shouldTranslate(chat.Message{Text: "hola"}) {
		t.Error("message without source language should not translate")
	}
	if m.shouldTranslate(chat.Message{Text: "hola", SourceLanguage: "es", OriginalText: "x"}) {
		t.Error("already-translated message should not translate again")
	}

	cfg.SetAutoTranslate(false)
	if m.shouldTranslate(chat.Message{Text: "hola", SourceLanguage: "es"}) {
		t.Error("auto-translate off should disable translation")
	}
}

func TestTypingEvent_SetsAndExpires(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)

	payload := realtime.TypingPayload{ConversationID: "c1", UserID: "u1", UserName: "Ana"}
	_, cmd := m.Update(RealtimeEventMsg{Event: event(t, realtime.EventTyping, payload)})
	if cmd == nil {
		t.Fatal("expected an expiry tick command")
	}
	if got := m.store.Typing("c1"); got != "Ana" {
		t.Errorf("typing = %q, want Ana", got)
	}

	m.Update(TypingExpiredMsg{ConversationID: "c1", UserName: "Ana"})
	if got := m.store.Typing("c1"); got != "" {
		t.Errorf("typing = %q after expiry, want empty", got)
	}
}

func TestTypingExpiry_IgnoresStaleEntries(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)

	m.store.SetTyping("c1", "Ben")
	m.Update(TypingExpiredMsg{ConversationID: "c1", UserName: "Ana"})
	if got := m.store.Typing("c1"); got != "Ben" {
		t.Errorf("typing = %q, want Ben (stale expiry must not clear)", got)
	}
}

func TestPresenceEvent_UpdatesStore(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)

	payload := realtime.PresencePayload{UserID: "u1", Online: true}
	m.Update(RealtimeEventMsg{Event: event(t, realtime.EventPresence, payload)})
	if !m.store.IsOnline("u1") {
		t.Error("u1 should be online")
	}

	payload.Online = false
	m.Update(RealtimeEventMsg{Event: event(t, realtime.EventPresence, payload)})
	if m.store.IsOnline("u1") {
		t.Error("u1 should be offline")
	}
}

func TestReactionEvent_AttachesToMessage(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)

	reaction := chat.Reaction{MessageID: "m1", UserID: "u1", Emoji: "👍"}
	m.Update(RealtimeEventMsg{Event: event(t, realtime.EventReaction, reaction)})

	msgs := m.store.Messages("c1")
	if len(msgs[0].Reactions) != 1 || msgs[0].Reactions[0].Emoji != "👍" {
		t.Errorf("reactions = %v, want one 👍", msgs[0].Reactions)
	}
}

func TestReactionEvent_UnknownMessageIgnored(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)

	reaction := chat.Reaction{MessageID: "ghost", UserID: "u1", Emoji: "👍"}
	m.Update(RealtimeEventMsg{Event: event(t, realtime.EventReaction, reaction)})
	// Nothing to assert beyond not panicking; the store is unchanged.
	if len(m.store.Messages("c1")[0].Reactions) != 0 {
		t.Error("reaction landed on the wrong message")
	}
}

func TestMessageSent_ErrorKeepsStoreClean(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)
	m.selectConversation("c1")

	m.Update(MessageSentMsg{Err: errors.New("timeout")})
	if got := len(m.store.Messages("c1")); got != 1 {
		t.Errorf("store has %d messages, want 1", got)
	}
}

func TestConversationDeleted_ClearsActiveChat(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)
	m.selectConversation("c1")

	m.Update(ConversationDeletedMsg{ConversationID: "c1"})

	if m.activeConversation != "" {
		t.Errorf("activeConversation = %q, want empty", m.activeConversation)
	}
	if m.focus != FocusSidebar {
		t.Errorf("focus = %v, want FocusSidebar", m.focus)
	}
	if _, ok := m.store.Conversation("c1"); ok {
		t.Error("deleted conversation still in store")
	}
	if _, ok := m.coordinators["c1"]; ok {
		t.Error("deleted conversation's coordinator still cached")
	}
}

func TestConversationOfMessage(t *testing.T) {
	m, _ := testModel(t, testConfig(t))
	seedConversations(m)

	if id, ok := m.conversationOfMessage("m1"); !ok || id != "c1" {
		t.Errorf("conversationOfMessage(m1) = %q, %v", id, ok)
	}
	if _, ok := m.conversationOfMessage("ghost"); ok {
		t.Error("found a conversation for an unknown message")
	}
}

func TestTranscribeMessage_RoundTrip(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)
	runCmd(m.selectConversation("c1"))
	speaker := &fakeSpeaker{transcription: "hasta luego"}
	m.speaker = speaker

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ogg-bytes"))
	}))
	defer srv.Close()

	voice := chat.Message{
		ID: "v1", ConversationID: "c1", SenderID: "u1", SenderName: "Ana",
		Attachment: &chat.Attachment{URL: srv.URL + "/voice.ogg", Name: "voice.ogg", MimeType: "audio/ogg"},
		Timestamp:  time.Now(),
	}
	m.store.Append(voice)

	cmd := m.transcribeMessage("c1", voice)
	if cmd == nil {
		t.Fatal("expected a transcribe command")
	}
	msg := runCmd(cmd)
	result, ok := msg.(MessageTranscribedMsg)
	if !ok {
		t.Fatalf("expected MessageTranscribedMsg, got %T", msg)
	}
	if result.Text != "hasta luego" || result.MessageID != "v1" {
		t.Errorf("result = %+v", result)
	}
	if len(speaker.transcribed) != 1 || speaker.transcribed[0] != "voice.ogg" {
		t.Errorf("transcribed = %v", speaker.transcribed)
	}

	m.Update(result)

	msgs := m.store.Messages("c1")
	last := msgs[len(msgs)-1]
	if last.Text != "hasta luego" {
		t.Errorf("message text = %q, want transcription", last.Text)
	}
}

func TestTranscribeMessage_NilSpeakerOrAttachment(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)

	m.speaker = nil
	if cmd := m.transcribeMessage("c1", chat.Message{ID: "v1", Attachment: &chat.Attachment{}}); cmd != nil {
		t.Error("no speaker configured should be a no-op")
	}

	m.speaker = &fakeSpeaker{}
	if cmd := m.transcribeMessage("c1", chat.Message{ID: "m1", Text: "plain"}); cmd != nil {
		t.Error("message without attachment should be a no-op")
	}
}

func TestMessageTranscribed_ErrorLeavesMessageUntouched(t *testing.T) {
	m, _ := testModelWithSize(t, testConfig(t), 100, 30)
	seedConversations(m)
	voice := chat.Message{
		ID: "v1", ConversationID: "c1", SenderID: "u1",
		Attachment: &chat.Attachment{URL: "http://x/voice.ogg", Name: "voice.ogg", MimeType: "audio/ogg"},
		Timestamp:  time.Now(),
	}
	m.store.Append(voice)

	m.Update(MessageTranscribedMsg{ConversationID: "c1", MessageID: "v1", Err: errors.New("whisper down")})

	msgs := m.store.Messages("c1")
	if msgs[len(msgs)-1].Text != "" {
		t.Error("failed transcription should not alter the message")
	}
}
