package interaction

import "talkworld/internal/chat"

// ReplyDraft is an immutable snapshot of the message being replied to,
// taken at draft time so later edits or deletion of the original cannot
// mutate what the composer shows. At most one draft exists per
// conversation; staging a new one replaces the old.
type ReplyDraft struct {
	TargetID   string
	SenderName string
	Snippet    string
	Attachment *chat.Attachment
}

func newReplyDraft(msg chat.Message) ReplyDraft {
	draft := ReplyDraft{
		TargetID:   msg.ID,
		SenderName: msg.SenderName,
		Snippet:    msg.DisplayText(),
	}
	if msg.Attachment != nil {
		att := *msg.Attachment
		draft.Attachment = &att
	}
	return draft
}
