package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

type (
	// NewMessage is the packed form of a message, edited message or channel
	// post handed to text and expression handlers.
	NewMessage struct {
		*tgbotapi.Message
		Kind UpdateKind
	}

	// Sender is the part of tgbotapi.BotAPI used to send replies.
	Sender interface {
		Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	}
)

func packMessage(u *tgbotapi.Update) *NewMessage {
	return &NewMessage{
		Message: MessageOf(u),
		Kind:    KindOf(u),
	}
}

func (m *NewMessage) MessageText() string {
	return m.Message.Text
}

func (m *NewMessage) ChatID() int64 {
	if m.Chat != nil {
		return m.Chat.ID
	}
	return 0
}

func (m *NewMessage) SenderID() int64 {
	if m.From != nil {
		return m.From.ID
	}
	if m.SenderChat != nil {
		return m.SenderChat.ID
	}
	return 0
}

func (m *NewMessage) ChatType() string {
	if m.Chat != nil {
		return m.Chat.Type
	}
	return ""
}

func (m *NewMessage) IsPrivate() bool {
	return m.ChatType() == ChatPrivate
}

func (m *NewMessage) IsGroup() bool {
	t := m.ChatType()
	return t == ChatGroup || t == ChatSuperGroup
}

func (m *NewMessage) IsChannel() bool {
	return m.ChatType() == ChatChannel
}

// IsText reports whether the message is a plain text message.
func (m *NewMessage) IsText() bool {
	return m.Message.Text != ""
}

func (m *NewMessage) IsReply() bool {
	return m.ReplyToMessage != nil
}

func (m *NewMessage) IsEdited() bool {
	return m.Kind == EditedMessageUpdate || m.Kind == EditedChannelPostUpdate
}

func (m *NewMessage) IsMedia() bool {
	return m.MediaType() != ""
}

// MediaType names the attached media, or "" for text and service messages.
func (m *NewMessage) MediaType() string {
	switch {
	case len(m.Photo) > 0:
		return "photo"
	case m.Animation != nil:
		// animations are also delivered as documents, check first
		return "animation"
	case m.Video != nil:
		return "video"
	case m.VideoNote != nil:
		return "video_note"
	case m.Audio != nil:
		return "audio"
	case m.Voice != nil:
		return "voice"
	case m.Sticker != nil:
		return "sticker"
	case m.Document != nil:
		return "document"
	case m.Contact != nil:
		return "contact"
	case m.Venue != nil:
		return "venue"
	case m.Location != nil:
		return "location"
	case m.Poll != nil:
		return "poll"
	}
	return ""
}

// Respond sends text to the chat the message came from.
func (m *NewMessage) Respond(api Sender, text string) (*NewMessage, error) {
	sent, err := api.Send(tgbotapi.NewMessage(m.ChatID(), text))
	if err != nil {
		return nil, errors.Wrap(err, "sending message")
	}
	return &NewMessage{Message: &sent, Kind: MessageUpdate}, nil
}

// Reply sends text as a reply to the message.
func (m *NewMessage) Reply(api Sender, text string) (*NewMessage, error) {
	msg := tgbotapi.NewMessage(m.ChatID(), text)
	msg.ReplyToMessageID = m.MessageID
	sent, err := api.Send(msg)
	if err != nil {
		return nil, errors.Wrap(err, "replying to message")
	}
	return &NewMessage{Message: &sent, Kind: MessageUpdate}, nil
}
