// Package messages is the chat inbox shared by clients and freelancers.
package messages

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/form"
	"github.com/jrsteele09/go-marketplace-client/format"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/notify"
	"github.com/jrsteele09/go-marketplace-client/validation"
)

const (
	MsgSent     = "Message sent successfully!"
	MsgSendFail = "Failed to send message."
)

type Attachment struct {
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
	Thumbnail   string `json:"thumbnail"`
	PreviewURL  string `json:"preview_url"`
	FileURL     string `json:"file_url"`
	UploadedAt  string `json:"uploaded_at"`
}

// Size is the attachment size for display, e.g. "1.2 MB".
func (a Attachment) Size() string {
	return format.FileSize(a.FileSize)
}

type Message struct {
	ID          int64        `json:"id"`
	Slug        string       `json:"slug"`
	Chat        int64        `json:"chat"`
	Sender      string       `json:"sender"`
	Content     string       `json:"content"`
	Timestamp   string       `json:"timestamp"`
	Attachments []Attachment `json:"attachments"`
}

// Chat is a conversation between a client and a freelancer about one job.
type Chat struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	LastMessage string    `json:"last_message"`
	ChatUUID    string    `json:"chat_uuid"`
	Job         int64     `json:"job"`
	Client      string    `json:"client"`
	Freelancer  string    `json:"freelancer"`
	Active      bool      `json:"active"`
	CreatedAt   string    `json:"created_at"`
	Messages    []Message `json:"messages"`
}

// Payload is a new message. With attachments it is sent as multipart.
type Payload struct {
	Content     string      `json:"content" validate:"required_without=Attachments"`
	Attachments []form.File `json:"attachments,omitempty"`
}

type UpdatePayload struct {
	Content string `json:"content"`
}

type Service struct {
	service.Base
}

func NewService(doer apiclient.Doer, notifier notify.Notifier, opts ...service.Option) *Service {
	return &Service{Base: service.NewBase("Messages", doer, notifier, opts...)}
}

func (s *Service) Chats(ctx context.Context, params apiclient.ListParams) (*apiclient.Page[Chat], error) {
	page, err := service.Run[apiclient.Page[Chat]](ctx, &s.Base, service.Call{
		Op:      "Chats",
		Path:    "/messages/chats/",
		Query:   params.Values(),
		Failure: "Failed to load chats.",
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Service) Messages(ctx context.Context, chatSlug string, params apiclient.ListParams) (*apiclient.Page[Message], error) {
	page, err := service.Run[apiclient.Page[Message]](ctx, &s.Base, service.Call{
		Op:      "Messages",
		Path:    service.Pathf("/messages/chats/%s/message/", chatSlug),
		Query:   params.Values(),
		Failure: "Failed to load messages.",
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Send posts a message and reloads the chat list so the last message is
// current. The reloaded list is returned alongside the new message.
func (s *Service) Send(ctx context.Context, chatSlug string, payload Payload) (*Message, *apiclient.Page[Chat], error) {
	if err := validation.Struct(payload); err != nil {
		return nil, nil, err
	}
	msg, err := service.Run[Message](ctx, &s.Base, service.Call{
		Op:        "Send",
		Method:    http.MethodPost,
		Path:      service.Pathf("/messages/chats/%s/", chatSlug),
		Body:      payload,
		Multipart: len(payload.Attachments) > 0,
		Failure:   MsgSendFail,
	})
	if err != nil {
		return nil, nil, err
	}
	chats, err := s.Chats(ctx, apiclient.ListParams{})
	if err != nil {
		notify.Error(s.Notifier(), MsgSendFail)
		return &msg, nil, err
	}
	notify.Success(s.Notifier(), MsgSent)
	return &msg, chats, nil
}

func (s *Service) Update(ctx context.Context, chatSlug string, messageID int64, payload UpdatePayload) (*Message, error) {
	msg, err := service.Run[Message](ctx, &s.Base, service.Call{
		Op:      "Update",
		Method:  http.MethodPatch,
		Path:    service.Pathf("/messages/chats/%s/message/%d/", chatSlug, messageID),
		Body:    payload,
		Success: "Message updated successfully!",
		Failure: "Failed to update message.",
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *Service) Delete(ctx context.Context, chatSlug string, messageID int64) error {
	return service.Exec(ctx, &s.Base, service.Call{
		Op:      "Delete",
		Method:  http.MethodDelete,
		Path:    service.Pathf("/messages/chats/%s/message/%d/", chatSlug, messageID),
		Success: "Message deleted successfully!",
		Failure: "Failed to delete message.",
	})
}
