// Package catalog manages the admin maintained lookup lists: skills and
// languages.
package catalog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/notify"
	"github.com/jrsteele09/go-marketplace-client/validation"
)

type Entry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type (
	Skill    = Entry
	Language = Entry
)

type Payload struct {
	Name string `json:"name" validate:"required,max=100"`
}

// kind holds the endpoint and display nouns of one list.
type kind struct {
	name     string
	path     string
	title    string
	singular string
	plural   string
}

var (
	skills    = kind{name: "Skills", path: "/skills/", title: "Skill", singular: "skill", plural: "skills"}
	languages = kind{name: "Languages", path: "/languages/", title: "Language", singular: "language", plural: "languages"}
)

// Service is CRUD for one catalog list.
type Service struct {
	service.Base
	kind kind
}

func NewSkills(doer apiclient.Doer, notifier notify.Notifier, opts ...service.Option) *Service {
	return newService(skills, doer, notifier, opts...)
}

func NewLanguages(doer apiclient.Doer, notifier notify.Notifier, opts ...service.Option) *Service {
	return newService(languages, doer, notifier, opts...)
}

func newService(k kind, doer apiclient.Doer, notifier notify.Notifier, opts ...service.Option) *Service {
	return &Service{Base: service.NewBase(k.name, doer, notifier, opts...), kind: k}
}

func (s *Service) List(ctx context.Context, params apiclient.ListParams) (*apiclient.Page[Entry], error) {
	page, err := service.Run[apiclient.Page[Entry]](ctx, &s.Base, service.Call{
		Op:      "List",
		Path:    s.kind.path,
		Query:   params.Values(),
		Failure: "Failed to load " + s.kind.plural + ".",
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Service) Create(ctx context.Context, payload Payload) (*Entry, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	return s.one(ctx, service.Call{
		Op:      "Create",
		Method:  http.MethodPost,
		Path:    s.kind.path,
		Body:    payload,
		Success: s.kind.title + " created successfully!",
		Failure: "Failed to create " + s.kind.singular + ".",
	})
}

func (s *Service) Update(ctx context.Context, id int64, payload Payload) (*Entry, error) {
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	return s.one(ctx, service.Call{
		Op:      "Update",
		Method:  http.MethodPatch,
		Path:    s.itemPath(id),
		Body:    payload,
		Success: s.kind.title + " updated successfully!",
		Failure: "Failed to update " + s.kind.singular + ".",
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return service.Exec(ctx, &s.Base, service.Call{
		Op:      "Delete",
		Method:  http.MethodDelete,
		Path:    s.itemPath(id),
		Success: s.kind.title + " deleted successfully!",
		Failure: "Failed to delete " + s.kind.singular + ".",
	})
}

func (s *Service) one(ctx context.Context, c service.Call) (*Entry, error) {
	e, err := service.Run[Entry](ctx, &s.Base, c)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) itemPath(id int64) string {
	return s.kind.path + strconv.FormatInt(id, 10) + "/"
}
