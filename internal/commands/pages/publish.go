package pagescmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-multisite/internal/commands"
	"github.com/goliatone/go-multisite/internal/logging"
	"github.com/goliatone/go-multisite/internal/pages"
	"github.com/goliatone/go-multisite/pkg/interfaces"
)

const publishGroupMessageType = "multisite.pages.publish_group"

// PublishGroupCommand publishes a page-group template. The content tree is
// written to both the draft and published versions.
type PublishGroupCommand struct {
	Slug string         `json:"slug"`
	Data map[string]any `json:"data"`
}

// Type implements command.Message.
func (PublishGroupCommand) Type() string { return publishGroupMessageType }

// Validate ensures the command carries a slug and a content tree.
func (m PublishGroupCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Slug) == "" {
		errs["slug"] = validation.NewError("multisite.pages.publish_group.slug_required", "slug is required")
	}
	if m.Data == nil {
		errs["data"] = validation.NewError("multisite.pages.publish_group.data_required", "data is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishGroupHandler publishes page-group templates via the page service
// using the shared command handler foundation.
type PublishGroupHandler struct {
	inner *commands.Handler[PublishGroupCommand]
}

// NewPublishGroupHandler constructs a handler wired to the provided page service.
func NewPublishGroupHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishGroupCommand]) *PublishGroupHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PublishGroupCommand) error {
		_, err := service.PublishGroup(ctx, pages.PublishGroupRequest{
			Slug: strings.TrimSpace(msg.Slug),
			Data: msg.Data,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishGroupCommand]{
		commands.WithLogger[PublishGroupCommand](baseLogger),
		commands.WithOperation[PublishGroupCommand]("pages.publish_group"),
		commands.WithMessageFields(func(msg PublishGroupCommand) map[string]any {
			if trimmed := strings.TrimSpace(msg.Slug); trimmed != "" {
				return map[string]any{"slug": trimmed}
			}
			return nil
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishGroupCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishGroupHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *PublishGroupHandler) Execute(ctx context.Context, msg PublishGroupCommand) error {
	return h.inner.Execute(ctx, msg)
}

const saveGroupDraftMessageType = "multisite.pages.save_group_draft"

// SaveGroupDraftCommand stages a page-group template without touching the
// published version.
type SaveGroupDraftCommand struct {
	Slug string         `json:"slug"`
	Data map[string]any `json:"data"`
}

// Type implements command.Message.
func (SaveGroupDraftCommand) Type() string { return saveGroupDraftMessageType }

// Validate ensures the command carries a slug and a content tree.
func (m SaveGroupDraftCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Slug) == "" {
		errs["slug"] = validation.NewError("multisite.pages.save_group_draft.slug_required", "slug is required")
	}
	if m.Data == nil {
		errs["data"] = validation.NewError("multisite.pages.save_group_draft.data_required", "data is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveGroupDraftHandler stages drafts via the page service.
type SaveGroupDraftHandler struct {
	inner *commands.Handler[SaveGroupDraftCommand]
}

// NewSaveGroupDraftHandler constructs a handler wired to the provided page service.
func NewSaveGroupDraftHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SaveGroupDraftCommand]) *SaveGroupDraftHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SaveGroupDraftCommand) error {
		_, err := service.SaveGroupDraft(ctx, pages.SaveGroupDraftRequest{
			Slug: strings.TrimSpace(msg.Slug),
			Data: msg.Data,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[SaveGroupDraftCommand]{
		commands.WithLogger[SaveGroupDraftCommand](baseLogger),
		commands.WithOperation[SaveGroupDraftCommand]("pages.save_group_draft"),
		commands.WithMessageFields(func(msg SaveGroupDraftCommand) map[string]any {
			if trimmed := strings.TrimSpace(msg.Slug); trimmed != "" {
				return map[string]any{"slug": trimmed}
			}
			return nil
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SaveGroupDraftCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveGroupDraftHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *SaveGroupDraftHandler) Execute(ctx context.Context, msg SaveGroupDraftCommand) error {
	return h.inner.Execute(ctx, msg)
}
