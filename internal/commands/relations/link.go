package relationscmd

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-multisite/internal/commands"
	"github.com/goliatone/go-multisite/internal/logging"
	"github.com/goliatone/go-multisite/internal/relations"
	"github.com/goliatone/go-multisite/pkg/interfaces"
	"github.com/google/uuid"
)

const linkEntitiesMessageType = "multisite.relations.link"

// LinkEntitiesCommand creates a link row between two entities. Relation names
// match the Relation descriptors, e.g. "location_article".
type LinkEntitiesCommand struct {
	Relation string    `json:"relation"`
	LeftID   uuid.UUID `json:"left_id"`
	RightID  uuid.UUID `json:"right_id"`
}

// Type implements command.Message.
func (LinkEntitiesCommand) Type() string { return linkEntitiesMessageType }

// Validate ensures the command names a known relation and both endpoints.
func (m LinkEntitiesCommand) Validate() error {
	errs := validation.Errors{}
	if relationByName(m.Relation) == nil {
		errs["relation"] = validation.NewError("multisite.relations.link.relation_invalid", "relation must name a known join relation")
	}
	if m.LeftID == uuid.Nil {
		errs["left_id"] = validation.NewError("multisite.relations.link.left_id_required", "left_id is required")
	}
	if m.RightID == uuid.Nil {
		errs["right_id"] = validation.NewError("multisite.relations.link.right_id_required", "right_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LinkEntitiesHandler creates link rows through the integrity manager.
type LinkEntitiesHandler struct {
	inner *commands.Handler[LinkEntitiesCommand]
}

// NewLinkEntitiesHandler constructs a handler wired to the integrity manager.
func NewLinkEntitiesHandler(service relations.Service, logger interfaces.Logger, opts ...commands.HandlerOption[LinkEntitiesCommand]) *LinkEntitiesHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg LinkEntitiesCommand) error {
		rel := relationByName(msg.Relation)
		if rel == nil {
			return fmt.Errorf("relations: unknown relation %q", msg.Relation)
		}
		_, err := service.Link(ctx, relations.LinkRequest{
			Relation: rel,
			LeftID:   msg.LeftID,
			RightID:  msg.RightID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[LinkEntitiesCommand]{
		commands.WithLogger[LinkEntitiesCommand](baseLogger),
		commands.WithOperation[LinkEntitiesCommand]("relations.link"),
		commands.WithMessageFields(func(msg LinkEntitiesCommand) map[string]any {
			fields := map[string]any{}
			if msg.Relation != "" {
				fields["relation"] = msg.Relation
			}
			if msg.LeftID != uuid.Nil {
				fields["left_id"] = msg.LeftID
			}
			if msg.RightID != uuid.Nil {
				fields["right_id"] = msg.RightID
			}
			if len(fields) == 0 {
				return nil
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LinkEntitiesCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LinkEntitiesHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *LinkEntitiesHandler) Execute(ctx context.Context, msg LinkEntitiesCommand) error {
	return h.inner.Execute(ctx, msg)
}

func relationByName(name string) *relations.Relation {
	for _, rel := range relations.Relations {
		if rel.Name == name {
			return rel
		}
	}
	return nil
}
