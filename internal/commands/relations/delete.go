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

const deleteEntityMessageType = "multisite.relations.delete_entity"

// DeleteEntityCommand removes an entity and, in the same transaction, every
// link row that references it.
type DeleteEntityCommand struct {
	Kind relations.EntityKind `json:"kind"`
	ID   uuid.UUID            `json:"id"`
}

// Type implements command.Message.
func (DeleteEntityCommand) Type() string { return deleteEntityMessageType }

// Validate ensures the command names a known entity kind and identifier.
func (m DeleteEntityCommand) Validate() error {
	errs := validation.Errors{}
	switch m.Kind {
	case relations.KindLocation, relations.KindArticle, relations.KindProduct, relations.KindPromotion:
	default:
		errs["kind"] = validation.NewError("multisite.relations.delete_entity.kind_invalid", "kind must be a linkable entity kind")
	}
	if m.ID == uuid.Nil {
		errs["id"] = validation.NewError("multisite.relations.delete_entity.id_required", "id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteEntityHandler routes entity deletion through the integrity manager.
type DeleteEntityHandler struct {
	inner *commands.Handler[DeleteEntityCommand]
}

// NewDeleteEntityHandler constructs a handler wired to the integrity manager.
func NewDeleteEntityHandler(service relations.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteEntityCommand]) *DeleteEntityHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DeleteEntityCommand) error {
		switch msg.Kind {
		case relations.KindLocation:
			return service.DeleteLocation(ctx, msg.ID)
		case relations.KindArticle:
			return service.DeleteArticle(ctx, msg.ID)
		case relations.KindProduct:
			return service.DeleteProduct(ctx, msg.ID)
		case relations.KindPromotion:
			return service.DeletePromotion(ctx, msg.ID)
		}
		return fmt.Errorf("relations: unknown entity kind %q", msg.Kind)
	}

	handlerOpts := []commands.HandlerOption[DeleteEntityCommand]{
		commands.WithLogger[DeleteEntityCommand](baseLogger),
		commands.WithOperation[DeleteEntityCommand]("relations.delete_entity"),
		commands.WithMessageFields(func(msg DeleteEntityCommand) map[string]any {
			fields := map[string]any{}
			if msg.Kind != "" {
				fields["kind"] = string(msg.Kind)
			}
			if msg.ID != uuid.Nil {
				fields["entity_id"] = msg.ID
			}
			if len(fields) == 0 {
				return nil
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeleteEntityCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteEntityHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *DeleteEntityHandler) Execute(ctx context.Context, msg DeleteEntityCommand) error {
	return h.inner.Execute(ctx, msg)
}
