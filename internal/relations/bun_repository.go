package relations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository implements Repository on bun. Link tables are addressed
// through the Relation descriptors, so one implementation covers all six
// join relations, and DeleteEntity runs the cascade and the entity delete in
// a single transaction.
type BunRepository struct {
	db *bun.DB
}

// NewBunRepository constructs a relations repository over the given database.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) CreateLink(ctx context.Context, link *Link) (*Link, error) {
	row := link.Relation.newRow(link.ID, link.LeftID, link.RightID, link.CreatedAt)
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return nil, fmt.Errorf("%s insert error: %w", link.Relation.Name, err)
	}
	return link, nil
}

func (r *BunRepository) DeleteLink(ctx context.Context, rel *Relation, leftID, rightID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Table(rel.Table).
		Where("? = ?", bun.Ident(rel.LeftColumn), leftID).
		Where("? = ?", bun.Ident(rel.RightColumn), rightID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("%s delete error: %w", rel.Name, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return &NotFoundError{Resource: rel.Name, Key: leftID.String() + "/" + rightID.String()}
	}
	return nil
}

func (r *BunRepository) HasLink(ctx context.Context, rel *Relation, leftID, rightID uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Table(rel.Table).
		Where("? = ?", bun.Ident(rel.LeftColumn), leftID).
		Where("? = ?", bun.Ident(rel.RightColumn), rightID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("%s lookup error: %w", rel.Name, err)
	}
	return exists, nil
}

func (r *BunRepository) ListRelated(ctx context.Context, rel *Relation, from EntityKind, id uuid.UUID) ([]uuid.UUID, error) {
	column := rel.ColumnFor(from)
	counterpart := rel.CounterpartColumn(from)
	if column == "" || counterpart == "" {
		return nil, ErrKindMismatch
	}

	ids := []uuid.UUID{}
	err := r.db.NewSelect().
		Table(rel.Table).
		Column(counterpart).
		Where("? = ?", bun.Ident(column), id).
		Order("created_at ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("%s list error: %w", rel.Name, err)
	}
	return ids, nil
}

func (r *BunRepository) Exists(ctx context.Context, kind EntityKind, id uuid.UUID) (bool, error) {
	table := kind.Table()
	if table == "" {
		return false, fmt.Errorf("relations: unknown entity kind %q", kind)
	}

	exists, err := r.db.NewSelect().
		Table(table).
		Where("id = ?", id).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("%s lookup error: %w", table, err)
	}
	return exists, nil
}

func (r *BunRepository) DeleteEntity(ctx context.Context, kind EntityKind, id uuid.UUID) error {
	table := kind.Table()
	if table == "" {
		return fmt.Errorf("relations: unknown entity kind %q", kind)
	}

	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Table(table).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("%s delete error: %w", table, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return &NotFoundError{Resource: string(kind), Key: id.String()}
		}

		for _, rel := range CascadesFor(kind) {
			if _, err := tx.NewDelete().
				Table(rel.Table).
				Where("? = ?", bun.Ident(rel.ColumnFor(kind)), id).
				Exec(ctx); err != nil {
				return fmt.Errorf("%s cascade error: %w", rel.Name, err)
			}
		}
		return nil
	})
}
