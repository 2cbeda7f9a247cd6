package repository

import (
	"coffeeshop_server/database"
	"coffeeshop_server/entity"
	"coffeeshop_server/lib"
	"coffeeshop_server/structs/tables"
	"context"
)

type BaristaRepository struct {
	db *database.DB
}

func NewBaristaRepository(db *database.DB) *BaristaRepository {
	return &BaristaRepository{db: db}
}

func (r *BaristaRepository) Create(ctx context.Context, b *entity.Barista) (*entity.Barista, error) {
	row, err := database.Query[tables.Barista](r.db.Conn(ctx)).Insert(ctx, baristaToRow(b), "id")
	if err != nil {
		return nil, database.MapError(err)
	}
	return baristaFromRow(row)
}

func (r *BaristaRepository) Update(ctx context.Context, b *entity.Barista) (*entity.Barista, error) {
	affected, err := database.Query[tables.Barista](r.db.Conn(ctx)).
		Where("id", b.ID()).
		Update(ctx, baristaToRow(b), "id")
	if err != nil {
		return nil, database.MapError(err)
	}
	if affected == 0 {
		return nil, lib.BaristaNotFound(b.ID())
	}
	return b, nil
}

func (r *BaristaRepository) Delete(ctx context.Context, id int64) error {
	found, err := database.DeleteByID[tables.Barista](ctx, r.db.Conn(ctx), "id", id)
	if err != nil {
		return database.MapError(err)
	}
	if !found {
		return lib.BaristaNotFound(id)
	}
	return nil
}

func (r *BaristaRepository) FindByID(ctx context.Context, id int64) (*entity.Barista, error) {
	row, err := database.FindByID[tables.Barista](ctx, r.db.Conn(ctx), "id", id)
	if err != nil {
		return nil, database.MapError(err)
	}
	if row == nil {
		return nil, nil
	}
	return baristaFromRow(row)
}

func (r *BaristaRepository) FindAll(ctx context.Context) ([]*entity.Barista, error) {
	rows, err := database.Query[tables.Barista](r.db.Conn(ctx)).OrderBy("id", database.ASC).All(ctx)
	if err != nil {
		return nil, database.MapError(err)
	}
	return baristasFromRows(rows)
}

func (r *BaristaRepository) FindAllByPage(ctx context.Context, page, limit int) ([]*entity.Barista, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}
	rows, err := database.Paginate[tables.Barista](ctx, r.db.Conn(ctx), "id", page, limit)
	if err != nil {
		return nil, database.MapError(err)
	}
	return baristasFromRows(rows)
}

func (r *BaristaRepository) FindAllByID(ctx context.Context, ids []int64) ([]*entity.Barista, error) {
	rows, err := database.FindByIDs[tables.Barista](ctx, r.db.Conn(ctx), "id", ids)
	if err != nil {
		return nil, database.MapError(err)
	}
	return baristasFromRows(rows)
}
