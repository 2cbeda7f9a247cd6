package tables

import "github.com/uptrace/bun"

type Coffee struct {
	bun.BaseModel `bun:"table:coffee,alias:c"`

	ID    int64   `bun:"id,pk,autoincrement"`
	Name  string  `bun:"name,notnull"`
	Price float64 `bun:"price,notnull"`
}
