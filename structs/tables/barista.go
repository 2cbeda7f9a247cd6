package tables

import "github.com/uptrace/bun"

type Barista struct {
	bun.BaseModel `bun:"table:barista,alias:b"`

	ID       int64   `bun:"id,pk,autoincrement"`
	FullName string  `bun:"full_name,notnull"`
	TipSize  float64 `bun:"tip_size,notnull"`
}
