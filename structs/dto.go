package structs

// Request bodies. Pointer fields distinguish "absent" from a zero value so a
// missing field is reported as missing rather than as invalid.

type BaristaCreate struct {
	FullName *string  `json:"fullName" validate:"required"`
	TipSize  *float64 `json:"tipSize"` // defaults when omitted
}

type BaristaUpdate struct {
	ID          *int64   `json:"id"` // replaced by the path id
	FullName    *string  `json:"fullName" validate:"required"`
	TipSize     *float64 `json:"tipSize" validate:"required"`
	OrderIDList []int64  `json:"orderIdList" validate:"required"`
}

type CoffeeCreate struct {
	Name  *string  `json:"name" validate:"required"`
	Price *float64 `json:"price" validate:"required"`
}

type CoffeeUpdate struct {
	ID          *int64   `json:"id"`
	Name        *string  `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	OrderIDList []int64  `json:"orderIdList" validate:"required"`
}

type OrderCreate struct {
	BaristaID    *int64  `json:"baristaId" validate:"required"`
	CoffeeIDList []int64 `json:"coffeeIdList" validate:"required"`
}

type OrderUpdate struct {
	ID           *int64     `json:"id"`
	BaristaID    *int64     `json:"baristaId" validate:"required"`
	Created      *Timestamp `json:"created" validate:"required"`
	Completed    *Timestamp `json:"completed"`
	Price        *float64   `json:"price"` // recomputed by the server
	CoffeeIDList []int64    `json:"coffeeIdList" validate:"required"`
}

// Response bodies. NoRef shapes carry scalars only and are what a sibling's
// Public shape nests.

type BaristaPublic struct {
	ID       int64        `json:"id"`
	FullName string       `json:"fullName"`
	TipSize  float64      `json:"tipSize"`
	Orders   []OrderNoRef `json:"orders"`
}

type BaristaNoRef struct {
	ID       int64   `json:"id"`
	FullName string  `json:"fullName"`
	TipSize  float64 `json:"tipSize"`
}

type CoffeePublic struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Price  float64      `json:"price"`
	Orders []OrderNoRef `json:"orders"`
}

type CoffeeNoRef struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type OrderPublic struct {
	ID        int64         `json:"id"`
	BaristaID BaristaNoRef  `json:"baristaId"`
	Created   Timestamp     `json:"created"`
	Completed *Timestamp    `json:"completed"`
	Price     float64       `json:"price"`
	Coffees   []CoffeeNoRef `json:"coffees"`
}

type OrderNoRef struct {
	ID        int64      `json:"id"`
	BaristaID int64      `json:"baristaId"`
	Created   Timestamp  `json:"created"`
	Completed *Timestamp `json:"completed"`
	Price     float64    `json:"price"`
}
