package lib

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the wire format for timestamps, ISO-8601 at seconds precision.
const TimestampLayout = "2006-01-02T15:04:05"

// Kind identifies a failure in the domain error taxonomy.
type Kind int

const (
	KindUnknown Kind = iota
	KindNullParam
	KindNoValidID
	KindNoValidName
	KindNoValidPrice
	KindNoValidTipSize
	KindNoValidPage
	KindNoValidLimit
	KindCreatedNotDefined
	KindCompletedBeforeCreated
	KindCreatedInFuture
	KindDuplicatedElements
	KindBaristaNotFound
	KindCoffeeNotFound
	KindOrderNotFound
	KindKeyNotPresent
	KindOrderAlreadyCompleted
	KindOrderHasReferences
	KindCoffeeHasReferences
	KindDataBase
)

var kindNames = map[Kind]string{
	KindUnknown:                "Unknown",
	KindNullParam:              "NullParam",
	KindNoValidID:              "NoValidId",
	KindNoValidName:            "NoValidName",
	KindNoValidPrice:           "NoValidPrice",
	KindNoValidTipSize:         "NoValidTipSize",
	KindNoValidPage:            "NoValidPage",
	KindNoValidLimit:           "NoValidLimit",
	KindCreatedNotDefined:      "CreatedNotDefined",
	KindCompletedBeforeCreated: "CompletedBeforeCreated",
	KindCreatedInFuture:        "CreatedInFuture",
	KindDuplicatedElements:     "DuplicatedElements",
	KindBaristaNotFound:        "BaristaNotFound",
	KindCoffeeNotFound:         "CoffeeNotFound",
	KindOrderNotFound:          "OrderNotFound",
	KindKeyNotPresent:          "KeyNotPresent",
	KindOrderAlreadyCompleted:  "OrderAlreadyCompleted",
	KindOrderHasReferences:     "OrderHasReferences",
	KindCoffeeHasReferences:    "CoffeeHasReferences",
	KindDataBase:               "DataBase",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Error is the single error type raised by the domain, mapping and
// persistence layers. IDs carries the offending ids when there are any.
type Error struct {
	Kind    Kind
	Message string
	IDs     []int64
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so sentinels like ErrOrderNotFound
// work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Kind sentinels for errors.Is comparisons.
var (
	ErrNullParam              = &Error{Kind: KindNullParam}
	ErrNoValidID              = &Error{Kind: KindNoValidID}
	ErrNoValidName            = &Error{Kind: KindNoValidName}
	ErrNoValidPrice           = &Error{Kind: KindNoValidPrice}
	ErrNoValidTipSize         = &Error{Kind: KindNoValidTipSize}
	ErrNoValidPage            = &Error{Kind: KindNoValidPage}
	ErrNoValidLimit           = &Error{Kind: KindNoValidLimit}
	ErrCreatedNotDefined      = &Error{Kind: KindCreatedNotDefined}
	ErrCompletedBeforeCreated = &Error{Kind: KindCompletedBeforeCreated}
	ErrCreatedInFuture        = &Error{Kind: KindCreatedInFuture}
	ErrDuplicatedElements     = &Error{Kind: KindDuplicatedElements}
	ErrBaristaNotFound        = &Error{Kind: KindBaristaNotFound}
	ErrCoffeeNotFound         = &Error{Kind: KindCoffeeNotFound}
	ErrOrderNotFound          = &Error{Kind: KindOrderNotFound}
	ErrKeyNotPresent          = &Error{Kind: KindKeyNotPresent}
	ErrOrderAlreadyCompleted  = &Error{Kind: KindOrderAlreadyCompleted}
	ErrOrderHasReferences     = &Error{Kind: KindOrderHasReferences}
	ErrCoffeeHasReferences    = &Error{Kind: KindCoffeeHasReferences}
	ErrDataBase               = &Error{Kind: KindDataBase}
)

// KindOf reports the taxonomy kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func NullParam(field string) error {
	return &Error{Kind: KindNullParam, Message: field + " is required"}
}

func NoValidID(id int64) error {
	return &Error{Kind: KindNoValidID, Message: fmt.Sprintf("id %d is not valid", id), IDs: []int64{id}}
}

// NoValidIDMessage is used when the id is valid as a number but not allowed
// for the operation.
func NoValidIDMessage(id int64, msg string) error {
	return &Error{Kind: KindNoValidID, Message: msg, IDs: []int64{id}}
}

func NoValidName(field string) error {
	return &Error{Kind: KindNoValidName, Message: field + " must not be empty"}
}

func NoValidPrice(price float64) error {
	return &Error{Kind: KindNoValidPrice, Message: fmt.Sprintf("price %v must be a finite, non-negative number", price)}
}

func NoValidTipSize(tip float64) error {
	return &Error{Kind: KindNoValidTipSize, Message: fmt.Sprintf("tipSize %v must be a finite, non-negative number", tip)}
}

func NoValidPage(page int) error {
	return &Error{Kind: KindNoValidPage, Message: fmt.Sprintf("page %d must be zero or greater", page)}
}

func NoValidLimit(limit int) error {
	return &Error{Kind: KindNoValidLimit, Message: fmt.Sprintf("limit %d must be one or greater", limit)}
}

func CreatedNotDefined() error {
	return &Error{Kind: KindCreatedNotDefined, Message: "completed cannot be set before created"}
}

func CompletedBeforeCreated(created, completed time.Time) error {
	return &Error{
		Kind: KindCompletedBeforeCreated,
		Message: fmt.Sprintf("completed %s must be after created %s",
			completed.UTC().Format(TimestampLayout), created.UTC().Format(TimestampLayout)),
	}
}

func CreatedInFuture(created, now time.Time) error {
	return &Error{
		Kind: KindCreatedInFuture,
		Message: fmt.Sprintf("created %s must not be after the current time %s",
			created.UTC().Format(TimestampLayout), now.UTC().Format(TimestampLayout)),
	}
}

func DuplicatedElements(field string, ids []int64) error {
	return &Error{
		Kind:    KindDuplicatedElements,
		Message: fmt.Sprintf("%s contains duplicated ids [%s]", field, joinIDs(ids)),
		IDs:     ids,
	}
}

func BaristaNotFound(ids ...int64) error {
	return notFound(KindBaristaNotFound, "barista", ids)
}

func CoffeeNotFound(ids ...int64) error {
	return notFound(KindCoffeeNotFound, "coffee", ids)
}

func OrderNotFound(ids ...int64) error {
	return notFound(KindOrderNotFound, "order", ids)
}

func notFound(kind Kind, entity string, ids []int64) error {
	if len(ids) == 1 {
		return &Error{Kind: kind, Message: fmt.Sprintf("%s with id %d not found", entity, ids[0]), IDs: ids}
	}
	return &Error{Kind: kind, Message: fmt.Sprintf("%s with ids [%s] not found", entity, joinIDs(ids)), IDs: ids}
}

func KeyNotPresent(err error) error {
	return &Error{Kind: KindKeyNotPresent, Message: "referenced row does not exist", Err: err}
}

func OrderAlreadyCompleted(id int64) error {
	return &Error{Kind: KindOrderAlreadyCompleted, Message: fmt.Sprintf("order %d is already completed", id), IDs: []int64{id}}
}

func OrderHasReferences(id int64) error {
	return &Error{Kind: KindOrderHasReferences, Message: fmt.Sprintf("order %d still references coffees", id), IDs: []int64{id}}
}

func CoffeeHasReferences(id int64, orderIDs []int64) error {
	return &Error{
		Kind:    KindCoffeeHasReferences,
		Message: fmt.Sprintf("coffee %d is still referenced by orders [%s]", id, joinIDs(orderIDs)),
		IDs:     orderIDs,
	}
}

// DataBase wraps a persistence failure. Errors that already carry a kind are
// returned unchanged.
func DataBase(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindDataBase, Message: "database operation failed", Err: err}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
