package lib

import (
	"context"
	"errors"
	"net/http"
)

// Category is the response class an error is rendered as.
type Category int

const (
	CategoryInternal Category = iota
	CategoryBadRequest
	CategoryNotFound
	CategoryConflict
)

func (c Category) String() string {
	switch c {
	case CategoryBadRequest:
		return "BadRequest"
	case CategoryNotFound:
		return "NotFound"
	case CategoryConflict:
		return "Conflict"
	default:
		return "InternalError"
	}
}

// StatusCode returns the HTTP status for the category.
func (c Category) StatusCode() int {
	switch c {
	case CategoryBadRequest:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

var kindCategories = map[Kind]Category{
	KindNullParam:              CategoryBadRequest,
	KindNoValidID:              CategoryBadRequest,
	KindNoValidName:            CategoryBadRequest,
	KindNoValidPrice:           CategoryBadRequest,
	KindNoValidTipSize:         CategoryBadRequest,
	KindNoValidPage:            CategoryBadRequest,
	KindNoValidLimit:           CategoryBadRequest,
	KindCreatedNotDefined:      CategoryBadRequest,
	KindCompletedBeforeCreated: CategoryBadRequest,
	KindCreatedInFuture:        CategoryBadRequest,
	KindDuplicatedElements:     CategoryBadRequest,
	KindKeyNotPresent:          CategoryBadRequest,
	KindBaristaNotFound:        CategoryNotFound,
	KindCoffeeNotFound:         CategoryNotFound,
	KindOrderNotFound:          CategoryNotFound,
	KindOrderAlreadyCompleted:  CategoryConflict,
	KindOrderHasReferences:     CategoryConflict,
	KindCoffeeHasReferences:    CategoryConflict,
	KindDataBase:               CategoryInternal,
}

// Classify maps any error to a response category. Unknown errors, timeouts
// and cancellations are internal.
func Classify(err error) Category {
	if err == nil {
		return CategoryInternal
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return CategoryBadRequest
	}
	var be *BodyError
	if errors.As(err, &be) {
		return CategoryBadRequest
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CategoryInternal
	}
	if category, ok := kindCategories[KindOf(err)]; ok {
		return category
	}
	return CategoryInternal
}
