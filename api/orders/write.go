package orders

import (
	"coffeeshop_server/handling"
	"coffeeshop_server/lib"
	"coffeeshop_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.OrderCreate](r)
	if err != nil {
		handling.HandleError(err, "invalid order body", orm.logger, w)
		return
	}

	order, err := orm.orderService.Create(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "failed to create order", orm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusCreated, order)
}

func (orm *OrderRoutesManager) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r)
	if err != nil {
		handling.HandleError(err, "invalid order id", orm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderUpdate](r)
	if err != nil {
		handling.HandleError(err, "invalid order body", orm.logger, w)
		return
	}
	body.ID = &id

	order, err := orm.orderService.Update(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "failed to update order", orm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusOK, order)
}

func (orm *OrderRoutesManager) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r)
	if err != nil {
		handling.HandleError(err, "invalid order id", orm.logger, w)
		return
	}

	if err := orm.orderService.Delete(r.Context(), id); err != nil {
		handling.HandleError(err, "failed to delete order", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order deleted"),
		gecho.WithData(map[string]any{"id": id}),
		gecho.Send(),
	)
}

func (orm *OrderRoutesManager) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r)
	if err != nil {
		handling.HandleError(err, "invalid order id", orm.logger, w)
		return
	}

	order, err := orm.orderService.Complete(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to complete order", orm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusOK, order)
}
