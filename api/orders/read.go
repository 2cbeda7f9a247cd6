package orders

import (
	"coffeeshop_server/handling"
	"coffeeshop_server/lib"
	"coffeeshop_server/structs"
	"net/http"
)

func (orm *OrderRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, limit, paged, err := handling.PageParams(r)
	if err != nil {
		handling.HandleError(err, "invalid pagination", orm.logger, w)
		return
	}

	var orders []structs.OrderPublic
	if paged {
		orders, err = orm.orderService.FindAllByPage(r.Context(), page, limit)
	} else {
		orders, err = orm.orderService.FindAll(r.Context())
	}
	if err != nil {
		handling.HandleError(err, "failed to list orders", orm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusOK, orders)
}

func (orm *OrderRoutesManager) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r)
	if err != nil {
		handling.HandleError(err, "invalid order id", orm.logger, w)
		return
	}

	order, err := orm.orderService.FindByID(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch order", orm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusOK, order)
}

// GetQueue lists the open orders, oldest first.
func (orm *OrderRoutesManager) GetQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := orm.orderService.GetQueue(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to fetch order queue", orm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusOK, queue)
}
