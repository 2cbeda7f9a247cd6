package coffees

import (
	"coffeeshop_server/handling"
	"coffeeshop_server/lib"
	"coffeeshop_server/structs"
	"net/http"
)

func (crm *CoffeeRoutesManager) ListCoffees(w http.ResponseWriter, r *http.Request) {
	page, limit, paged, err := handling.PageParams(r)
	if err != nil {
		handling.HandleError(err, "invalid pagination", crm.logger, w)
		return
	}

	var coffees []structs.CoffeePublic
	if paged {
		coffees, err = crm.coffeeService.FindAllByPage(r.Context(), page, limit)
	} else {
		coffees, err = crm.coffeeService.FindAll(r.Context())
	}
	if err != nil {
		handling.HandleError(err, "failed to list coffees", crm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusOK, coffees)
}

func (crm *CoffeeRoutesManager) GetCoffee(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r)
	if err != nil {
		handling.HandleError(err, "invalid coffee id", crm.logger, w)
		return
	}

	coffee, err := crm.coffeeService.FindByID(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch coffee", crm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusOK, coffee)
}
