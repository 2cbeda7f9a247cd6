package coffees

import (
	"coffeeshop_server/handling"
	"coffeeshop_server/lib"
	"coffeeshop_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (crm *CoffeeRoutesManager) CreateCoffee(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CoffeeCreate](r)
	if err != nil {
		handling.HandleError(err, "invalid coffee body", crm.logger, w)
		return
	}

	coffee, err := crm.coffeeService.Create(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "failed to create coffee", crm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusCreated, coffee)
}

func (crm *CoffeeRoutesManager) UpdateCoffee(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r)
	if err != nil {
		handling.HandleError(err, "invalid coffee id", crm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CoffeeUpdate](r)
	if err != nil {
		handling.HandleError(err, "invalid coffee body", crm.logger, w)
		return
	}
	body.ID = &id

	coffee, err := crm.coffeeService.Update(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "failed to update coffee", crm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusOK, coffee)
}

func (crm *CoffeeRoutesManager) DeleteCoffee(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r)
	if err != nil {
		handling.HandleError(err, "invalid coffee id", crm.logger, w)
		return
	}

	if err := crm.coffeeService.Delete(r.Context(), id); err != nil {
		handling.HandleError(err, "failed to delete coffee", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Coffee deleted"),
		gecho.WithData(map[string]any{"id": id}),
		gecho.Send(),
	)
}
