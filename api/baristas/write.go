package baristas

import (
	"coffeeshop_server/handling"
	"coffeeshop_server/lib"
	"coffeeshop_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (brm *BaristaRoutesManager) CreateBarista(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.BaristaCreate](r)
	if err != nil {
		handling.HandleError(err, "invalid barista body", brm.logger, w)
		return
	}

	barista, err := brm.baristaService.Create(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "failed to create barista", brm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusCreated, barista)
}

func (brm *BaristaRoutesManager) UpdateBarista(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r)
	if err != nil {
		handling.HandleError(err, "invalid barista id", brm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.BaristaUpdate](r)
	if err != nil {
		handling.HandleError(err, "invalid barista body", brm.logger, w)
		return
	}
	body.ID = &id

	barista, err := brm.baristaService.Update(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "failed to update barista", brm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusOK, barista)
}

func (brm *BaristaRoutesManager) DeleteBarista(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r)
	if err != nil {
		handling.HandleError(err, "invalid barista id", brm.logger, w)
		return
	}

	if err := brm.baristaService.Delete(r.Context(), id); err != nil {
		handling.HandleError(err, "failed to delete barista", brm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Barista deleted"),
		gecho.WithData(map[string]any{"id": id}),
		gecho.Send(),
	)
}
