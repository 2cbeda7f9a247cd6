package baristas

import (
	"coffeeshop_server/handling"
	"coffeeshop_server/lib"
	"coffeeshop_server/structs"
	"net/http"
)

func (brm *BaristaRoutesManager) ListBaristas(w http.ResponseWriter, r *http.Request) {
	page, limit, paged, err := handling.PageParams(r)
	if err != nil {
		handling.HandleError(err, "invalid pagination", brm.logger, w)
		return
	}

	var baristas []structs.BaristaPublic
	if paged {
		baristas, err = brm.baristaService.FindAllByPage(r.Context(), page, limit)
	} else {
		baristas, err = brm.baristaService.FindAll(r.Context())
	}
	if err != nil {
		handling.HandleError(err, "failed to list baristas", brm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusOK, baristas)
}

func (brm *BaristaRoutesManager) GetBarista(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r)
	if err != nil {
		handling.HandleError(err, "invalid barista id", brm.logger, w)
		return
	}

	barista, err := brm.baristaService.FindByID(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch barista", brm.logger, w)
		return
	}

	lib.WriteJSON(w, http.StatusOK, barista)
}
