package http

import (
	"net/http"

	"github.com/MKhiriev/go-onboard/internal/app"
	"github.com/MKhiriev/go-onboard/internal/utils"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteResponse(w, http.StatusOK, app.MsgUsersRetrieved, users)
}
