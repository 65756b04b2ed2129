package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-onboard/internal/app"
	"github.com/MKhiriev/go-onboard/internal/utils"
)

func (h *Handler) getAppInfo(w http.ResponseWriter, r *http.Request) {
	utils.WriteResponse(w, http.StatusOK, app.MsgOK, h.services.AppInfoService.GetAppInfo(r.Context()))
}

// welcome answers on the root path so that load balancers and humans get a
// readable response.
func (h *Handler) welcome(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetAppInfo(r.Context())

	utils.WriteResponse(w, http.StatusOK, fmt.Sprintf(app.MsgWelcome, info.Name), map[string]string{
		"version":     info.Version,
		"description": "API for registering users with a profile picture and a certificate",
	})
}
