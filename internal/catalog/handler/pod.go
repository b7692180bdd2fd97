package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"podquest/internal/catalog/service"
	apperrors "podquest/pkg/errors"
	httputil "podquest/pkg/http"
	"podquest/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type PodHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewPodHandler(service service.CatalogService, log *logger.Logger) *PodHandler {
	return &PodHandler{
		service: service,
		log:     log,
	}
}

// ListEligible returns the pods that can seat the requested guest count.
// Without a guests parameter the full catalog comes back (guests=1 matches
// every pod).
func (h *PodHandler) ListEligible(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	guests := 1
	if s := r.URL.Query().Get("guests"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid guests parameter: %s", s))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "ListEligible", "error", writeErr)
			}
			return
		}
		guests = v
	}

	pods := h.service.ListEligible(guests)
	if err := httputil.WriteSuccess(w, pods); err != nil {
		h.log.Error("failed to write success response", "handler", "ListEligible", "error", err)
	}
}

func (h *PodHandler) GetByName(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := ps.ByName("name")

	pod, err := h.service.FindByName(name)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByName", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, pod); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByName", "error", err)
	}
}

func (h *PodHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/pods", h.ListEligible)
	router.GET("/api/v1/pods/name/:name", h.GetByName)
}
