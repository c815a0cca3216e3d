package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"wastetrack/internal/api/middleware"
	"wastetrack/internal/app/service"
	"wastetrack/internal/common"
	"wastetrack/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type RequestHandler struct {
	requestService *service.RequestService
}

func NewRequestHandler(requestService *service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(userRouter chi.Router) {
		userRouter.Use(middleware.RequireUser)
		userRouter.Post("/waste-request", h.submitRequest)
		userRouter.Get("/my-requests", h.myRequests)
	})

	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(middleware.RequireAdmin)
		adminRouter.Get("/all-requests", h.allRequests)
		adminRouter.Put("/request/{requestID}/status", h.updateStatus)
	})
}

func (h *RequestHandler) submitRequest(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipalFromContext(r.Context())

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	request, err := h.requestService.Submit(r.Context(), principal.ID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), submitErrorMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Waste collection request submitted successfully",
		"requestId": request.ID,
	})
}

func (h *RequestHandler) myRequests(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.GetPrincipalFromContext(r.Context())

	requests, err := h.requestService.ListMine(r.Context(), principal.ID)
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch requests")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (h *RequestHandler) allRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListAll(r.Context())
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch requests")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

type updateStatusRequest struct {
	Status model.RequestStatus `json:"status"`
}

func (h *RequestHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.requestService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), updateStatusErrorMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Status updated successfully",
	})
}

func submitErrorMessage(err error) string {
	if common.HTTPStatusFromError(err) == http.StatusBadRequest {
		return err.Error()
	}
	return "Failed to submit request"
}

func updateStatusErrorMessage(err error) string {
	switch common.HTTPStatusFromError(err) {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusNotFound:
		return "Request not found"
	}
	return "Failed to update status"
}
