// README: Trip planning handlers (validate, plan).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripbrief/internal/modules/tripbrief"
)

// Planner is satisfied by *tripbrief.Planner.
type Planner interface {
	Plan(ctx context.Context, request string) (tripbrief.Results, error)
}

type TripHandler struct {
	planner Planner
}

func NewTripHandler(planner Planner) *TripHandler {
	return &TripHandler{planner: planner}
}

type tripReq struct {
	Request string `json:"request"`
}

type validationResp struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

type planResp struct {
	PlanID  string                    `json:"plan_id"`
	Results []tripbrief.DisplayRecord `json:"results"`
}

// Validate handles POST /api/trips/validate.
func (h *TripHandler) Validate(c *gin.Context) {
	var req tripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	var verr *tripbrief.ValidationError
	if err := tripbrief.Validate(req.Request); errors.As(err, &verr) {
		writeJSON(c, http.StatusOK, validationResp{Reason: verr.Code(), Error: verr.Reason.Error()})
		return
	}
	writeJSON(c, http.StatusOK, validationResp{Valid: true})
}

// Plan handles POST /api/trips/plan. It blocks until every provider slot has settled.
func (h *TripHandler) Plan(c *gin.Context) {
	var req tripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Request = strings.TrimSpace(req.Request)

	results, err := h.planner.Plan(c.Request.Context(), req.Request)
	if err != nil {
		var verr *tripbrief.ValidationError
		if errors.As(err, &verr) {
			writeJSON(c, http.StatusUnprocessableEntity, validationResp{Reason: verr.Code(), Error: verr.Reason.Error()})
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(c, http.StatusOK, planResp{
		PlanID:  uuid.NewString(),
		Results: tripbrief.Present(results),
	})
}
