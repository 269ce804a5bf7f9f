package wizard

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/petportal/booking-api/internal/handler"
	"github.com/petportal/booking-api/internal/middleware"
	"github.com/petportal/booking-api/internal/model"
	"github.com/petportal/booking-api/internal/wizard"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Calendar days arrive without a time component.
		v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(model.DateLayout, fl.Field().String())
			return err == nil
		})
	}
}

type Handler struct {
	manager *wizard.Manager
}

func NewHandler(manager *wizard.Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	w := r.Group("/wizard")
	{
		w.POST("", h.OpenSession)
		w.GET("/:id", h.GetState)
		w.DELETE("/:id", h.DiscardSession)
		w.PUT("/:id/clinic", h.SelectClinic)
		w.PUT("/:id/schedule", h.SelectSchedule)
		w.POST("/:id/services/toggle", h.ToggleService)
		w.POST("/:id/assignments/toggle", h.ToggleAssignment)
		w.POST("/:id/advance", h.Advance)
		w.POST("/:id/retreat", h.Retreat)
		w.POST("/:id/submit", h.Submit)
	}
}

type selectClinicRequest struct {
	ClinicID string `json:"clinic_id" binding:"required,uuid"`
}

type selectScheduleRequest struct {
	Date    string `json:"date" binding:"omitempty,dateonly"`
	ShiftID string `json:"shift_id" binding:"omitempty,uuid"`
}

type toggleServiceRequest struct {
	ServiceID string `json:"service_id" binding:"required,uuid"`
}

type toggleAssignmentRequest struct {
	PetID     string `json:"pet_id" binding:"required,uuid"`
	ServiceID string `json:"service_id" binding:"required,uuid"`
}

func (h *Handler) OpenSession(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	session := h.manager.Open(ownerID)
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(session.State()))
}

func (h *Handler) GetState(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(session.State()))
}

func (h *Handler) DiscardSession(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid session ID"))
		return
	}
	if err := h.manager.Discard(id, ownerID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) SelectClinic(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req selectClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	if err := session.SelectClinic(clinicID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(session.State()))
}

func (h *Handler) SelectSchedule(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req selectScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if req.Date != "" {
		date, err := time.ParseInLocation(model.DateLayout, req.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date format"))
			return
		}
		if err := session.SelectDate(date); err != nil {
			h.respondError(c, err)
			return
		}
	}

	if req.ShiftID != "" {
		shiftID, err := uuid.Parse(req.ShiftID)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid shift ID"))
			return
		}
		if err := session.SelectShift(shiftID); err != nil {
			h.respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(session.State()))
}

func (h *Handler) ToggleService(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req toggleServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	serviceID, _ := uuid.Parse(req.ServiceID)

	if err := session.ToggleService(serviceID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(session.State()))
}

func (h *Handler) ToggleAssignment(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req toggleAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	petID, _ := uuid.Parse(req.PetID)
	serviceID, _ := uuid.Parse(req.ServiceID)

	if err := session.ToggleAssignment(petID, serviceID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(session.State()))
}

func (h *Handler) Advance(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := session.Advance(); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(session.State()))
}

func (h *Handler) Retreat(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := session.Retreat(); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(session.State()))
}

func (h *Handler) Submit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := session.Submit(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(session.State()))
}

func (h *Handler) session(c *gin.Context) (*wizard.Session, bool) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid session ID"))
		return nil, false
	}
	session, err := h.manager.Get(id, ownerID)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return session, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, wizard.ErrUnknownShift),
		errors.Is(err, wizard.ErrUnknownService),
		errors.Is(err, wizard.ErrUnknownPet):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, wizard.ErrStepGated),
		errors.Is(err, wizard.ErrNotAtConfirmation),
		errors.Is(err, wizard.ErrSubmissionInFlight),
		errors.Is(err, wizard.ErrAlreadySubmitted),
		errors.Is(err, wizard.ErrShiftExpired),
		errors.Is(err, wizard.ErrServiceNotSelected),
		errors.Is(err, wizard.ErrNoClinicSelected):
		status = http.StatusConflict
	}
	c.JSON(status, handler.NewErrorResponse(err.Error()))
}
