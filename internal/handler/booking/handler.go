package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petportal/booking-api/internal/handler"
	"github.com/petportal/booking-api/internal/middleware"
	"github.com/petportal/booking-api/internal/service/booking"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.GET("", h.ListBookings)
	}
}

// ListBookings returns the signed-in owner's past booking requests.
func (h *Handler) ListBookings(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(bookings))
}
