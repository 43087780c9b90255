package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookingapp "github.com/growbro/backend/internal/application/booking"
)

// BookingHandler handles resource and reservation API endpoints
type BookingHandler struct {
	BaseHandler
	bookingService *bookingapp.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *bookingapp.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateResourceRequest is the request body for creating a bookable resource
type CreateResourceRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255" example:"Patio Table 4"`
	Description string `json:"description" binding:"max=2000"`
	Capacity    int    `json:"capacity" binding:"required,min=1" example:"4"`
	SlotMinutes int    `json:"slot_minutes" binding:"required,min=5" example:"90"`
}

// ReserveRequest is the request body for placing a reservation
type ReserveRequest struct {
	ResourceID    string    `json:"resource_id" binding:"required,uuid"`
	CustomerName  string    `json:"customer_name" binding:"required,min=1,max=255" example:"Ada"`
	CustomerPhone string    `json:"customer_phone" binding:"max=64" example:"+15551234567"`
	PartySize     int       `json:"party_size" binding:"required,min=1" example:"2"`
	SlotStart     time.Time `json:"slot_start" binding:"required"`
}

// ProofUploadRequest asks for a presigned upload target
type ProofUploadRequest struct {
	ContentType string `json:"content_type" binding:"required" example:"image/jpeg"`
}

// SubmitProofRequest attaches an uploaded payment proof
type SubmitProofRequest struct {
	StorageKey string `json:"storage_key" binding:"required,max=512"`
}

// CheckInRequest presents a check-in token
type CheckInRequest struct {
	Token string `json:"token" binding:"required,max=64"`
}

// CreateResource godoc
// @Summary      Create a bookable resource
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        request body CreateResourceRequest true "Resource creation request"
// @Success      201 {object} dto.Response{data=booking.ResourceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /booking/resources [post]
func (h *BookingHandler) CreateResource(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}

	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resource, err := h.bookingService.CreateResource(c.Request.Context(), orgID, bookingapp.CreateResourceRequest{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		SlotMinutes: req.SlotMinutes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resource)
}

// ListResources godoc
// @Summary      List bookable resources
// @Tags         booking
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search in resource name"
// @Success      200 {object} dto.Response{data=[]booking.ResourceResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /booking/resources [get]
func (h *BookingHandler) ListResources(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}
	filter, err := listFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	resources, total, err := h.bookingService.ListResources(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resources, total, filter.Page, filter.PageSize)
}

// Availability godoc
// @Summary      Get a resource's slot availability
// @Description  Slot-by-slot remaining capacity for one day
// @Tags         booking
// @Produce      json
// @Param        id path string true "Resource ID"
// @Param        day query string true "Day (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]booking.SlotAvailability}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /booking/resources/{id}/availability [get]
func (h *BookingHandler) Availability(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}
	resourceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid resource ID")
		return
	}
	day, err := time.Parse("2006-01-02", c.Query("day"))
	if err != nil {
		h.BadRequest(c, "Invalid day, expected YYYY-MM-DD")
		return
	}

	slots, err := h.bookingService.Availability(c.Request.Context(), orgID, resourceID, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slots)
}

// Reserve godoc
// @Summary      Place a reservation
// @Description  Hold a slot in pending_payment state; the response includes the check-in token and payment deadline
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        request body ReserveRequest true "Reservation request"
// @Success      201 {object} dto.Response{data=booking.ReservationResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /booking/reservations [post]
func (h *BookingHandler) Reserve(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resourceID, err := uuid.Parse(req.ResourceID)
	if err != nil {
		h.BadRequest(c, "Invalid resource ID")
		return
	}

	reservation, err := h.bookingService.Reserve(c.Request.Context(), orgID, bookingapp.ReserveRequest{
		ResourceID:    resourceID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PartySize:     req.PartySize,
		SlotStart:     req.SlotStart,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, reservation)
}

// GetReservation godoc
// @Summary      Get a reservation
// @Tags         booking
// @Produce      json
// @Param        id path string true "Reservation ID"
// @Success      200 {object} dto.Response{data=booking.ReservationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /booking/reservations/{id} [get]
func (h *BookingHandler) GetReservation(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}
	reservationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid reservation ID")
		return
	}

	reservation, err := h.bookingService.GetReservation(c.Request.Context(), orgID, reservationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reservation)
}

// ProofUploadURL godoc
// @Summary      Get a payment proof upload URL
// @Description  Returns a presigned URL the client PUTs the proof image to
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        id path string true "Reservation ID"
// @Param        request body ProofUploadRequest true "Upload request"
// @Success      200 {object} dto.Response{data=booking.ProofUploadResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /booking/reservations/{id}/proof-upload [post]
func (h *BookingHandler) ProofUploadURL(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}
	reservationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid reservation ID")
		return
	}

	var req ProofUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	upload, err := h.bookingService.ProofUploadURL(c.Request.Context(), orgID, reservationID, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, upload)
}

// SubmitProof godoc
// @Summary      Submit a payment proof
// @Description  Attach an uploaded proof object to the reservation
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        id path string true "Reservation ID"
// @Param        request body SubmitProofRequest true "Proof submission"
// @Success      200 {object} dto.Response{data=booking.ReservationResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /booking/reservations/{id}/proof [post]
func (h *BookingHandler) SubmitProof(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}
	reservationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid reservation ID")
		return
	}

	var req SubmitProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	reservation, err := h.bookingService.SubmitPaymentProof(c.Request.Context(), orgID, reservationID, bookingapp.SubmitProofRequest{
		StorageKey: req.StorageKey,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reservation)
}

// Confirm godoc
// @Summary      Confirm a reservation
// @Description  Staff verifies the payment proof and confirms the hold
// @Tags         booking
// @Produce      json
// @Param        id path string true "Reservation ID"
// @Success      200 {object} dto.Response{data=booking.ReservationResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /booking/reservations/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}
	reservationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid reservation ID")
		return
	}

	reservation, err := h.bookingService.Confirm(c.Request.Context(), orgID, reservationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reservation)
}

// Cancel godoc
// @Summary      Cancel a reservation
// @Tags         booking
// @Produce      json
// @Param        id path string true "Reservation ID"
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /booking/reservations/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}
	reservationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid reservation ID")
		return
	}

	if err := h.bookingService.Cancel(c.Request.Context(), orgID, reservationID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CheckIn godoc
// @Summary      Check in with a token
// @Description  Public endpoint: redeem a reservation's check-in token at the door. Idempotency is enforced per token.
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        request body CheckInRequest true "Check-in token"
// @Success      200 {object} dto.Response{data=booking.ReservationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /bookings/check-in [post]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	reservation, err := h.bookingService.CheckIn(c.Request.Context(), bookingapp.CheckInRequest{
		Token: req.Token,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reservation)
}
