package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/khairunnisaa/palmcode-api/internal/service"
	"github.com/labstack/echo/v4"
)

const idCardImageField = "id_card_image"

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/bookings", h.ListBookings)
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings/search", h.SearchBookings)
	g.GET("/bookings/sort", h.SortBookings)
	g.GET("/bookings/paginate", h.PaginateBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.PUT("/bookings/:id", h.UpdateBooking)
	g.PATCH("/bookings/:id", h.UpdateBooking)
	g.DELETE("/bookings/:id", h.DeleteBooking)
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), listQuery(c))
	if err != nil {
		return serviceError(err)
	}
	return sendPaginated(c, page, toDetail, "Bookings retrieved successfully")
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c, "Booking")
	if err != nil {
		return sendError(c, http.StatusNotFound, "Booking not found.", nil)
	}

	details, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		return sendError(c, http.StatusNotFound, "Booking not found.", nil)
	}
	if err != nil {
		return serviceError(err)
	}
	return sendResponse(c, toDetail(*details), "Booking retrieved successfully.")
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := dto.CreateBookingRequest{
		MemberID:          params.Get("member_id"),
		CountryID:         params.Get("country_id"),
		SurfingExperience: params.Get("surfing_experience"),
		VisitDate:         params.Get("visit_date"),
		DesiredBoard:      params.Get("desired_board"),
		IdCardImage:       formFile(c, idCardImageField),
	}

	details, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		var cerr *service.CreateFailedError
		if errors.As(err, &cerr) {
			return sendError(c, http.StatusInternalServerError, "Booking creation failed.", cerr.Error())
		}
		return serviceError(err)
	}
	return sendResponse(c, toDetail(*details), "Booking created successfully.")
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := parseID(c, "Booking")
	if err != nil {
		return err
	}

	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := dto.UpdateBookingRequest{
		MemberID:          present(params, "member_id"),
		CountryID:         present(params, "country_id"),
		IdVerificationID:  present(params, "id_verification_id"),
		SurfingExperience: present(params, "surfing_experience"),
		VisitDate:         present(params, "visit_date"),
		DesiredBoard:      present(params, "desired_board"),
		LinkURLPath:       present(params, "link_url_path"),
		IdCardImage:       formFile(c, idCardImageField),
	}

	booking, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(err)
	}
	return sendResponse(c, dto.ToBookingResponse(booking), "Booking updated successfully.")
}

func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	id, err := parseID(c, "Booking")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return sendMessage(c, "Booking deleted successfully")
}

func (h *BookingHandler) SearchBookings(c echo.Context) error {
	var memberID *uint
	if raw := strings.TrimSpace(c.QueryParam("member_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return validationError(map[string][]string{
				"member_id": {"The member id field must be an integer."},
			})
		}
		v := uint(id)
		memberID = &v
	}

	bookings, err := h.svc.Search(c.Request().Context(), memberID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, dto.BookingsResponse{Bookings: bookings})
}

func (h *BookingHandler) SortBookings(c echo.Context) error {
	bookings, err := h.svc.Sort(c.Request().Context(), c.QueryParam("column"), c.QueryParam("direction"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, dto.BookingsResponse{Bookings: bookings})
}

func (h *BookingHandler) PaginateBookings(c echo.Context) error {
	page, err := h.svc.Paginate(c.Request().Context(), queryInt(c, "page"), queryInt(c, "perPage"))
	if err != nil {
		return serviceError(err)
	}

	path := c.Scheme() + "://" + c.Request().Host + c.Request().URL.Path
	paginator := dto.NewPaginator(path, page.Items, len(page.Items), page.Page, page.PerPage, page.Total)
	return c.JSON(http.StatusOK, dto.BookingsResponse{Bookings: paginator})
}

func toDetail(d service.BookingDetails) dto.BookingDetailResponse {
	return dto.ToBookingDetailResponse(&d.Booking, d.Member, d.Country, d.IdVerification)
}

// present returns the form value for key, or nil when the key was not sent.
func present(params url.Values, key string) *string {
	values, ok := params[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func formFile(c echo.Context, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}

