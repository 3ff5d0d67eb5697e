package handler

import (
	"errors"
	"net/http"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/khairunnisaa/palmcode-api/internal/models"
	"github.com/khairunnisaa/palmcode-api/internal/service"
	"github.com/labstack/echo/v4"
)

type CountryHandler struct {
	svc service.CountryService
}

func NewCountryHandler(svc service.CountryService) *CountryHandler {
	return &CountryHandler{svc: svc}
}

func (h *CountryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/countries", h.ListCountries)
	g.POST("/countries", h.CreateCountry)
	g.GET("/countries/:id", h.GetCountry)
	g.PUT("/countries/:id", h.UpdateCountry)
	g.PATCH("/countries/:id", h.UpdateCountry)
	g.DELETE("/countries/:id", h.DeleteCountry)
}

func (h *CountryHandler) ListCountries(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), listQuery(c))
	if err != nil {
		return serviceError(err)
	}
	return sendPaginated(c, page, func(country models.Country) dto.CountryResponse {
		return dto.ToCountryResponse(&country)
	}, "Countries retrieved successfully")
}

func (h *CountryHandler) CreateCountry(c echo.Context) error {
	var req dto.CountryRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	country, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return serviceError(err)
	}
	return sendResponse(c, dto.ToCountryResponse(country), "Country created successfully.")
}

func (h *CountryHandler) GetCountry(c echo.Context) error {
	id, err := parseID(c, "Country")
	if err != nil {
		return sendError(c, http.StatusNotFound, "Country not found.", nil)
	}

	country, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		return sendError(c, http.StatusNotFound, "Country not found.", nil)
	}
	if err != nil {
		return serviceError(err)
	}
	return sendResponse(c, dto.ToCountryResponse(country), "Country retrieved successfully.")
}

func (h *CountryHandler) UpdateCountry(c echo.Context) error {
	id, err := parseID(c, "Country")
	if err != nil {
		return err
	}

	var req dto.CountryRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	country, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(err)
	}
	return sendResponse(c, dto.ToCountryResponse(country), "Country updated successfully.")
}

func (h *CountryHandler) DeleteCountry(c echo.Context) error {
	id, err := parseID(c, "Country")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return sendMessage(c, "Country deleted successfully")
}
