package handler

import (
	"errors"
	"net/http"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/khairunnisaa/palmcode-api/internal/service"
	"github.com/labstack/echo/v4"
)

type MemberHandler struct {
	svc service.MemberService
}

func NewMemberHandler(svc service.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

func (h *MemberHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/members", h.ListMembers)
	g.POST("/members", h.CreateMember)
	g.GET("/members/:id", h.GetMember)
	g.PUT("/members/:id", h.UpdateMember)
	g.PATCH("/members/:id", h.UpdateMember)
	g.DELETE("/members/:id", h.DeleteMember)
}

func (h *MemberHandler) ListMembers(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), listQuery(c))
	if err != nil {
		return serviceError(err)
	}
	return sendPaginated(c, page, func(m dto.MemberListItem) dto.MemberListItem { return m }, "Members retrieved successfully")
}

func (h *MemberHandler) CreateMember(c echo.Context) error {
	var req dto.MemberRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	member, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return serviceError(err)
	}
	return sendResponse(c, dto.ToMemberResponse(member), "Member created successfully.")
}

func (h *MemberHandler) GetMember(c echo.Context) error {
	id, err := parseID(c, "Member")
	if err != nil {
		return sendError(c, http.StatusNotFound, "Member not found.", nil)
	}

	member, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		return sendError(c, http.StatusNotFound, "Member not found.", nil)
	}
	if err != nil {
		return serviceError(err)
	}
	return sendResponse(c, dto.ToMemberResponse(member), "Member retrieved successfully.")
}

func (h *MemberHandler) UpdateMember(c echo.Context) error {
	id, err := parseID(c, "Member")
	if err != nil {
		return err
	}

	var req dto.MemberRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	member, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(err)
	}
	return sendResponse(c, dto.ToMemberResponse(member), "Member updated successfully.")
}

func (h *MemberHandler) DeleteMember(c echo.Context) error {
	id, err := parseID(c, "Member")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return sendMessage(c, "Member deleted successfully")
}
