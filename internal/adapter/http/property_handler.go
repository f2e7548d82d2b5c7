package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dealflow-backend/internal/repair"
	"dealflow-backend/internal/usecase/acquisition"
)

type PropertyHandler struct{ uc *acquisition.Usecase }

func NewPropertyHandler(uc *acquisition.Usecase) *PropertyHandler {
	return &PropertyHandler{uc: uc}
}

type createPropertyReq struct {
	Address          string `json:"address"           validate:"required"`
	RequireDocuments bool   `json:"require_documents"`
}

func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	var req createPropertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), acquisition.CreatePropertyInput{
		Address:          req.Address,
		RequireDocuments: req.RequireDocuments,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PropertyHandler) GetProperty(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("property_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PropertyHandler) ListProperties(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *PropertyHandler) ListInspections(c echo.Context) error {
	dtos, err := h.uc.ListInspections(c.Request().Context(), c.Param("property_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *PropertyHandler) GetContract(c echo.Context) error {
	dto, err := h.uc.GetContract(c.Request().Context(), c.Param("property_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PropertyHandler) GetHistory(c echo.Context) error {
	dtos, err := h.uc.GetHistory(c.Request().Context(), c.Param("property_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

// RepairCategories exposes the fixed price-table categories so the agent
// layer can offer them without hardcoding.
func (h *PropertyHandler) RepairCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"categories": repair.Categories()})
}
