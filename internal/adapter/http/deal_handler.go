package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"dealflow-backend/internal/usecase/acquisition"
)

// DealHandler exposes the coordinator's workflow mutations. Each endpoint
// binds + validates, then hands already-extracted values to the usecase; the
// stage machine decides everything else.
type DealHandler struct{ uc *acquisition.Usecase }

func NewDealHandler(uc *acquisition.Usecase) *DealHandler { return &DealHandler{uc: uc} }

type submitPricesReq struct {
	AskingPrice *decimal.Decimal `json:"asking_price" validate:"required,gte=0,dec2"`
	MarketValue *decimal.Decimal `json:"market_value" validate:"required,gt=0,dec2"`
}

type submitInspectionReq struct {
	Defects     []string `json:"defects"      validate:"required"`
	TitleStatus string   `json:"title_status" validate:"required"`
	Notes       string   `json:"notes"`
}

type submitArvReq struct {
	ARV *decimal.Decimal `json:"arv" validate:"required,gt=0,dec2"`
}

type overrideReviewReq struct {
	Justification string `json:"justification" validate:"required"`
}

type rejectReq struct {
	Reason string `json:"reason"`
}

type generateContractReq struct {
	BuyerName  string `json:"buyer_name"  validate:"required"`
	SellerName string `json:"seller_name" validate:"required"`
}

func (h *DealHandler) bindAndValidate(c echo.Context, req any) (string, bool) {
	propertyID := c.Param("property_id")
	if propertyID == "" {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing property_id path param"})
		return "", false
	}
	if req != nil {
		if err := c.Bind(req); err != nil {
			_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
			return "", false
		}
		if err := c.Validate(req); err != nil {
			_ = c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "validation failed",
				Details: ToFieldErrors(err),
			})
			return "", false
		}
	}
	return propertyID, true
}

func (h *DealHandler) ConfirmDocuments(c echo.Context) error {
	propertyID, ok := h.bindAndValidate(c, nil)
	if !ok {
		return nil
	}
	dto, err := h.uc.ConfirmDocuments(c.Request().Context(), propertyID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DealHandler) SubmitPrices(c echo.Context) error {
	var req submitPricesReq
	propertyID, ok := h.bindAndValidate(c, &req)
	if !ok {
		return nil
	}
	dto, err := h.uc.SubmitPrices(c.Request().Context(), propertyID, acquisition.SubmitPricesInput{
		AskingPrice: *req.AskingPrice,
		MarketValue: *req.MarketValue,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DealHandler) SubmitInspection(c echo.Context) error {
	var req submitInspectionReq
	propertyID, ok := h.bindAndValidate(c, &req)
	if !ok {
		return nil
	}
	dto, err := h.uc.SubmitInspection(c.Request().Context(), propertyID, acquisition.SubmitInspectionInput{
		Defects:     req.Defects,
		TitleStatus: req.TitleStatus,
		Notes:       req.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DealHandler) SubmitArv(c echo.Context) error {
	var req submitArvReq
	propertyID, ok := h.bindAndValidate(c, &req)
	if !ok {
		return nil
	}
	dto, err := h.uc.SubmitArv(c.Request().Context(), propertyID, acquisition.SubmitArvInput{ARV: *req.ARV})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DealHandler) OverrideReview(c echo.Context) error {
	var req overrideReviewReq
	propertyID, ok := h.bindAndValidate(c, &req)
	if !ok {
		return nil
	}
	dto, err := h.uc.OverrideReview(c.Request().Context(), propertyID, req.Justification)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DealHandler) Reject(c echo.Context) error {
	var req rejectReq
	propertyID, ok := h.bindAndValidate(c, &req)
	if !ok {
		return nil
	}
	dto, err := h.uc.Reject(c.Request().Context(), propertyID, req.Reason)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DealHandler) GenerateContract(c echo.Context) error {
	var req generateContractReq
	propertyID, ok := h.bindAndValidate(c, &req)
	if !ok {
		return nil
	}
	dto, err := h.uc.GenerateContract(c.Request().Context(), propertyID, acquisition.GenerateContractInput{
		BuyerName:  req.BuyerName,
		SellerName: req.SellerName,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
