package handler

import (
	"net/http"

	"phone_printer/internal/phone/service"
	"phone_printer/internal/phone/transport"
	"phone_printer/platform/httpkit"
	"phone_printer/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for phone formatting.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new phone handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Format returns the as-you-type rendering of a number.
// POST /api/v1/phone/format
func (h *Handler) Format(c *gin.Context) {
	req, ok := h.bindPhoneRequest(c)
	if !ok {
		return
	}

	result := h.svc.FormatIncremental(c.Request.Context(), req.Number, req.CountryCode)
	httpkit.OK(c, transport.FormatResponse{Result: result})
}

// Validate returns the E.164 rendering of a number, or null when it is not valid.
// POST /api/v1/phone/validate
func (h *Handler) Validate(c *gin.Context) {
	req, ok := h.bindPhoneRequest(c)
	if !ok {
		return
	}

	resp := transport.ValidateResponse{}
	if result, valid := h.svc.FormatIfValid(c.Request.Context(), req.Number, req.CountryCode); valid {
		resp.Result = &result
		resp.Valid = true
	}
	httpkit.OK(c, resp)
}

// ListRegions lists the supported regions.
// GET /api/v1/phone/regions
func (h *Handler) ListRegions(c *gin.Context) {
	regions := h.svc.Regions()
	httpkit.OK(c, transport.RegionListResponse{Items: regions, Total: len(regions)})
}

// GetRegion returns one region with its calling code and example number.
// GET /api/v1/phone/regions/:code
func (h *Handler) GetRegion(c *gin.Context) {
	info, err := h.svc.Region(c.Param("code"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, info)
}

// QRCode renders a PNG that dials the number.
// GET /api/v1/phone/qr?countryCode=US&number=2015550123
func (h *Handler) QRCode(c *gin.Context) {
	var req transport.QRCodeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	png, err := h.svc.QRCode(c.Request.Context(), req.Number, req.CountryCode, req.Size)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) bindPhoneRequest(c *gin.Context) (transport.PhoneRequest, bool) {
	var req transport.PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return req, false
	}
	return req, true
}
