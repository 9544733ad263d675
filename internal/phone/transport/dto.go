package transport

import "phone_printer/platform/phone"

// PhoneRequest is the body of the format and validate endpoints. An unknown
// country code is not rejected here: it formats as raw digits and validates
// to null, like the bridge ports.
type PhoneRequest struct {
	CountryCode string `json:"countryCode" validate:"max=8"`
	Number      string `json:"number" validate:"max=64"`
}

// QRCodeRequest holds the query parameters of the QR endpoint.
type QRCodeRequest struct {
	CountryCode string `form:"countryCode" validate:"omitempty,region"`
	Number      string `form:"number" validate:"required,max=64"`
	Size        int    `form:"size" validate:"omitempty,min=64,max=1024"`
}

// FormatResponse carries the as-you-type formatted number.
type FormatResponse struct {
	Result string `json:"result"`
}

// ValidateResponse carries the E.164 number, or null when the input is not valid.
type ValidateResponse struct {
	Result *string `json:"result"`
	Valid  bool    `json:"valid"`
}

// RegionListResponse wraps the region table.
type RegionListResponse struct {
	Items []phone.RegionInfo `json:"items"`
	Total int                `json:"total"`
}
