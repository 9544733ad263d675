package service

import (
	"encoding/json"
)

// PhoneInput is one request from the UI.
type PhoneInput struct {
	CountryCode string
	Number      string
}

// DecodePhoneInput reads the [countryCode, number] pair the UI sends on the
// inbound ports. Anything other than a two-element array of strings is
// rejected.
func DecodePhoneInput(payload json.RawMessage) (PhoneInput, bool) {
	var pair []string
	if err := json.Unmarshal(payload, &pair); err != nil {
		return PhoneInput{}, false
	}
	if len(pair) != 2 {
		return PhoneInput{}, false
	}
	return PhoneInput{CountryCode: pair[0], Number: pair[1]}, true
}
