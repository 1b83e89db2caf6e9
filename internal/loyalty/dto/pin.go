package dto

type PinValidationInput struct {
	CompanyID string `json:"companyId"`
	Pin       string `json:"pin"`
	CardID    string `json:"cardId,omitempty"`
	Action    string `json:"action,omitempty"`
	IPAddress string `json:"-"`
}

type PinValidationOutput struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PinCheck is the result of the direct-entry PIN check shown to the user.
type PinCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}
