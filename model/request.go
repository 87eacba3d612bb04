// file: model/request.go

package model

// CreateAccountRequest defines the payload for opening a new account.
// It includes validation tags to ensure data integrity at the entry point;
// the PIN must be exactly 4 digits.
type CreateAccountRequest struct {
	PIN int `json:"pin" validate:"required,gte=1000,lte=9999"`
}

// ChangePINRequest defines the payload for replacing an account's PIN.
type ChangePINRequest struct {
	NewPIN int `json:"new_pin" validate:"required,gte=1000,lte=9999"`
}
