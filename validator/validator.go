package validator

import (
	"regexp"

	"realty/dto"
	"realty/errors"
)

var streetRegex = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё0-9][A-Za-zА-Яа-яЁё0-9\s\-\.]*$`)

// ValidateREObject checks a property record before submission: street
// shape, positive numerics and resolvable catalog references.
func ValidateREObject(req *dto.REObjectRequest) error {
	if req.Street == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "street is required", nil)
	}
	if !streetRegex.MatchString(req.Street) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "street contains invalid characters", nil)
	}
	if req.Building <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "building number must be positive", nil)
	}
	if req.RoomNum != nil && *req.RoomNum <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "unit number must be positive", nil)
	}
	if req.Rooms <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "room count must be positive", nil)
	}
	if req.Floors <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "floor count must be positive", nil)
	}
	if req.Square <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "area must be positive", nil)
	}
	if req.Price <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "price must be positive", nil)
	}
	if req.DealTypeID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "deal type is required", nil)
	}
	if req.ObjectTypeID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "object type is required", nil)
	}
	if req.StatusID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "status is required", nil)
	}
	return nil
}

// ValidateReservation checks a booking request.
func ValidateReservation(req *dto.ReservationRequest) error {
	if req.ObjectID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "object id is required", nil)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return errors.NewAppError(errors.ErrCodeValidation, "end date must not precede start date", nil)
	}
	return nil
}

// ValidateContract checks a contract creation request.
func ValidateContract(req *dto.ContractRequest) error {
	if req.ReservationID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "reservation id is required", nil)
	}
	return nil
}

// ValidatePhone checks the phone filter format: digits, optional
// leading plus, 10 or 11 digits.
func ValidatePhone(phone string) error {
	phoneRegex := regexp.MustCompile(`^\+?[0-9]{10,11}$`)
	if !phoneRegex.MatchString(phone) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid phone number", nil)
	}
	return nil
}

// ValidatePassword enforces the minimum the identity service accepts.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "password must have at least 6 characters", nil)
	}
	return nil
}
