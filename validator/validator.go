package validator

import (
	"regexp"
	"strings"
	"time"

	"bookstay/dto"
	"bookstay/errors"
	"bookstay/models"

	validate "github.com/go-playground/validator/v10"
)

// DateLayout định dạng ngày trong request, dd/mm/yyyy
const DateLayout = "02/01/2006"

var structValidator = validate.New()

// ValidateStruct chạy các rule khai báo trên tag của struct
func ValidateStruct(s interface{}) error {
	if err := structValidator.Struct(s); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Dữ liệu không hợp lệ", err)
	}
	return nil
}

// ValidateUser validate thông tin user
func ValidateUser(user *models.User) error {
	if user.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email không được để trống", nil)
	}

	if !isValidEmail(user.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Email không hợp lệ", nil)
	}

	if user.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Mật khẩu không được để trống", nil)
	}

	if len(user.Password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "Mật khẩu phải có ít nhất 6 ký tự", nil)
	}

	if user.PhoneNumber == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Số điện thoại không được để trống", nil)
	}

	if !isValidPhone(user.PhoneNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Số điện thoại không hợp lệ", nil)
	}

	if user.Role < 0 || user.Role > 3 {
		return errors.NewAppError(errors.ErrCodeInvalidRole, "Role không hợp lệ", nil)
	}

	return nil
}

// ValidateRoomType validate thông tin loại phòng
func ValidateRoomType(roomType *models.RoomType) error {
	if roomType.Label == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên loại phòng không được để trống", nil)
	}

	if roomType.Price < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Giá không được âm", nil)
	}

	if roomType.Discount < 0 || roomType.Discount > 100 {
		return errors.NewAppError(errors.ErrCodeValidation, "Giảm giá phải trong khoảng 0-100", nil)
	}

	if roomType.TotalUnits <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Số lượng phòng phải lớn hơn 0", nil)
	}

	return nil
}

// ParseBookingDates parse và kiểm tra khoảng ngày của request booking
func ParseBookingDates(req *dto.CreateBookingRequest) (time.Time, time.Time, error) {
	checkIn, err := time.Parse(DateLayout, req.CheckInDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày nhận phòng không hợp lệ", err)
	}

	checkOut, err := time.Parse(DateLayout, req.CheckOutDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày trả phòng không hợp lệ", err)
	}

	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidArgument, "Ngày trả phòng phải sau ngày nhận phòng", errors.ErrInvalidDateRange)
	}

	return checkIn, checkOut, nil
}

// ValidateOwnerCancellationReason lý do bắt buộc khi chủ khách sạn hủy đơn
func ValidateOwnerCancellationReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errors.NewAppError(errors.ErrCodeInvalidArgument, "Lý do hủy không được để trống", errors.ErrCancellationReasonReq)
	}
	return nil
}

// isValidEmail kiểm tra email hợp lệ
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// isValidPhone kiểm tra số điện thoại hợp lệ
func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^[0-9]{10}$`)
	return phoneRegex.MatchString(phone)
}
