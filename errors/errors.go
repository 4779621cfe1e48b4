package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists   ErrorCode = "USER_EXISTS"
	ErrCodeInvalidRole  ErrorCode = "INVALID_ROLE"

	// Booking errors
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrCodeInvalidState    ErrorCode = "INVALID_STATE"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeRoomUnavailable ErrorCode = "ROOM_UNAVAILABLE"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra error có mang mã lỗi tương ứng không
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	// Booking errors
	ErrBookingNotFound       = errors.New("booking not found")
	ErrBookingCancelled      = errors.New("booking already cancelled")
	ErrBookingCompleted      = errors.New("booking already completed")
	ErrBookingConfirmed      = errors.New("booking already confirmed")
	ErrBookingNotConfirmed   = errors.New("cannot complete a pending booking")
	ErrCancelCompleted       = errors.New("cannot cancel a completed booking")
	ErrConfirmCancelled      = errors.New("cannot confirm a cancelled booking")
	ErrConfirmCompleted      = errors.New("cannot confirm a completed booking")
	ErrCompleteCancelled     = errors.New("cannot complete a cancelled booking")
	ErrCancellationReasonReq = errors.New("cancellation reason is required")

	// Room errors
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrRoomUnavailable  = errors.New("room type is fully booked for the requested dates")
	ErrRoomTypeInUse    = errors.New("room type has active bookings")

	// Validation errors
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
	ErrInvalidInput     = errors.New("invalid input")
)
