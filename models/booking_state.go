package models

import "bookstay/errors"

// BookingState định nghĩa interface cho các trạng thái booking
type BookingState interface {
	Confirm(booking *Booking) error
	Cancel(booking *Booking) error
	Complete(booking *Booking) error
}

// PendingState trạng thái chờ xác nhận
type PendingState struct{}

func (s *PendingState) Confirm(booking *Booking) error {
	booking.Status = BookingStatusConfirmed
	return nil
}

func (s *PendingState) Cancel(booking *Booking) error {
	booking.Status = BookingStatusCancelled
	return nil
}

func (s *PendingState) Complete(booking *Booking) error {
	return errors.ErrBookingNotConfirmed
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(booking *Booking) error {
	return errors.ErrBookingConfirmed
}

func (s *ConfirmedState) Cancel(booking *Booking) error {
	booking.Status = BookingStatusCancelled
	return nil
}

func (s *ConfirmedState) Complete(booking *Booking) error {
	booking.Status = BookingStatusCompleted
	return nil
}

// CompletedState trạng thái hoàn thành
type CompletedState struct{}

func (s *CompletedState) Confirm(booking *Booking) error {
	return errors.ErrConfirmCompleted
}

func (s *CompletedState) Cancel(booking *Booking) error {
	return errors.ErrCancelCompleted
}

func (s *CompletedState) Complete(booking *Booking) error {
	return errors.ErrBookingCompleted
}

// CancelledState trạng thái đã hủy
type CancelledState struct{}

func (s *CancelledState) Confirm(booking *Booking) error {
	return errors.ErrConfirmCancelled
}

func (s *CancelledState) Cancel(booking *Booking) error {
	return errors.ErrBookingCancelled
}

func (s *CancelledState) Complete(booking *Booking) error {
	return errors.ErrCompleteCancelled
}

// GetBookingState trả về state tương ứng với trạng thái booking
func GetBookingState(status int) BookingState {
	switch status {
	case BookingStatusPending:
		return &PendingState{}
	case BookingStatusConfirmed:
		return &ConfirmedState{}
	case BookingStatusCompleted:
		return &CompletedState{}
	case BookingStatusCancelled:
		return &CancelledState{}
	default:
		return &PendingState{}
	}
}
