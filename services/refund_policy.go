package services

import (
	"strings"
	"time"

	"bookstay/constants"
	"bookstay/errors"
	"bookstay/models"
)

// RefundTier một bậc hoàn tiền theo số giờ còn lại trước check-in
type RefundTier struct {
	MinHours   float64 `json:"minHours"`
	Percentage int     `json:"percentage"`
}

// RefundTiers bảng bậc hoàn tiền cho khách hủy, sắp xếp giảm dần theo MinHours.
// Đây là nguồn chân lý duy nhất, client chỉ dùng để preview.
var RefundTiers = []RefundTier{
	{MinHours: 168, Percentage: 100}, // >= 7 ngày
	{MinHours: 72, Percentage: 50},   // >= 3 ngày
	{MinHours: 24, Percentage: 25},   // >= 1 ngày
}

// RefundResult kết quả tính hoàn tiền
type RefundResult struct {
	Percentage int     `json:"refundPercentage"`
	Amount     float64 `json:"refundAmount"`
}

// CustomerRefundPercentage phần trăm hoàn tiền khi khách hủy.
// hoursUntilCheckIn âm (đã qua giờ check-in) rơi vào bậc 0%.
func CustomerRefundPercentage(hoursUntilCheckIn float64) int {
	for _, tier := range RefundTiers {
		if hoursUntilCheckIn >= tier.MinHours {
			return tier.Percentage
		}
	}
	return 0
}

// ComputeCustomerRefund tính hoàn tiền khi khách tự hủy booking.
// Booking chưa thanh toán thì không hoàn, phần trăm chỉ mang tính thông tin.
func ComputeCustomerRefund(booking *models.Booking, now time.Time) RefundResult {
	hours := booking.CheckInDate.Sub(now).Hours()
	percentage := CustomerRefundPercentage(hours)

	result := RefundResult{Percentage: percentage}
	if booking.IsPaid {
		result.Amount = booking.TotalPrice * float64(percentage) / 100
	}
	return result
}

// ComputeOwnerRefund tính hoàn tiền khi chủ khách sạn hủy booking.
// Chủ đơn phương hủy nên luôn hoàn 100% nếu đã thanh toán, và bắt buộc có lý do.
func ComputeOwnerRefund(booking *models.Booking, reason string) (RefundResult, error) {
	if strings.TrimSpace(reason) == "" {
		return RefundResult{}, errors.NewAppError(errors.ErrCodeInvalidArgument, "Lý do hủy không được để trống", errors.ErrCancellationReasonReq)
	}

	result := RefundResult{Percentage: 100}
	if booking.IsPaid {
		result.Amount = booking.TotalPrice
	}
	return result, nil
}

// ComputeRefund chọn luật hoàn tiền theo vai trò người hủy
func ComputeRefund(booking *models.Booking, actorRole int, reason string, now time.Time) (RefundResult, error) {
	if actorRole == constants.RoleCustomer {
		return ComputeCustomerRefund(booking, now), nil
	}
	return ComputeOwnerRefund(booking, reason)
}
