package services

import (
	"testing"
	"time"

	"bookstay/constants"
	"bookstay/errors"
	"bookstay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRefundPercentage(t *testing.T) {
	tests := []struct {
		name     string
		hours    float64
		expected int
	}{
		{"hơn 7 ngày", 200, 100},
		{"đúng 168 giờ", 168, 100},
		{"dưới 168 giờ", 167.99, 50},
		{"đúng 72 giờ", 72, 50},
		{"dưới 72 giờ", 71.99, 25},
		{"đúng 24 giờ", 24, 25},
		{"dưới 24 giờ", 23.99, 0},
		{"sát giờ nhận phòng", 0.5, 0},
		{"đã qua giờ nhận phòng", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CustomerRefundPercentage(tt.hours))
		})
	}
}

func TestComputeCustomerRefund(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("đã thanh toán, hủy sớm hơn 7 ngày", func(t *testing.T) {
		booking := &models.Booking{
			CheckInDate: now.Add(170 * time.Hour),
			TotalPrice:  2000000,
			IsPaid:      true,
		}
		result := ComputeCustomerRefund(booking, now)
		assert.Equal(t, 100, result.Percentage)
		assert.Equal(t, 2000000.0, result.Amount)
	})

	t.Run("đã thanh toán, hủy trong khung 50%", func(t *testing.T) {
		booking := &models.Booking{
			CheckInDate: now.Add(100 * time.Hour),
			TotalPrice:  2000000,
			IsPaid:      true,
		}
		result := ComputeCustomerRefund(booking, now)
		assert.Equal(t, 50, result.Percentage)
		assert.Equal(t, 1000000.0, result.Amount)
	})

	t.Run("chưa thanh toán thì không hoàn tiền", func(t *testing.T) {
		booking := &models.Booking{
			CheckInDate: now.Add(300 * time.Hour),
			TotalPrice:  2000000,
			IsPaid:      false,
		}
		result := ComputeCustomerRefund(booking, now)
		assert.Equal(t, 100, result.Percentage)
		assert.Equal(t, 0.0, result.Amount)
	})

	t.Run("hủy muộn thì không hoàn tiền dù đã thanh toán", func(t *testing.T) {
		booking := &models.Booking{
			CheckInDate: now.Add(3 * time.Hour),
			TotalPrice:  2000000,
			IsPaid:      true,
		}
		result := ComputeCustomerRefund(booking, now)
		assert.Equal(t, 0, result.Percentage)
		assert.Equal(t, 0.0, result.Amount)
	})
}

// Phần trăm hoàn tiền không bao giờ tăng khi thời điểm hủy tiến gần check-in
func TestCustomerRefundMonotonic(t *testing.T) {
	prev := 100
	for hours := 400.0; hours >= -48; hours -= 0.5 {
		current := CustomerRefundPercentage(hours)
		assert.LessOrEqual(t, current, prev, "hoàn tiền tăng khi còn %v giờ", hours)
		prev = current
	}
}

func TestComputeOwnerRefund(t *testing.T) {
	booking := &models.Booking{
		TotalPrice: 3000000,
		IsPaid:     true,
	}

	t.Run("chủ hủy phải có lý do", func(t *testing.T) {
		_, err := ComputeOwnerRefund(booking, "")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))

		_, err = ComputeOwnerRefund(booking, "   ")
		require.Error(t, err)
	})

	t.Run("chủ hủy hoàn 100% nếu đã thanh toán", func(t *testing.T) {
		result, err := ComputeOwnerRefund(booking, "Khách sạn sửa chữa đột xuất")
		require.NoError(t, err)
		assert.Equal(t, 100, result.Percentage)
		assert.Equal(t, 3000000.0, result.Amount)
	})

	t.Run("chưa thanh toán thì không có tiền để hoàn", func(t *testing.T) {
		unpaid := &models.Booking{TotalPrice: 3000000, IsPaid: false}
		result, err := ComputeOwnerRefund(unpaid, "Khách sạn sửa chữa đột xuất")
		require.NoError(t, err)
		assert.Equal(t, 100, result.Percentage)
		assert.Equal(t, 0.0, result.Amount)
	})
}

func TestComputeRefundByRole(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	booking := &models.Booking{
		CheckInDate: now.Add(30 * time.Hour),
		TotalPrice:  1000000,
		IsPaid:      true,
	}

	// Khách hủy rơi vào bậc 25%
	customerResult, err := ComputeRefund(booking, constants.RoleCustomer, "", now)
	require.NoError(t, err)
	assert.Equal(t, 25, customerResult.Percentage)
	assert.Equal(t, 250000.0, customerResult.Amount)

	// Chủ hủy cùng thời điểm vẫn hoàn 100%
	ownerResult, err := ComputeRefund(booking, constants.RoleOwner, "Phòng hỏng điều hòa", now)
	require.NoError(t, err)
	assert.Equal(t, 100, ownerResult.Percentage)
	assert.Equal(t, 1000000.0, ownerResult.Amount)
}
