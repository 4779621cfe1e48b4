package validator

import (
	"testing"
	"time"

	"bookstay/dto"
	"bookstay/errors"
	"bookstay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingDates(t *testing.T) {
	t.Run("parse đúng định dạng dd/mm/yyyy", func(t *testing.T) {
		req := &dto.CreateBookingRequest{CheckInDate: "05/12/2026", CheckOutDate: "08/12/2026"}
		checkIn, checkOut, err := ParseBookingDates(req)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 12, 5, 0, 0, 0, 0, time.UTC), checkIn)
		assert.Equal(t, time.Date(2026, 12, 8, 0, 0, 0, 0, time.UTC), checkOut)
	})

	t.Run("định dạng sai bị từ chối", func(t *testing.T) {
		req := &dto.CreateBookingRequest{CheckInDate: "2026-12-05", CheckOutDate: "08/12/2026"}
		_, _, err := ParseBookingDates(req)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFormat))
	})

	t.Run("ngày trả phòng phải sau ngày nhận phòng", func(t *testing.T) {
		req := &dto.CreateBookingRequest{CheckInDate: "08/12/2026", CheckOutDate: "05/12/2026"}
		_, _, err := ParseBookingDates(req)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))

		req = &dto.CreateBookingRequest{CheckInDate: "05/12/2026", CheckOutDate: "05/12/2026"}
		_, _, err = ParseBookingDates(req)
		require.Error(t, err)
	})
}

func TestValidateUser(t *testing.T) {
	valid := models.User{Email: "user@test.vn", Password: "secret123", PhoneNumber: "0901234567"}
	assert.NoError(t, ValidateUser(&valid))

	tests := []struct {
		name string
		user models.User
		code errors.ErrorCode
	}{
		{"thiếu email", models.User{Password: "secret123", PhoneNumber: "0901234567"}, errors.ErrCodeRequiredField},
		{"email sai định dạng", models.User{Email: "not-an-email", Password: "secret123", PhoneNumber: "0901234567"}, errors.ErrCodeInvalidFormat},
		{"mật khẩu ngắn", models.User{Email: "user@test.vn", Password: "123", PhoneNumber: "0901234567"}, errors.ErrCodeValidation},
		{"số điện thoại sai", models.User{Email: "user@test.vn", Password: "secret123", PhoneNumber: "12ab"}, errors.ErrCodeInvalidFormat},
		{"role không hợp lệ", models.User{Email: "user@test.vn", Password: "secret123", PhoneNumber: "0901234567", Role: 9}, errors.ErrCodeInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUser(&tt.user)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code))
		})
	}
}

func TestValidateRoomType(t *testing.T) {
	valid := models.RoomType{Label: "Deluxe", Price: 1000000, TotalUnits: 3}
	assert.NoError(t, ValidateRoomType(&valid))

	invalid := models.RoomType{Label: "", Price: 1000000, TotalUnits: 3}
	assert.Error(t, ValidateRoomType(&invalid))

	invalid = models.RoomType{Label: "Deluxe", Price: -1, TotalUnits: 3}
	assert.Error(t, ValidateRoomType(&invalid))

	invalid = models.RoomType{Label: "Deluxe", Price: 1000000, TotalUnits: 0}
	assert.Error(t, ValidateRoomType(&invalid))

	invalid = models.RoomType{Label: "Deluxe", Price: 1000000, TotalUnits: 3, Discount: 120}
	assert.Error(t, ValidateRoomType(&invalid))
}

func TestValidateOwnerCancellationReason(t *testing.T) {
	assert.NoError(t, ValidateOwnerCancellationReason("Khách sạn bảo trì"))
	assert.Error(t, ValidateOwnerCancellationReason(""))
	assert.Error(t, ValidateOwnerCancellationReason("   "))
}
