package services

import (
	"testing"
	"time"

	"bookstay/builders"
	"bookstay/constants"
	"bookstay/dto"
	"bookstay/errors"
	"bookstay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.RoomType{},
		&models.Booking{},
		&models.Payment{},
		&models.Notification{},
	))
	return db
}

type testFixture struct {
	db       *gorm.DB
	owner    models.User
	customer models.User
	hotel    models.Hotel
	roomType models.RoomType
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	db := setupTestDB(t)

	owner := models.User{Name: "Chủ khách sạn", Email: "owner@test.vn", PhoneNumber: "0901000001", Role: constants.RoleOwner}
	require.NoError(t, db.Create(&owner).Error)

	customer := models.User{Name: "Khách", Email: "guest@test.vn", PhoneNumber: "0901000002", Role: constants.RoleCustomer}
	require.NoError(t, db.Create(&customer).Error)

	hotel := models.Hotel{UserID: owner.ID, Name: "Khách sạn Biển Xanh", Address: "1 Trần Phú", Province: "Khánh Hòa"}
	require.NoError(t, db.Create(&hotel).Error)

	roomType := models.RoomType{
		HotelID:    hotel.ID,
		Label:      "Deluxe",
		Price:      1000000,
		Discount:   0,
		TotalUnits: 2,
		MaxGuests:  3,
		Active:     true,
	}
	require.NoError(t, db.Create(&roomType).Error)

	return &testFixture{db: db, owner: owner, customer: customer, hotel: hotel, roomType: roomType}
}

func (f *testFixture) service() *BookingService {
	return NewBookingService(f.db, nil)
}

func (f *testFixture) createParams(checkIn, checkOut time.Time) *dto.CreateBookingParams {
	return &dto.CreateBookingParams{
		UserID:       &f.customer.ID,
		ActorID:      f.customer.ID,
		HotelID:      f.hotel.ID,
		RoomTypeID:   f.roomType.ID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       2,
	}
}

func futureDate(days int) time.Time {
	return time.Now().Truncate(24 * time.Hour).AddDate(0, 0, days)
}

func TestCreateBooking(t *testing.T) {
	f := newTestFixture(t)
	svc := f.service()

	t.Run("tạo booking pending và tính giá theo số đêm", func(t *testing.T) {
		booking, err := svc.CreateBooking(f.createParams(futureDate(10), futureDate(13)))
		require.NoError(t, err)

		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.Equal(t, 3, booking.Nights())
		assert.Equal(t, 3000000.0, booking.TotalPrice)
		assert.False(t, booking.IsPaid)
	})

	t.Run("ngày trả phòng phải sau ngày nhận phòng", func(t *testing.T) {
		_, err := svc.CreateBooking(f.createParams(futureDate(10), futureDate(10)))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))
	})

	t.Run("không đặt được ngày trong quá khứ", func(t *testing.T) {
		_, err := svc.CreateBooking(f.createParams(futureDate(-2), futureDate(3)))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))
	})

	t.Run("số khách vượt sức chứa loại phòng", func(t *testing.T) {
		params := f.createParams(futureDate(20), futureDate(22))
		params.Guests = 5
		_, err := svc.CreateBooking(params)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))
	})

	t.Run("loại phòng không tồn tại", func(t *testing.T) {
		params := f.createParams(futureDate(20), futureDate(22))
		params.RoomTypeID = 999
		params.HotelID = 0
		_, err := svc.CreateBooking(params)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	})

	t.Run("giảm giá được trừ vào giá mỗi đêm", func(t *testing.T) {
		discounted := models.RoomType{
			HotelID: f.hotel.ID, Label: "Suite", Price: 2000000, Discount: 25,
			TotalUnits: 1, MaxGuests: 4, Active: true,
		}
		require.NoError(t, f.db.Create(&discounted).Error)

		params := f.createParams(futureDate(30), futureDate(32))
		params.RoomTypeID = discounted.ID
		booking, err := svc.CreateBooking(params)
		require.NoError(t, err)
		assert.Equal(t, 3000000.0, booking.TotalPrice)
	})
}

func TestCreateBookingCapacity(t *testing.T) {
	f := newTestFixture(t)
	svc := f.service()

	checkIn := futureDate(10)
	checkOut := futureDate(13)

	// Lấp đầy cả 2 đơn vị phòng
	for i := 0; i < 2; i++ {
		_, err := svc.CreateBooking(f.createParams(checkIn, checkOut))
		require.NoError(t, err)
	}

	t.Run("hết phòng khi giao với khoảng đã đặt", func(t *testing.T) {
		_, err := svc.CreateBooking(f.createParams(futureDate(12), futureDate(14)))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeRoomUnavailable))
	})

	t.Run("đặt được khi check-in đúng ngày check-out cũ", func(t *testing.T) {
		// Khoảng nửa mở: [10,13) và [13,15) không giao nhau
		booking, err := svc.CreateBooking(f.createParams(futureDate(13), futureDate(15)))
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
	})

	t.Run("booking đã hủy không giữ phòng", func(t *testing.T) {
		var first models.Booking
		require.NoError(t, f.db.Where("check_in_date = ?", checkIn).First(&first).Error)
		require.NoError(t, f.db.Model(&first).Update("status", models.BookingStatusCancelled).Error)

		booking, err := svc.CreateBooking(f.createParams(checkIn, checkOut))
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
	})
}

func TestConfirmBooking(t *testing.T) {
	f := newTestFixture(t)
	svc := f.service()

	booking, err := svc.CreateBooking(f.createParams(futureDate(10), futureDate(12)))
	require.NoError(t, err)

	t.Run("khách không có quyền xác nhận", func(t *testing.T) {
		_, err := svc.ConfirmBooking(booking.ID, f.customer.ID, constants.RoleCustomer, false, 0)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))
	})

	t.Run("chủ khách sạn khác không có quyền", func(t *testing.T) {
		other := models.User{Name: "Chủ khác", Email: "other@test.vn", PhoneNumber: "0901000009", Role: constants.RoleOwner}
		require.NoError(t, f.db.Create(&other).Error)

		_, err := svc.ConfirmBooking(booking.ID, other.ID, constants.RoleOwner, false, 0)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))
	})

	t.Run("chủ xác nhận kèm thanh toán", func(t *testing.T) {
		confirmed, err := svc.ConfirmBooking(booking.ID, f.owner.ID, constants.RoleOwner, true, constants.PaymentMethodBank)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
		assert.True(t, confirmed.IsPaid)

		var payment models.Payment
		require.NoError(t, f.db.Where("booking_id = ?", booking.ID).First(&payment).Error)
		assert.Equal(t, confirmed.TotalPrice, payment.Amount)
		assert.Equal(t, constants.PaymentStatusPaid, payment.Status)
	})

	t.Run("không xác nhận lại booking đã xác nhận", func(t *testing.T) {
		_, err := svc.ConfirmBooking(booking.ID, f.owner.ID, constants.RoleOwner, false, 0)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidState))
	})

	t.Run("lễ tân của chủ được xác nhận", func(t *testing.T) {
		receptionist := models.User{
			Name: "Lễ tân", Email: "reception@test.vn", PhoneNumber: "0901000003",
			Role: constants.RoleReceptionist, OwnerId: &f.owner.ID,
		}
		require.NoError(t, f.db.Create(&receptionist).Error)

		second, err := svc.CreateBooking(f.createParams(futureDate(20), futureDate(22)))
		require.NoError(t, err)

		confirmed, err := svc.ConfirmBooking(second.ID, receptionist.ID, constants.RoleReceptionist, false, 0)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
	})
}

func TestCancelBookingByCustomer(t *testing.T) {
	f := newTestFixture(t)
	svc := f.service()

	// Tạo booking đã thanh toán với số giờ còn lại trước check-in cho trước
	makePaidBooking := func(hoursUntilCheckIn float64) models.Booking {
		checkIn := time.Now().Add(time.Duration(hoursUntilCheckIn * float64(time.Hour)))
		booking := builders.NewBookingBuilder().
			WithUser(f.customer.ID).
			WithRoomType(f.hotel.ID, f.roomType.ID).
			WithDates(checkIn, checkIn.AddDate(0, 0, 2)).
			WithGuests(2).
			WithStatus(models.BookingStatusConfirmed).
			WithPayment(true, constants.PaymentMethodBank).
			WithTotalPrice(2000000).
			Build()
		require.NoError(t, f.db.Create(booking).Error)
		return *booking
	}

	t.Run("hủy trong khung 50%", func(t *testing.T) {
		booking := makePaidBooking(100)
		cancelled, refund, err := svc.CancelBooking(booking.ID, f.customer.ID, constants.RoleCustomer, "Đổi kế hoạch")
		require.NoError(t, err)

		assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
		assert.Equal(t, 50, refund.Percentage)
		assert.Equal(t, 1000000.0, refund.Amount)
		require.NotNil(t, cancelled.CancelledBy)
		assert.Equal(t, constants.CancelledByCustomer, *cancelled.CancelledBy)
		assert.NotNil(t, cancelled.CancelledAt)
	})

	t.Run("hủy sát giờ không được hoàn tiền", func(t *testing.T) {
		booking := makePaidBooking(5)
		_, refund, err := svc.CancelBooking(booking.ID, f.customer.ID, constants.RoleCustomer, "")
		require.NoError(t, err)
		assert.Equal(t, 0, refund.Percentage)
		assert.Equal(t, 0.0, refund.Amount)
	})

	t.Run("khách không hủy được booking của người khác", func(t *testing.T) {
		booking := makePaidBooking(200)
		stranger := models.User{Name: "Người lạ", Email: "stranger@test.vn", PhoneNumber: "0901000008"}
		require.NoError(t, f.db.Create(&stranger).Error)

		_, _, err := svc.CancelBooking(booking.ID, stranger.ID, constants.RoleCustomer, "")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeForbidden))
	})

	t.Run("không hủy được hai lần", func(t *testing.T) {
		booking := makePaidBooking(200)
		_, _, err := svc.CancelBooking(booking.ID, f.customer.ID, constants.RoleCustomer, "")
		require.NoError(t, err)

		_, _, err = svc.CancelBooking(booking.ID, f.customer.ID, constants.RoleCustomer, "")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidState))
	})

	t.Run("booking không tồn tại", func(t *testing.T) {
		_, _, err := svc.CancelBooking(99999, f.customer.ID, constants.RoleCustomer, "")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	})
}

func TestCancelBookingByOwner(t *testing.T) {
	f := newTestFixture(t)
	svc := f.service()

	booking, err := svc.CreateBooking(f.createParams(futureDate(2), futureDate(4)))
	require.NoError(t, err)
	_, err = svc.ConfirmBooking(booking.ID, f.owner.ID, constants.RoleOwner, true, constants.PaymentMethodMomo)
	require.NoError(t, err)

	t.Run("chủ hủy không có lý do bị từ chối", func(t *testing.T) {
		_, _, err := svc.CancelBooking(booking.ID, f.owner.ID, constants.RoleOwner, "  ")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))

		// Booking vẫn giữ nguyên trạng thái
		var unchanged models.Booking
		require.NoError(t, f.db.First(&unchanged, booking.ID).Error)
		assert.Equal(t, models.BookingStatusConfirmed, unchanged.Status)
	})

	t.Run("chủ hủy sát giờ vẫn hoàn 100%", func(t *testing.T) {
		cancelled, refund, err := svc.CancelBooking(booking.ID, f.owner.ID, constants.RoleOwner, "Phòng ngập nước")
		require.NoError(t, err)

		assert.Equal(t, 100, refund.Percentage)
		assert.Equal(t, cancelled.TotalPrice, refund.Amount)
		require.NotNil(t, cancelled.CancelledBy)
		assert.Equal(t, constants.CancelledByOwner, *cancelled.CancelledBy)
		assert.Equal(t, "Phòng ngập nước", cancelled.CancellationReason)

		var payment models.Payment
		require.NoError(t, f.db.Where("booking_id = ?", booking.ID).First(&payment).Error)
		assert.Equal(t, constants.PaymentStatusRefunded, payment.Status)
		assert.Equal(t, refund.Amount, payment.RefundedAmount)
	})

	t.Run("hủy lại booking đã hủy báo sai trạng thái kể cả khi thiếu lý do", func(t *testing.T) {
		_, _, err := svc.CancelBooking(booking.ID, f.owner.ID, constants.RoleOwner, "")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidState))
	})
}

func TestCompleteBooking(t *testing.T) {
	f := newTestFixture(t)
	svc := f.service()

	booking, err := svc.CreateBooking(f.createParams(futureDate(5), futureDate(7)))
	require.NoError(t, err)

	t.Run("không hoàn thành được booking chưa xác nhận", func(t *testing.T) {
		_, err := svc.CompleteBooking(booking.ID, f.owner.ID, constants.RoleOwner)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidState))
	})

	t.Run("hoàn thành booking đã xác nhận", func(t *testing.T) {
		_, err := svc.ConfirmBooking(booking.ID, f.owner.ID, constants.RoleOwner, false, 0)
		require.NoError(t, err)

		completed, err := svc.CompleteBooking(booking.ID, f.owner.ID, constants.RoleOwner)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCompleted, completed.Status)
	})

	t.Run("không hủy được booking đã hoàn thành", func(t *testing.T) {
		_, _, err := svc.CancelBooking(booking.ID, f.customer.ID, constants.RoleCustomer, "")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidState))
	})
}

func TestAutoCompleteDueBookings(t *testing.T) {
	f := newTestFixture(t)
	svc := f.service()

	past := time.Now().AddDate(0, 0, -5)
	due := models.Booking{
		UserID:       &f.customer.ID,
		HotelID:      f.hotel.ID,
		RoomTypeID:   f.roomType.ID,
		CheckInDate:  past,
		CheckOutDate: past.AddDate(0, 0, 2),
		Guests:       2,
		Status:       models.BookingStatusConfirmed,
		TotalPrice:   2000000,
	}
	require.NoError(t, f.db.Create(&due).Error)

	// Booking pending qua hạn không bị tự hoàn thành
	pendingPast := due
	pendingPast.ID = 0
	pendingPast.Status = models.BookingStatusPending
	require.NoError(t, f.db.Create(&pendingPast).Error)

	// Booking confirm còn hạn giữ nguyên
	upcoming := models.Booking{
		UserID:       &f.customer.ID,
		HotelID:      f.hotel.ID,
		RoomTypeID:   f.roomType.ID,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(12),
		Guests:       2,
		Status:       models.BookingStatusConfirmed,
		TotalPrice:   2000000,
	}
	require.NoError(t, f.db.Create(&upcoming).Error)

	completed, err := svc.AutoCompleteDueBookings(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, completed)

	var reloadedDue models.Booking
	require.NoError(t, f.db.First(&reloadedDue, due.ID).Error)
	assert.Equal(t, models.BookingStatusCompleted, reloadedDue.Status)

	var reloadedPending models.Booking
	require.NoError(t, f.db.First(&reloadedPending, pendingPast.ID).Error)
	assert.Equal(t, models.BookingStatusPending, reloadedPending.Status)

	var reloadedUpcoming models.Booking
	require.NoError(t, f.db.First(&reloadedUpcoming, upcoming.ID).Error)
	assert.Equal(t, models.BookingStatusConfirmed, reloadedUpcoming.Status)
}

func TestHasActiveBookings(t *testing.T) {
	f := newTestFixture(t)
	svc := f.service()

	hasActive, err := svc.HasActiveBookings(f.roomType.ID)
	require.NoError(t, err)
	assert.False(t, hasActive)

	booking, err := svc.CreateBooking(f.createParams(futureDate(10), futureDate(12)))
	require.NoError(t, err)

	hasActive, err = svc.HasActiveBookings(f.roomType.ID)
	require.NoError(t, err)
	assert.True(t, hasActive)

	_, _, err = svc.CancelBooking(booking.ID, f.customer.ID, constants.RoleCustomer, "")
	require.NoError(t, err)

	hasActive, err = svc.HasActiveBookings(f.roomType.ID)
	require.NoError(t, err)
	assert.False(t, hasActive)
}
