package controllers

import (
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"bookstay/config"
	"bookstay/constants"
	"bookstay/dto"
	"bookstay/models"
	"bookstay/response"
	"bookstay/services"
	"bookstay/services/notification"
	"bookstay/validator"

	"github.com/gin-gonic/gin"
)

var bookingNotifier *notification.Dispatcher

// SetBookingNotifier thiết lập dispatcher cho các controller booking
func SetBookingNotifier(d *notification.Dispatcher) {
	bookingNotifier = d
}

func bookingService() *services.BookingService {
	return services.NewBookingService(config.DB, bookingNotifier)
}

// currentUser lấy userID và role từ Authorization header
func currentUser(c *gin.Context) (uint, int, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return 0, 0, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	userID, userRole, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return 0, 0, false
	}
	return userID, userRole, true
}

func convertToBookingHotelResponse(hotel models.Hotel) dto.BookingHotelResponse {
	return dto.BookingHotelResponse{
		ID:       hotel.ID,
		Name:     hotel.Name,
		Address:  hotel.Address,
		Ward:     hotel.Ward,
		District: hotel.District,
		Province: hotel.Province,
		Avatar:   hotel.Avatar,
	}
}

func convertToBookingRoomTypeResponse(roomType models.RoomType) dto.BookingRoomTypeResponse {
	return dto.BookingRoomTypeResponse{
		ID:       roomType.ID,
		HotelID:  roomType.HotelID,
		Label:    roomType.Label,
		Price:    roomType.Price,
		Discount: roomType.Discount,
	}
}

func buildBookingResponse(booking *models.Booking) dto.BookingResponse {
	var user dto.ActorResponse
	if booking.UserID != nil && booking.User != nil {
		user = dto.ActorResponse{Name: booking.User.Name, Email: booking.User.Email, PhoneNumber: booking.User.PhoneNumber}
	} else {
		user = dto.ActorResponse{Name: booking.GuestName, Email: booking.GuestEmail, PhoneNumber: booking.GuestPhone}
	}

	return dto.BookingResponse{
		ID:                 booking.ID,
		User:               user,
		Hotel:              convertToBookingHotelResponse(booking.Hotel),
		RoomType:           convertToBookingRoomTypeResponse(booking.RoomType),
		CheckInDate:        booking.CheckInDate.Format(validator.DateLayout),
		CheckOutDate:       booking.CheckOutDate.Format(validator.DateLayout),
		Guests:             booking.Guests,
		Status:             booking.Status,
		IsPaid:             booking.IsPaid,
		PaymentMethod:      booking.PaymentMethod,
		TotalPrice:         booking.TotalPrice,
		CancellationReason: booking.CancellationReason,
		RefundPercentage:   booking.RefundPercentage,
		RefundAmount:       booking.RefundAmount,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}
}

// invalidateBookingCache xóa các cache liên quan đến booking sau khi ghi
func invalidateBookingCache(userID uint) {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return
	}
	_ = services.DeleteFromRedis(config.Ctx, rdb, "bookings:all")
	_ = services.DeleteFromRedis(config.Ctx, rdb, fmt.Sprintf("bookings:all:user:%d", userID))
	_ = services.DeleteKeysByPattern(config.Ctx, rdb, "hotels:search:*")
}

func GetBookings(c *gin.Context) {
	currentUserID, currentUserRole, ok := currentUser(c)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("bookings:all:user:%d", currentUserID)
	rdb, err := config.ConnectRedis()
	if err != nil {
		response.ServerError(c)
		return
	}

	var allBookings []models.Booking

	// Lấy dữ liệu từ Redis Cache
	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &allBookings); err != nil || len(allBookings) == 0 {
		// Nếu không có cache hoặc Redis gặp lỗi, thực hiện truy vấn từ DB
		baseTx := config.DB.Model(&models.Booking{}).
			Preload("Hotel").
			Preload("RoomType").
			Preload("User")

		// Áp dụng quyền truy cập
		switch currentUserRole {
		case constants.RoleCustomer:
			baseTx = baseTx.Where("bookings.user_id = ?", currentUserID)
		case constants.RoleOwner:
			baseTx = baseTx.Where("bookings.hotel_id IN (?)",
				config.DB.Model(&models.Hotel{}).Select("id").Where("user_id = ?", currentUserID))
		case constants.RoleReceptionist:
			var ownerID int
			if err := config.DB.Model(&models.User{}).Select("owner_id").Where("id = ?", currentUserID).Scan(&ownerID).Error; err != nil || ownerID == 0 {
				response.Forbidden(c)
				return
			}
			baseTx = baseTx.Where("bookings.hotel_id IN (?)",
				config.DB.Model(&models.Hotel{}).Select("id").Where("user_id = ?", ownerID))
		}

		if err := baseTx.Find(&allBookings).Error; err != nil {
			response.ServerError(c)
			return
		}

		// Lưu vào Redis Cache
		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, allBookings, 10*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu danh sách booking vào Redis: %v", err)
		}
	}

	// Lấy các tham số filter từ query
	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	nameFilter := c.Query("name")
	phoneStr := c.Query("phoneNumber")
	statusFilter := c.Query("status")

	page := 0
	limit := 10
	if pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	// Áp dụng bộ lọc
	filteredBookings := make([]models.Booking, 0)
	for _, booking := range allBookings {
		if nameFilter != "" {
			decodedName, _ := url.QueryUnescape(nameFilter)
			if !strings.Contains(strings.ToLower(booking.Hotel.Name), strings.ToLower(decodedName)) {
				continue
			}
		}
		if phoneStr != "" {
			if booking.User != nil && !strings.Contains(strings.ToLower(booking.User.PhoneNumber), strings.ToLower(phoneStr)) {
				continue
			}
			if booking.User == nil && !strings.Contains(strings.ToLower(booking.GuestPhone), strings.ToLower(phoneStr)) {
				continue
			}
		}
		if statusFilter != "" {
			parsedStatusFilter, err := strconv.Atoi(statusFilter)
			if err == nil && booking.Status != parsedStatusFilter {
				continue
			}
		}
		filteredBookings = append(filteredBookings, booking)
	}

	totalFiltered := len(filteredBookings)

	//Xếp theo update mới nhất
	sort.Slice(filteredBookings, func(i, j int) bool {
		return filteredBookings[i].UpdatedAt.After(filteredBookings[j].UpdatedAt)
	})

	// Áp dụng phân trang
	start := page * limit
	end := start + limit
	if start >= totalFiltered {
		filteredBookings = []models.Booking{}
	} else if end > totalFiltered {
		filteredBookings = filteredBookings[start:]
	} else {
		filteredBookings = filteredBookings[start:end]
	}

	bookingResponses := make([]dto.BookingResponse, 0, len(filteredBookings))
	for i := range filteredBookings {
		bookingResponses = append(bookingResponses, buildBookingResponse(&filteredBookings[i]))
	}

	response.SuccessWithPagination(c, bookingResponses, page, limit, totalFiltered)
}

func CreateBooking(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")

	var request dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var currentUserID uint
	var userId *uint

	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, _, err := services.GetUserIDFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		currentUserID = userID
		userId = &userID
	} else if request.UserID != 0 {
		var userInfo models.User
		if err := config.DB.First(&userInfo, request.UserID).Error; err != nil {
			response.NotFound(c)
			return
		}
		currentUserID = userInfo.ID
		userId = &userInfo.ID
	} else {
		// Khách vãng lai: nhận diện theo số điện thoại nếu đã có tài khoản
		var userInfo models.User
		if err := config.DB.Where("phone_number = ?", request.GuestPhone).First(&userInfo).Error; err == nil {
			userId = &userInfo.ID
			currentUserID = userInfo.ID
		}
	}

	checkIn, checkOut, err := validator.ParseBookingDates(&request)
	if err != nil {
		response.FromError(c, err)
		return
	}

	params := &dto.CreateBookingParams{
		UserID:        userId,
		ActorID:       currentUserID,
		HotelID:       request.HotelID,
		RoomTypeID:    request.RoomTypeID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Guests:        request.Guests,
		PaymentMethod: request.PaymentMethod,
		GuestName:     request.GuestName,
		GuestEmail:    request.GuestEmail,
		GuestPhone:    request.GuestPhone,
	}

	booking, err := bookingService().CreateBooking(params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if booking.UserID != nil {
		if err := config.DB.Preload("User").First(booking, booking.ID).Error; err != nil {
			response.ServerError(c)
			return
		}
	}

	invalidateBookingCache(currentUserID)

	response.Success(c, buildBookingResponse(booking))
}

func GetBookingDetail(c *gin.Context) {
	bookingId := c.Param("id")

	var booking models.Booking
	if err := config.DB.Preload("User").
		Preload("Hotel").
		Preload("RoomType").
		Where("id = ?", bookingId).
		First(&booking).Error; err != nil {
		response.NotFound(c)
		return
	}

	resp := buildBookingResponse(&booking)

	if booking.IsPaid {
		var payment models.Payment
		if err := config.DB.Where("booking_id = ?", booking.ID).First(&payment).Error; err == nil {
			resp.PaymentCode = payment.PaymentCode
		}
	}

	response.Success(c, resp)
}

func ConfirmBooking(c *gin.Context) {
	currentUserID, currentUserRole, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	booking, err := bookingService().ConfirmBooking(req.ID, currentUserID, currentUserRole, req.Paid, req.PaymentMethod)
	if err != nil {
		response.FromError(c, err)
		return
	}

	invalidateBookingCache(currentUserID)

	response.Success(c, buildBookingResponse(booking))
}

func CancelBooking(c *gin.Context) {
	currentUserID, currentUserRole, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	booking, refund, err := bookingService().CancelBooking(req.ID, currentUserID, currentUserRole, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}

	invalidateBookingCache(currentUserID)

	response.Success(c, dto.CancelBookingResponse{
		Booking:          buildBookingResponse(booking),
		RefundPercentage: refund.Percentage,
		RefundAmount:     refund.Amount,
	})
}

func CompleteBooking(c *gin.Context) {
	currentUserID, currentUserRole, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CompleteBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	booking, err := bookingService().CompleteBooking(req.ID, currentUserID, currentUserRole)
	if err != nil {
		response.FromError(c, err)
		return
	}

	invalidateBookingCache(currentUserID)

	response.Success(c, buildBookingResponse(booking))
}

// GetRefundPreview trả về mức hoàn tiền ước tính nếu khách hủy ngay bây giờ.
// Chỉ để hiển thị, kết quả tính tại thời điểm hủy mới là kết quả cuối cùng.
func GetRefundPreview(c *gin.Context) {
	currentUserID, _, ok := currentUser(c)
	if !ok {
		return
	}

	bookingId := c.Param("id")
	var booking models.Booking
	if err := config.DB.Where("id = ?", bookingId).First(&booking).Error; err != nil {
		response.NotFound(c)
		return
	}

	if booking.UserID == nil || *booking.UserID != currentUserID {
		response.Forbidden(c)
		return
	}

	now := time.Now()
	refund := services.ComputeCustomerRefund(&booking, now)

	response.Success(c, dto.RefundPreviewResponse{
		HoursUntilCheckIn: booking.CheckInDate.Sub(now).Hours(),
		RefundPercentage:  refund.Percentage,
		RefundAmount:      refund.Amount,
	})
}

func GetBookingsByUserId(c *gin.Context) {
	currentUserID, _, ok := currentUser(c)
	if !ok {
		return
	}

	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	page := 0
	limit := 10

	if pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	var totalBookings int64
	if err := config.DB.Model(&models.Booking{}).Where("user_id = ?", currentUserID).Count(&totalBookings).Error; err != nil {
		response.ServerError(c)
		return
	}

	var bookings []models.Booking
	result := config.DB.Preload("User").
		Preload("Hotel").
		Preload("RoomType").
		Where("user_id = ?", currentUserID).
		Order("created_at DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&bookings)

	if result.Error != nil {
		response.ServerError(c)
		return
	}

	bookingResponses := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		resp := buildBookingResponse(&bookings[i])

		if bookings[i].IsPaid {
			var payment models.Payment
			if err := config.DB.Where("booking_id = ?", bookings[i].ID).First(&payment).Error; err == nil {
				resp.PaymentCode = payment.PaymentCode
			}
		}
		bookingResponses = append(bookingResponses, resp)
	}

	response.SuccessWithPagination(c, bookingResponses, page, limit, int(totalBookings))
}
