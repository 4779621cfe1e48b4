package controllers

import (
	"strconv"
	"time"

	"bookstay/config"
	"bookstay/constants"
	"bookstay/dto"
	"bookstay/errors"
	"bookstay/models"
	"bookstay/response"
	"bookstay/services"
	"bookstay/validator"

	"github.com/gin-gonic/gin"
)

func convertToRoomTypeResponse(roomType *models.RoomType) dto.RoomTypeResponse {
	return dto.RoomTypeResponse{
		ID:          roomType.ID,
		HotelID:     roomType.HotelID,
		Label:       roomType.Label,
		Price:       roomType.Price,
		Discount:    roomType.Discount,
		TotalUnits:  roomType.TotalUnits,
		MaxGuests:   roomType.MaxGuests,
		Active:      roomType.Active,
		Description: roomType.Description,
		Avatar:      roomType.Avatar,
		NumBed:      roomType.NumBed,
		NumTolet:    roomType.NumTolet,
		Acreage:     roomType.Acreage,
		CreatedAt:   roomType.CreatedAt,
		UpdatedAt:   roomType.UpdatedAt,
		Parent: dto.Parents{
			Id:   roomType.Hotel.ID,
			Name: roomType.Hotel.Name,
		},
	}
}

// requireHotelManager kiểm tra quyền quản lý khách sạn của actor hiện tại
func requireHotelManager(c *gin.Context, hotelID uint) (uint, bool) {
	currentUserID, currentUserRole, ok := currentUser(c)
	if !ok {
		return 0, false
	}

	if currentUserRole == constants.RoleSuperAdmin {
		return currentUserID, true
	}

	var hotel models.Hotel
	if err := config.DB.First(&hotel, hotelID).Error; err != nil {
		response.NotFound(c)
		return 0, false
	}

	switch currentUserRole {
	case constants.RoleOwner:
		if hotel.UserID == currentUserID {
			return currentUserID, true
		}
	case constants.RoleReceptionist:
		var actor models.User
		if err := config.DB.First(&actor, currentUserID).Error; err == nil &&
			actor.OwnerId != nil && *actor.OwnerId == hotel.UserID {
			return currentUserID, true
		}
	}

	response.Forbidden(c)
	return 0, false
}

func GetRoomTypesByHotel(c *gin.Context) {
	hotelIdStr := c.Param("id")
	hotelId, err := strconv.ParseUint(hotelIdStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "ID khách sạn không hợp lệ")
		return
	}

	var roomTypes []models.RoomType
	if err := config.DB.Preload("Hotel").
		Where("hotel_id = ? AND active = ?", hotelId, true).
		Order("price ASC").
		Find(&roomTypes).Error; err != nil {
		response.ServerError(c)
		return
	}

	// Nếu truyền khoảng ngày thì gắn kèm số phòng trống
	fromDateStr := c.Query("fromDate")
	toDateStr := c.Query("toDate")
	if fromDateStr != "" && toDateStr != "" {
		checkIn, errIn := time.Parse(validator.DateLayout, fromDateStr)
		checkOut, errOut := time.Parse(validator.DateLayout, toDateStr)
		if errIn != nil || errOut != nil {
			response.BadRequest(c, "Ngày không hợp lệ, định dạng dd/mm/yyyy")
			return
		}
		if err := services.ValidateDateRange(checkIn, checkOut); err != nil {
			response.FromError(c, err)
			return
		}

		annotated, err := services.NewAvailabilityService(config.DB).AnnotateRoomTypes(roomTypes, checkIn, checkOut)
		if err != nil {
			response.ServerError(c)
			return
		}
		response.Success(c, annotated)
		return
	}

	roomTypeResponses := make([]dto.RoomTypeResponse, 0, len(roomTypes))
	for i := range roomTypes {
		roomTypeResponses = append(roomTypeResponses, convertToRoomTypeResponse(&roomTypes[i]))
	}

	response.Success(c, roomTypeResponses)
}

func GetRoomTypeDetail(c *gin.Context) {
	roomTypeId := c.Param("id")

	var roomType models.RoomType
	if err := config.DB.Preload("Hotel").Where("id = ?", roomTypeId).First(&roomType).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, convertToRoomTypeResponse(&roomType))
}

func CreateRoomType(c *gin.Context) {
	var request dto.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if _, ok := requireHotelManager(c, request.HotelID); !ok {
		return
	}

	roomType := models.RoomType{
		HotelID:     request.HotelID,
		Label:       request.Label,
		Price:       request.Price,
		Discount:    request.Discount,
		TotalUnits:  request.TotalUnits,
		MaxGuests:   request.MaxGuests,
		Active:      true,
		Description: request.Description,
		Avatar:      request.Avatar,
		Img:         request.Img,
		NumBed:      request.NumBed,
		NumTolet:    request.NumTolet,
		Acreage:     request.Acreage,
	}

	if err := validator.ValidateRoomType(&roomType); err != nil {
		response.FromError(c, err)
		return
	}

	if err := config.DB.Create(&roomType).Error; err != nil {
		response.ServerError(c)
		return
	}

	updateHotelLowestPrice(roomType.HotelID)

	if err := config.DB.Preload("Hotel").First(&roomType, roomType.ID).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, convertToRoomTypeResponse(&roomType))
}

func UpdateRoomType(c *gin.Context) {
	var request dto.UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var roomType models.RoomType
	if err := config.DB.Preload("Hotel").First(&roomType, request.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if _, ok := requireHotelManager(c, roomType.HotelID); !ok {
		return
	}

	if request.Label != "" {
		roomType.Label = request.Label
	}
	if request.Price > 0 {
		roomType.Price = request.Price
	}
	if request.Discount != nil {
		roomType.Discount = *request.Discount
	}
	if request.TotalUnits != nil {
		roomType.TotalUnits = *request.TotalUnits
	}
	if request.MaxGuests != nil {
		roomType.MaxGuests = *request.MaxGuests
	}
	if request.Active != nil {
		roomType.Active = *request.Active
	}
	if request.Description != "" {
		roomType.Description = request.Description
	}
	if request.Avatar != "" {
		roomType.Avatar = request.Avatar
	}
	if request.Img != nil {
		roomType.Img = request.Img
	}

	if err := validator.ValidateRoomType(&roomType); err != nil {
		response.FromError(c, err)
		return
	}

	if err := config.DB.Save(&roomType).Error; err != nil {
		response.ServerError(c)
		return
	}

	updateHotelLowestPrice(roomType.HotelID)

	response.Success(c, convertToRoomTypeResponse(&roomType))
}

// DeleteRoomType vô hiệu hóa loại phòng, từ chối khi còn booking đang hoạt động
func DeleteRoomType(c *gin.Context) {
	roomTypeIdStr := c.Param("id")
	roomTypeId, err := strconv.ParseUint(roomTypeIdStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "ID loại phòng không hợp lệ")
		return
	}

	var roomType models.RoomType
	if err := config.DB.First(&roomType, roomTypeId).Error; err != nil {
		response.NotFound(c)
		return
	}

	if _, ok := requireHotelManager(c, roomType.HotelID); !ok {
		return
	}

	hasActive, err := bookingService().HasActiveBookings(uint(roomTypeId))
	if err != nil {
		response.ServerError(c)
		return
	}
	if hasActive {
		response.FromError(c, errors.NewAppError(errors.ErrCodeInvalidState, "Loại phòng còn booking đang hoạt động", errors.ErrRoomTypeInUse))
		return
	}

	roomType.Active = false
	if err := config.DB.Save(&roomType).Error; err != nil {
		response.ServerError(c)
		return
	}

	updateHotelLowestPrice(roomType.HotelID)

	response.Success(c, gin.H{"id": roomType.ID})
}

// CheckRoomAvailability trả về số phòng trống của một loại phòng trong khoảng ngày
func CheckRoomAvailability(c *gin.Context) {
	roomTypeIdStr := c.Query("roomTypeId")
	hotelIdStr := c.Query("hotelId")
	fromDateStr := c.Query("fromDate")
	toDateStr := c.Query("toDate")

	roomTypeId, err := strconv.ParseUint(roomTypeIdStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "ID loại phòng không hợp lệ")
		return
	}
	hotelId, err := strconv.ParseUint(hotelIdStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "ID khách sạn không hợp lệ")
		return
	}

	checkIn, errIn := time.Parse(validator.DateLayout, fromDateStr)
	checkOut, errOut := time.Parse(validator.DateLayout, toDateStr)
	if errIn != nil || errOut != nil {
		response.BadRequest(c, "Ngày không hợp lệ, định dạng dd/mm/yyyy")
		return
	}

	info, err := services.NewAvailabilityService(config.DB).
		GetAvailability(uint(hotelId), uint(roomTypeId), checkIn, checkOut)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, info)
}

// updateHotelLowestPrice tính lại giá thấp nhất của khách sạn sau khi loại phòng thay đổi
func updateHotelLowestPrice(hotelID uint) {
	var lowest float64
	row := config.DB.Model(&models.RoomType{}).
		Select("COALESCE(MIN(price * (100 - discount) / 100), 0)").
		Where("hotel_id = ? AND active = ?", hotelID, true).
		Row()
	if err := row.Scan(&lowest); err != nil {
		return
	}
	config.DB.Model(&models.Hotel{}).Where("id = ?", hotelID).Update("lowest_price", lowest)
}
