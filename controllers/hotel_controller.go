package controllers

import (
	"fmt"
	"log"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"bookstay/config"
	"bookstay/constants"
	"bookstay/dto"
	"bookstay/models"
	"bookstay/response"
	"bookstay/services"
	"bookstay/validator"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/gin-gonic/gin"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

func convertToHotelResponse(hotel *models.Hotel) dto.HotelResponse {
	return dto.HotelResponse{
		ID:               hotel.ID,
		Name:             hotel.Name,
		Address:          hotel.Address,
		Province:         hotel.Province,
		District:         hotel.District,
		Ward:             hotel.Ward,
		ShortDescription: hotel.ShortDescription,
		Avatar:           hotel.Avatar,
		Img:              hotel.Img,
		Status:           hotel.Status,
		LowestPrice:      hotel.LowestPrice,
		Num:              hotel.Num,
		Longitude:        hotel.Longitude,
		Latitude:         hotel.Latitude,
	}
}

// Hàm chuẩn hóa chuỗi
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/maxLen
}

func extractRatingFromQuery(query string) int {
	// Bắt số nguyên đứng trước từ "sao"
	re := regexp.MustCompile(`(\d+)\s*sao`)
	match := re.FindStringSubmatch(query)
	if len(match) < 2 {
		return -1
	}

	ratingInt, err := strconv.Atoi(match[1])
	if err != nil {
		return -1
	}
	return ratingInt
}

// Tạo danh sách các giá trị duy nhất từ cơ sở dữ liệu cho closestmatch
func prepareUniqueList(hotels []models.Hotel, field string) []string {
	uniqueValues := make(map[string]bool)

	for _, hotel := range hotels {
		var value string
		switch field {
		case "province":
			value = hotel.Province
		case "ward":
			value = hotel.Ward
		}
		if value != "" {
			uniqueValues[normalizeInput(value)] = true
		}
	}

	uniqueList := make([]string, 0, len(uniqueValues))
	for val := range uniqueValues {
		uniqueList = append(uniqueList, val)
	}
	return uniqueList
}

// Tính điểm phù hợp cho khách sạn
func calculateScore(query string, hotel models.Hotel, cmProvince, cmWard *closestmatch.ClosestMatch) int {
	normalizedQuery := normalizeInput(query)
	rating := extractRatingFromQuery(normalizedQuery)
	score := 0

	if rating != -1 && hotel.Num == rating {
		score += 15
	}
	if cmProvince.Closest(normalizedQuery) == normalizeInput(hotel.Province) {
		score += 13
	}
	if cmWard.Closest(normalizedQuery) == normalizeInput(hotel.Ward) {
		score += 1
	}

	normalizedName := normalizeInput(hotel.Name)
	similarity := calculateSimilarity(normalizedQuery, normalizedName)
	if similarity > 0.7 || strings.Contains(normalizedQuery, normalizedName) {
		score += 10
	}

	return score
}

func filterAndScoreHotels(
	query string,
	hotels []models.Hotel,
	cmProvince, cmWard *closestmatch.ClosestMatch,
) []dto.ScoredHotel {
	var filteredHotels []dto.ScoredHotel
	scoreCh := make(chan dto.ScoredHotel, len(hotels))
	var wg sync.WaitGroup

	for _, hotel := range hotels {
		wg.Add(1)
		go func(hotel models.Hotel) {
			defer wg.Done()
			score := calculateScore(query, hotel, cmProvince, cmWard)
			if score > 0 {
				scoreCh <- dto.ScoredHotel{
					Hotel: hotel,
					Score: score,
				}
			}
		}(hotel)
	}

	go func() {
		wg.Wait()
		close(scoreCh)
	}()

	for scoredHotel := range scoreCh {
		filteredHotels = append(filteredHotels, scoredHotel)
	}

	sort.SliceStable(filteredHotels, func(i, j int) bool {
		return filteredHotels[i].Score > filteredHotels[j].Score
	})
	return filteredHotels
}

// Load dữ liệu từ DB
func loadHotelsFromDB(allHotels *[]models.Hotel) error {
	return config.DB.Model(&models.Hotel{}).
		Preload("RoomTypes").
		Find(allHotels).Error
}

// parseSearchFilters đọc bộ lọc từ query và gộp với bộ lọc của lần tìm trước
func parseSearchFilters(c *gin.Context, fromDate, toDate time.Time) *dto.SearchFilters {
	filters := &dto.SearchFilters{
		Province: c.Query("province"),
		District: c.Query("district"),
		Name:     c.Query("name"),
	}

	if v := c.Query("numBed"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filters.NumBed = &parsed
		}
	}
	if v := c.Query("numTolet"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filters.NumTolet = &parsed
		}
	}
	if v := c.Query("priceMin"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filters.PriceMin = &parsed
		}
	}
	if v := c.Query("priceMax"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filters.PriceMax = &parsed
		}
	}
	if v := c.Query("people"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filters.Guests = &parsed
		}
	}
	if !fromDate.IsZero() {
		filters.FromDate = &fromDate
	}
	if !toDate.IsZero() {
		filters.ToDate = &toDate
	}

	// Gộp với bộ lọc lần trước nếu client yêu cầu tiếp tục phiên tìm kiếm
	sessionKey := c.Query("sessionId")
	if sessionKey == "" {
		return filters
	}

	rdb, err := config.ConnectRedis()
	if err != nil {
		return filters
	}

	cacheKey := fmt.Sprintf("hotels:lastfilters:%s", sessionKey)

	// Client bắt đầu phiên tìm kiếm mới thì bỏ bộ lọc cũ
	if c.Query("resetFilters") == "true" {
		_ = services.ClearLastFilters(config.Ctx, rdb, cacheKey)
		_ = services.SaveLastFilters(config.Ctx, rdb, cacheKey, filters)
		return filters
	}

	oldFilters, err := services.GetLastFilters(config.Ctx, rdb, cacheKey)
	if err == nil && oldFilters != nil {
		filters = services.MergeFilters(oldFilters, filters)
	}

	if err := services.SaveLastFilters(config.Ctx, rdb, cacheKey, filters); err != nil {
		log.Printf("Lỗi khi lưu bộ lọc tìm kiếm vào Redis: %v", err)
	}

	return filters
}

func matchesFilters(hotel *models.Hotel, filters *dto.SearchFilters) bool {
	if filters.Province != "" {
		decodedProvince, _ := url.QueryUnescape(filters.Province)
		if !strings.Contains(normalizeInput(hotel.Province), normalizeInput(decodedProvince)) {
			return false
		}
	}
	if filters.District != "" {
		decodedDistrict, _ := url.QueryUnescape(filters.District)
		if !strings.Contains(normalizeInput(hotel.District), normalizeInput(decodedDistrict)) {
			return false
		}
	}
	if filters.Name != "" {
		decodedName, _ := url.QueryUnescape(filters.Name)
		if !strings.Contains(normalizeInput(hotel.Name), normalizeInput(decodedName)) {
			return false
		}
	}
	if filters.PriceMin != nil && hotel.LowestPrice < float64(*filters.PriceMin) {
		return false
	}
	if filters.PriceMax != nil && hotel.LowestPrice > float64(*filters.PriceMax) {
		return false
	}

	roomTypeMatch := filters.NumBed == nil && filters.NumTolet == nil && filters.Guests == nil
	for i := range hotel.RoomTypes {
		rt := &hotel.RoomTypes[i]
		if !rt.Active {
			continue
		}
		if filters.NumBed != nil && rt.NumBed < *filters.NumBed {
			continue
		}
		if filters.NumTolet != nil && rt.NumTolet < *filters.NumTolet {
			continue
		}
		if filters.Guests != nil && rt.MaxGuests < *filters.Guests {
			continue
		}
		roomTypeMatch = true
		break
	}
	return roomTypeMatch
}

// hotelHasVacancy kiểm tra khách sạn còn ít nhất một loại phòng trống trong khoảng ngày
func hotelHasVacancy(hotel *models.Hotel, checkIn, checkOut time.Time) bool {
	for i := range hotel.RoomTypes {
		rt := &hotel.RoomTypes[i]
		if !rt.Active {
			continue
		}
		booked, err := services.CountBookedUnits(config.DB, rt.ID, checkIn, checkOut)
		if err != nil {
			continue
		}
		if booked < rt.TotalUnits {
			return true
		}
	}
	return false
}

func GetAllHotelsForUser(c *gin.Context) {
	searchQuery := c.Query("search")
	fromDateStr := c.Query("fromDate")
	toDateStr := c.Query("toDate")
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

	var fromDate, toDate time.Time
	var err error

	if fromDateStr != "" {
		fromDate, err = time.Parse(validator.DateLayout, fromDateStr)
		if err != nil {
			response.BadRequest(c, "Dữ liệu fromDate không hợp lệ")
			return
		}
	}
	if toDateStr != "" {
		toDate, err = time.Parse(validator.DateLayout, toDateStr)
		if err != nil {
			response.BadRequest(c, "Dữ liệu toDate không hợp lệ")
			return
		}
	}
	if !fromDate.IsZero() && !toDate.IsZero() {
		if err := services.ValidateDateRange(fromDate, toDate); err != nil {
			response.FromError(c, err)
			return
		}
	}

	rdb, redisErr := config.ConnectRedis()

	var allHotels []models.Hotel
	cacheKey := "hotels:all"

	if redisErr != nil || services.GetFromRedis(config.Ctx, rdb, cacheKey, &allHotels) != nil || len(allHotels) == 0 {
		if err := loadHotelsFromDB(&allHotels); err != nil {
			response.ServerError(c)
			return
		}
		if redisErr == nil {
			if err := services.SetToRedis(config.Ctx, rdb, cacheKey, allHotels, 10*time.Minute); err != nil {
				log.Printf("Lỗi khi lưu danh sách khách sạn vào Redis: %v", err)
			}
		}
	}

	filters := parseSearchFilters(c, fromDate, toDate)

	filteredHotels := make([]models.Hotel, 0)
	for i := range allHotels {
		if allHotels[i].Status != 0 {
			continue
		}
		if !matchesFilters(&allHotels[i], filters) {
			continue
		}
		if filters.FromDate != nil && filters.ToDate != nil &&
			!hotelHasVacancy(&allHotels[i], *filters.FromDate, *filters.ToDate) {
			continue
		}
		filteredHotels = append(filteredHotels, allHotels[i])
	}

	// Tìm kiếm mờ theo câu truy vấn tự do
	if searchQuery != "" {
		decodedQuery, _ := url.QueryUnescape(searchQuery)
		cmProvince := createMatcher(prepareUniqueList(filteredHotels, "province"))
		cmWard := createMatcher(prepareUniqueList(filteredHotels, "ward"))

		scored := filterAndScoreHotels(decodedQuery, filteredHotels, cmProvince, cmWard)
		filteredHotels = make([]models.Hotel, 0, len(scored))
		for _, s := range scored {
			filteredHotels = append(filteredHotels, s.Hotel)
		}
	}

	total := len(filteredHotels)

	start := page * limit
	end := start + limit
	if start >= total {
		filteredHotels = []models.Hotel{}
	} else if end > total {
		filteredHotels = filteredHotels[start:]
	} else {
		filteredHotels = filteredHotels[start:end]
	}

	hotelResponses := make([]dto.HotelResponse, 0, len(filteredHotels))
	for i := range filteredHotels {
		hotelResponses = append(hotelResponses, convertToHotelResponse(&filteredHotels[i]))
	}

	response.SuccessWithPagination(c, hotelResponses, page, limit, total)
}

func GetHotelDetail(c *gin.Context) {
	hotelId := c.Param("id")

	var hotel models.Hotel
	if err := config.DB.Preload("RoomTypes", "active = ?", true).
		Where("id = ?", hotelId).
		First(&hotel).Error; err != nil {
		response.NotFound(c)
		return
	}

	detail := dto.HotelDetailResponse{
		HotelResponse: convertToHotelResponse(&hotel),
		Description:   hotel.Description,
		TimeCheckIn:   hotel.TimeCheckIn,
		TimeCheckOut:  hotel.TimeCheckOut,
	}

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

		annotated, err := services.NewAvailabilityService(config.DB).AnnotateRoomTypes(hotel.RoomTypes, checkIn, checkOut)
		if err != nil {
			response.ServerError(c)
			return
		}
		detail.RoomTypes = annotated
	} else {
		annotated := make([]dto.RoomTypeAvailability, 0, len(hotel.RoomTypes))
		for _, rt := range hotel.RoomTypes {
			annotated = append(annotated, dto.RoomTypeAvailability{
				RoomType: rt,
				Availability: dto.AvailabilityInfo{
					RoomTypeID:     rt.ID,
					TotalUnits:     rt.TotalUnits,
					AvailableUnits: rt.TotalUnits,
				},
			})
		}
		detail.RoomTypes = annotated
	}

	response.Success(c, detail)
}

func CreateHotel(c *gin.Context) {
	currentUserID, currentUserRole, ok := currentUser(c)
	if !ok {
		return
	}
	if currentUserRole != constants.RoleOwner && currentUserRole != constants.RoleSuperAdmin {
		response.Forbidden(c)
		return
	}

	var request dto.CreateHotelRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := validator.ValidateStruct(&request); err != nil {
		response.FromError(c, err)
		return
	}

	hotel := models.Hotel{
		UserID:           currentUserID,
		Name:             request.Name,
		Address:          request.Address,
		Province:         request.Province,
		District:         request.District,
		Ward:             request.Ward,
		ShortDescription: request.ShortDescription,
		Description:      request.Description,
		Avatar:           request.Avatar,
		Img:              request.Img,
		TimeCheckIn:      request.TimeCheckIn,
		TimeCheckOut:     request.TimeCheckOut,
		Longitude:        request.Longitude,
		Latitude:         request.Latitude,
		Num:              request.Num,
	}

	if err := hotel.ValidateStatus(); err != nil {
		response.BadRequest(c, "Trạng thái khách sạn không hợp lệ")
		return
	}

	if err := config.DB.Create(&hotel).Error; err != nil {
		response.ServerError(c)
		return
	}

	// Gắn khách sạn mới vào danh sách quản lý của chủ
	var owner models.User
	if err := config.DB.First(&owner, currentUserID).Error; err == nil {
		owner.HotelIDs = append(owner.HotelIDs, int64(hotel.ID))
		config.DB.Model(&owner).Update("hotel_ids", owner.HotelIDs)
	}

	if rdb, err := config.ConnectRedis(); err == nil {
		_ = services.DeleteFromRedis(config.Ctx, rdb, "hotels:all")
		_ = services.DeleteKeysByPattern(config.Ctx, rdb, "hotels:search:*")
	}

	response.Success(c, convertToHotelResponse(&hotel))
}

func UpdateHotel(c *gin.Context) {
	var request struct {
		ID uint `json:"id" binding:"required"`
		dto.CreateHotelRequest
		Status *int `json:"status"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var hotel models.Hotel
	if err := config.DB.First(&hotel, request.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if _, ok := requireHotelManager(c, hotel.ID); !ok {
		return
	}

	hotel.Name = request.Name
	hotel.Address = request.Address
	hotel.Province = request.Province
	hotel.District = request.District
	hotel.Ward = request.Ward
	hotel.ShortDescription = request.ShortDescription
	hotel.Description = request.Description
	if request.Avatar != "" {
		hotel.Avatar = request.Avatar
	}
	if request.Img != nil {
		hotel.Img = request.Img
	}
	hotel.TimeCheckIn = request.TimeCheckIn
	hotel.TimeCheckOut = request.TimeCheckOut
	hotel.Longitude = request.Longitude
	hotel.Latitude = request.Latitude
	hotel.Num = request.Num
	if request.Status != nil {
		hotel.Status = *request.Status
	}

	if err := hotel.ValidateStatus(); err != nil {
		response.BadRequest(c, "Trạng thái khách sạn không hợp lệ")
		return
	}

	if err := config.DB.Save(&hotel).Error; err != nil {
		response.ServerError(c)
		return
	}

	if rdb, err := config.ConnectRedis(); err == nil {
		_ = services.DeleteFromRedis(config.Ctx, rdb, "hotels:all")
		_ = services.DeleteKeysByPattern(config.Ctx, rdb, "hotels:search:*")
	}

	response.Success(c, convertToHotelResponse(&hotel))
}
