package models

// CreateExpoCenterRequest - модель для создания выставочного центра
type CreateExpoCenterRequest struct {
	Name        string   `json:"name" binding:"required"`
	City        string   `json:"city" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Country     string   `json:"country" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Facilities  string   `json:"facilities"`
	MapSvg      string   `json:"map_svg" binding:"required"`
	Images      []string `json:"images" binding:"required"`
}

// UpdateExpoCenterRequest - модель для обновления выставочного центра
type UpdateExpoCenterRequest struct {
	Name        string   `json:"name" binding:"required"`
	City        string   `json:"city" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Country     string   `json:"country" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Facilities  string   `json:"facilities"`
	MapSvg      string   `json:"map_svg"`
	Images      []string `json:"images"`
}

// CreateBoothRequest - модель для создания стенда
type CreateBoothRequest struct {
	Name         string `json:"name" binding:"required"`
	ExpoCenterID string `json:"expo_center_id" binding:"required"`
}

// UpdateBoothRequest - модель для переименования стенда
type UpdateBoothRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateLocationRequest - модель для создания места внутри стенда
type CreateLocationRequest struct {
	Name    string  `json:"name" binding:"required"`
	Price   float64 `json:"price" binding:"required"`
	BoothID string  `json:"booth_id" binding:"required"`
}

// UpdateLocationRequest - модель для обновления места
type UpdateLocationRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required"`
}

// EventRequest - модель для создания и полного обновления события.
// Даты передаются строками в формате YYYY-MM-DD.
type EventRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Theme        string   `json:"theme" binding:"required"`
	DateFrom     string   `json:"date_from" binding:"required"`
	DateTo       string   `json:"date_to" binding:"required"`
	ExpoCenterID string   `json:"expo_center_id" binding:"required"`
	BoothIDs     []string `json:"booth_ids" binding:"required"`
}

// ScheduleRequest - модель для создания и обновления сессии.
// Времена передаются строками в формате HH:mm.
type ScheduleRequest struct {
	Title       string   `json:"title" binding:"required"`
	SessionType string   `json:"session_type" binding:"required"`
	Speaker     string   `json:"speaker"`
	Date        string   `json:"date" binding:"required"`
	StartTime   string   `json:"start_time" binding:"required"`
	EndTime     string   `json:"end_time" binding:"required"`
	EventID     string   `json:"event_id" binding:"required"`
	BoothIDs    []string `json:"booth_ids" binding:"required"`
	Attendees   []string `json:"attendees"`
}

// JoinScheduleRequest - модель для записи участника на сессию
type JoinScheduleRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// CreateRegistrationRequest - модель для регистрации экспонента
type CreateRegistrationRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	EventID    string `json:"event_id" binding:"required"`
	BoothID    string `json:"booth_id" binding:"required"`
	LocationID string `json:"location_id" binding:"required"`
	StallName  string `json:"stall_name" binding:"required"`
	StaffName  string `json:"staff_name" binding:"required"`
	Product    string `json:"product" binding:"required"`
	FilePath   string `json:"file_path" binding:"required"`
}

// UpdateRegistrationRequest - частичное обновление регистрации;
// nil-поля не меняются
type UpdateRegistrationRequest struct {
	EventID    *string `json:"event_id"`
	BoothID    *string `json:"booth_id"`
	LocationID *string `json:"location_id"`
	StallName  *string `json:"stall_name"`
	StaffName  *string `json:"staff_name"`
	Product    *string `json:"product"`
	FilePath   *string `json:"file_path"`
}

// UpdateRegistrationStatusRequest - смена статуса заявки организатором
type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookedLocation - занятое место в разрезе события
type BookedLocation struct {
	BoothID    string `json:"booth_id"`
	LocationID string `json:"location_id"`
}

// EventListItem - элемент списка событий с краткой информацией о центре
type EventListItem struct {
	Event
	ExpoCenterName string `json:"expo_center_name"`
}

// ScheduleListItem - элемент списка сессий
type ScheduleListItem struct {
	Schedule
	AttendeeCount int `json:"attendee_count"`
}

// RegistrationView - регистрация, обогащённая названиями стенда и места
type RegistrationView struct {
	Registration
	BoothName     string  `json:"booth_name"`
	LocationName  string  `json:"location_name"`
	LocationPrice float64 `json:"location_price"`
}

// ExpoCenterStats - счётчики по выставочному центру
type ExpoCenterStats struct {
	ExpoCenterID              string `json:"expo_center_id"`
	BoothCount                int    `json:"booth_count"`
	LocationCount             int    `json:"location_count"`
	EventCount                int    `json:"event_count"`
	UpcomingEventCount        int    `json:"upcoming_event_count"`
	RegistrationCount         int    `json:"registration_count"`
	ApprovedRegistrationCount int    `json:"approved_registration_count"`
}
