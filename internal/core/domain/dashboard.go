package domain

type MonthlyStats struct {
	Month            string `json:"month"`
	MonthName        string `json:"monthName"`
	AppointmentCount int64  `json:"appointmentCount"`
}

// DashboardStats - сводка для главной страницы, считается на шлюзе из
// списков, полученных от бэкенда.
type DashboardStats struct {
	TotalAppointments int64          `json:"totalAppointments"`
	TotalDentists     int64          `json:"totalDentists"`
	TotalPatients     int64          `json:"totalPatients"`
	TodayAppointments int64          `json:"todayAppointments"`
	TodayList         []Appointment  `json:"todayAppointmentsList"`
	MonthlyStats      []MonthlyStats `json:"monthlyStats"`
}
