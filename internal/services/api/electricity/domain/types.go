// Package domain holds electricity widget types
package domain

// ChartPoint is one day of the daily consumption chart
type ChartPoint struct {
	Date      string  `json:"date"`
	DateLabel string  `json:"dateLabel"`
	Value     float64 `json:"value"`
}

// MonthPoint is one month of the monthly consumption chart
type MonthPoint struct {
	Month      string  `json:"month"`
	MonthLabel string  `json:"monthLabel"`
	Value      float64 `json:"value"`
}

// ContractInfo describes the subscribed power contract
type ContractInfo struct {
	SubscribedPower string `json:"subscribedPower,omitempty"`
	OffpeakHours    string `json:"offpeakHours,omitempty"`
	ContractType    string `json:"contractType,omitempty"`
}

// WidgetData is the aggregate the dashboard widget renders.
// All values are kWh rounded to two decimals.
type WidgetData struct {
	Today              float64       `json:"today"`
	Yesterday          float64       `json:"yesterday"`
	DayBeforeYesterday float64       `json:"dayBeforeYesterday"`
	WeekTotal          float64       `json:"weekTotal"`
	WeekAverage        float64       `json:"weekAverage"`
	PreviousWeekTotal  float64       `json:"previousWeekTotal"`
	DailyChartData     []ChartPoint  `json:"dailyChartData"`
	MonthlyChartData   []MonthPoint  `json:"monthlyChartData"`
	ContractInfo       *ContractInfo `json:"contractInfo"`
}
