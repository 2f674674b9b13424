package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	WidgetData(ctx context.Context, dailyChartDays int) (WidgetData, error)
}
