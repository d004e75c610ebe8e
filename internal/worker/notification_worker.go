package worker

import (
	"github.com/spec-kit/booking-service/internal/service"
)

// StartNotificationWorker registers notification handlers for booking and
// catalog events.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
