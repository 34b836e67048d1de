package worker

import (
	"github.com/hackforge/hackathon-service/internal/service"
)

// StartActivityWorker registers the activity handlers on the dispatcher.
func StartActivityWorker(activity *service.ActivityService) {
	if activity == nil {
		return
	}
	activity.RegisterHandlers()
}
