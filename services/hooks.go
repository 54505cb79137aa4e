package services

import "hotel-frontdesk/models"

// Notifier receives human readable front-desk activity.
type Notifier interface {
	Add(message string) models.Notification
}

// Recorder counts lifecycle events for monitoring.
type Recorder interface {
	CheckedIn(room models.RoomNumber)
	CheckedOut(room models.RoomNumber, nights int)
	GuestSaved(created bool)
}

type nopNotifier struct{}

func (nopNotifier) Add(message string) models.Notification {
	return models.Notification{Message: message}
}

type nopRecorder struct{}

func (nopRecorder) CheckedIn(models.RoomNumber) {}
func (nopRecorder) CheckedOut(models.RoomNumber, int) {}
func (nopRecorder) GuestSaved(bool) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
