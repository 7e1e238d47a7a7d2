package stepd

import "time"

// Permissions reports the grants the daemon needs. A missing grant degrades
// the daemon and never stops it from starting.
type Permissions interface {
	SensorGranted() bool
	NotificationsGranted() bool
}

type StaticPermissions struct {
	Sensor        bool
	Notifications bool
}

func (p StaticPermissions) SensorGranted() bool        { return p.Sensor }
func (p StaticPermissions) NotificationsGranted() bool { return p.Notifications }

func nowLocal() time.Time { return time.Now() }
