// File: hotelsa/models/device.go
package models

// Device identifies the installed client an app session belongs to.
type Device struct {
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName"`
	IP         string `json:"ip"`
}
