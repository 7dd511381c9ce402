package model

// TimezoneDBResponse is the payload of /v2.1/get-time-zone.
type TimezoneDBResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ZoneName  string `json:"zoneName"`
	Formatted string `json:"formatted"`
	GMTOffset int    `json:"gmtOffset"`
}
