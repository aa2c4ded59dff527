package model

// DayStatus is a single day of a WeekView.
type DayStatus struct {
	Date    string `json:"date"`
	Studied bool   `json:"studied"`
}

// WeekView is computed on request and never stored.
// Days always holds the seven days Sunday..Saturday in order.
type WeekView struct {
	Days            []DayStatus `json:"days"`
	ForgivenessUsed bool        `json:"forgivenessUsed"`
}
