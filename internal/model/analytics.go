package model

// AnalyticsData is one day of network-wide mock analytics.
type AnalyticsData struct {
	Date    string `json:"date"`
	Views   int64  `json:"views"`
	Revenue int64  `json:"revenue"`
	Subs    int64  `json:"subs"`
}
