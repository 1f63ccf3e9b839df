package collector

// FeedItem is a single reachability sample from the upstream status
// feed.
type FeedItem struct {
	LocationID string `json:"location_id"`
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp_utc"`
}

// FeedResponse models the top-level structure of the upstream feed's
// response.
type FeedResponse struct {
	Code int `json:"code"`
	Data struct {
		Page     int        `json:"page"`
		PageSize int        `json:"pageSize"`
		Total    int        `json:"total"`
		Items    []FeedItem `json:"items"`
	} `json:"data"`
}
