package models

// StatCard is one dashboard counter
type StatCard struct {
	Title string `json:"title"`
	Value int64  `json:"value"`
}

// RevenueAxis labels one chart axis
type RevenueAxis struct {
	Label  string   `json:"label"`
	Values []string `json:"values,omitempty"`
	Unit   string   `json:"unit,omitempty"`
}

// RevenueSeries is one year's monthly revenue vector
type RevenueSeries struct {
	Period string  `json:"period"`
	Values []int64 `json:"values"`
}

// RevenueChart is the revenue-by-month chart payload
type RevenueChart struct {
	XAxis RevenueAxis     `json:"xAxis"`
	YAxis RevenueAxis     `json:"yAxis"`
	Data  []RevenueSeries `json:"data"`
}

// ClientRevenue is the per-client payment rollup for a year
type ClientRevenue struct {
	ClientID         string `json:"client_id"`
	Email            string `json:"email"`
	Username         string `json:"username"`
	NumberOfProjects int    `json:"number_of_projects"`
	TotalAmount      int64  `json:"total_amount_generated"`
}

// RevenueReport is the full revenue-by-year response
type RevenueReport struct {
	TotalRevenue int64           `json:"totalRevenue"`
	Year         int             `json:"year"`
	Revenue      RevenueChart    `json:"revenue"`
	Clients      []ClientRevenue `json:"users"`
}

// EngagementBreakdown is the per-status engagement count rollup
type EngagementBreakdown struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Pending    int `json:"pending"`
	Canceled   int `json:"canceled"`
}

// LatestActivityItem is one unified entry of the latest-activity feed
type LatestActivityItem struct {
	Title       string `json:"title"`
	CreatedBy   string `json:"created_by"`
	Description string `json:"description"`
	Category    string `json:"category"`
}
