package domain

// BusinessListing is a business together with its rating summary.
type BusinessListing struct {
	Business
	RatingSummary
}

// BusinessDetail is a single business with its summary and reviews, newest first.
type BusinessDetail struct {
	BusinessListing
	Reviews []Review `json:"reviews"`
}

// CategoryCount is the number of businesses in one category.
type CategoryCount struct {
	CategoryID    string `json:"categoryId"`
	CategoryName  string `json:"categoryName"`
	BusinessCount int    `json:"businessCount"`
}

// DirectoryStats are the dashboard totals.
type DirectoryStats struct {
	Categories            int             `json:"categories"`
	Businesses            int             `json:"businesses"`
	Reviews               int             `json:"reviews"`
	Users                 int             `json:"users"`
	AverageRating         float64         `json:"averageRating"`
	BusinessesPerCategory float64         `json:"businessesPerCategory"`
	BusinessesByCategory  []CategoryCount `json:"businessesByCategory"`
}
