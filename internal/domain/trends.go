package domain

// Post is a single scraped publication as delivered by the trends API.
// Instagram posts populate Likes/Comments/Followers; Reddit posts populate
// Vote/Comments/Members/Subreddit/Title.
type Post struct {
	Comments  int    `json:"comments"`
	Likes     int    `json:"likes"`
	Followers int    `json:"followers,omitempty"`
	Members   int    `json:"members,omitempty"`
	Subreddit string `json:"subreddit,omitempty"`
	Title     string `json:"title,omitempty"`
	Vote      int    `json:"vote,omitempty"`
	Time      string `json:"time"`
	Link      string `json:"link"`
}

// KeywordPosts groups the posts scraped for one hashtag on one platform.
type KeywordPosts struct {
	Keyword string `json:"keyword"`
	Posts   []Post `json:"posts"`
}

// NewsItem is one piece of news metadata attached to a trends snapshot.
type NewsItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Keywords    []string `json:"keywords"`
}

// TrendsPayload is the per-platform raw data block of a trends document.
type TrendsPayload struct {
	Data struct {
		Instagram []KeywordPosts `json:"instagram"`
		Reddit    []KeywordPosts `json:"reddit"`
		Twitter   []Post         `json:"twitter"`
	} `json:"data"`
	Metadata []NewsItem `json:"metadata"`
}

// TrendsDocument is the top-level document served by the trends API.
// A document missing Hashtags or with an empty Trends block is invalid and
// triggers the loader's fixture fallback.
type TrendsDocument struct {
	Hashtags []string      `json:"hashtags"`
	Sentence string        `json:"sentence"`
	Trends   TrendsPayload `json:"trends"`
}

// BackendHashtagMetric carries one hashtag's pre-computed averages from the
// backend calculation service. When present these bypass the local rate
// calculators in the comparison stage.
type BackendHashtagMetric struct {
	Name                 string  `json:"name"`
	InstagramInteraction float64 `json:"instagram_interaction"`
	InstagramVirality    float64 `json:"instagram_virality"`
	RedditInteraction    float64 `json:"reddit_interaction"`
	RedditVirality       float64 `json:"reddit_virality"`
	TwitterInteraction   float64 `json:"twitter_interaction"`
	TwitterVirality      float64 `json:"twitter_virality"`
}

// BackendResults is the pre-computed results contract.
type BackendResults struct {
	Hashtags      []BackendHashtagMetric `json:"hashtags"`
	TotalHashtags int                    `json:"total_hashtags,omitempty"`
	DataSource    string                 `json:"data_source,omitempty"`
	FormulasUsed  []string               `json:"formulas_used,omitempty"`
}

// HasMetrics reports whether the backend supplied at least one hashtag.
func (b *BackendResults) HasMetrics() bool {
	return b != nil && len(b.Hashtags) > 0
}

// AnalysisRequest is what a caller hands the loader: either previously stored
// analysis data (possibly with backend pre-computed results), an explicit
// request for demo data, or nothing, in which case the loader fetches live.
type AnalysisRequest struct {
	Sentence     string          `json:"sentence,omitempty"`
	Hashtags     []string        `json:"hashtags,omitempty"`
	Trends       *TrendsPayload  `json:"trends,omitempty"`
	Calculated   *BackendResults `json:"calculated_results,omitempty"`
	ResourceName string          `json:"resource_name,omitempty"`
	Demo         bool            `json:"demo,omitempty"`
}
