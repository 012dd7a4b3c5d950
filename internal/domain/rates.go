package domain

// RateSample is one computed percentage value for one month.
type RateSample struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

// InstagramHashtagSeries holds the fixed-shape monthly counters the Instagram
// calculator consumes. All slices are parallel to Dates; missing entries are
// treated as zero by per-index lookup.
type InstagramHashtagSeries struct {
	Hashtag   string   `json:"hashtag"`
	ID        string   `json:"id"`
	Dates     []string `json:"dates"`
	Likes     []int    `json:"likes"`
	Comments  []int    `json:"comments"`
	Views     []int    `json:"views"`
	Followers []int    `json:"followers"`
	Shares    []int    `json:"shares"`
}

// InstagramInput is the Instagram calculator's input.
type InstagramInput struct {
	Hashtags []InstagramHashtagSeries `json:"hashtags"`
}

// RedditHashtagSeries holds the Reddit calculator's monthly counters.
type RedditHashtagSeries struct {
	Hashtag     string   `json:"hashtag"`
	ID          string   `json:"id"`
	Dates       []string `json:"dates"`
	UpVotes     []int    `json:"up_votes"`
	Comments    []int    `json:"comments"`
	Subscribers []int    `json:"subscribers"`
	Hours       []int    `json:"hours"`
}

// RedditInput is the Reddit calculator's input.
type RedditInput struct {
	Hashtags []RedditHashtagSeries `json:"hashtags"`
}

// XHashtagSeries holds the X calculator's monthly counters.
type XHashtagSeries struct {
	Hashtag   string   `json:"hashtag"`
	ID        string   `json:"id"`
	Dates     []string `json:"dates"`
	Likes     []int    `json:"likes"`
	Reposts   []int    `json:"reposts"`
	Comments  []int    `json:"comments"`
	Views     []int    `json:"views"`
	Followers []int    `json:"followers"`
}

// XInput is the X calculator's input.
type XInput struct {
	Hashtags []XHashtagSeries `json:"hashtags"`
}

// RawSeries carries the unprocessed counters alongside the computed series so
// chart components can render both. Only the fields relevant to the hashtag's
// platform are populated.
type RawSeries struct {
	Dates       []string `json:"dates"`
	Likes       []int    `json:"likes,omitempty"`
	Comments    []int    `json:"comments,omitempty"`
	Views       []int    `json:"views,omitempty"`
	Followers   []int    `json:"followers,omitempty"`
	Shares      []int    `json:"shares,omitempty"`
	Reposts     []int    `json:"reposts,omitempty"`
	UpVotes     []int    `json:"up_votes,omitempty"`
	Subscribers []int    `json:"subscribers,omitempty"`
	Hours       []int    `json:"hours,omitempty"`
}

// HashtagRates is one hashtag's computed output on one platform.
type HashtagRates struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	InteractionSeries []RateSample `json:"interaction_series"`
	ViralitySeries    []RateSample `json:"virality_series"`
	Raw               RawSeries    `json:"raw"`
}

// PlatformResult is the output of one rate calculator.
type PlatformResult struct {
	Platform Platform       `json:"platform"`
	Name     string         `json:"name"`
	Emoji    string         `json:"emoji"`
	Hashtags []HashtagRates `json:"hashtags"`
}

// FindHashtag returns the entry whose name matches, or nil.
func (r *PlatformResult) FindHashtag(name string) *HashtagRates {
	for i := range r.Hashtags {
		if r.Hashtags[i].Name == name {
			return &r.Hashtags[i]
		}
	}
	return nil
}
