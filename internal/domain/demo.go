package domain

// DemoTrendsDocument returns the built-in demo snapshot: three hashtags with
// Instagram and Reddit posts spread over January to March 2025 and two news
// items. The loader serves it in demo mode and as the fallback when the live
// fetch fails, so the dashboard always has something plausible to render.
func DemoTrendsDocument() *TrendsDocument {
	doc := &TrendsDocument{
		Hashtags: []string{"#EcoFriendly", "#SustainableFashion", "#NuevosMateriales"},
		Sentence: "Análisis de tendencias sostenibles en moda 2025",
	}

	doc.Trends.Data.Instagram = []KeywordPosts{
		{
			Keyword: "#EcoFriendly",
			Posts: []Post{
				{Comments: 45, Followers: 3500, Likes: 350, Link: "https://instagram.com/post/1", Time: "2025-01-15T10:00:00Z"},
				{Comments: 52, Followers: 3600, Likes: 420, Link: "https://instagram.com/post/2", Time: "2025-02-15T10:00:00Z"},
				{Comments: 38, Followers: 3700, Likes: 380, Link: "https://instagram.com/post/3", Time: "2025-03-15T10:00:00Z"},
			},
		},
		{
			Keyword: "#SustainableFashion",
			Posts: []Post{
				{Comments: 32, Followers: 2800, Likes: 280, Link: "https://instagram.com/post/4", Time: "2025-01-20T10:00:00Z"},
				{Comments: 41, Followers: 2900, Likes: 310, Link: "https://instagram.com/post/5", Time: "2025-02-20T10:00:00Z"},
			},
		},
		{
			Keyword: "#NuevosMateriales",
			Posts: []Post{
				{Comments: 25, Followers: 2200, Likes: 220, Link: "https://instagram.com/post/6", Time: "2025-01-25T10:00:00Z"},
				{Comments: 28, Followers: 2300, Likes: 240, Link: "https://instagram.com/post/7", Time: "2025-02-25T10:00:00Z"},
			},
		},
	}

	doc.Trends.Data.Reddit = []KeywordPosts{
		{
			Keyword: "#EcoFriendly",
			Posts: []Post{
				{Comments: 28, Members: 15000, Vote: 95, Subreddit: "sustainability", Title: "Post sobre EcoFriendly - 1", Link: "https://reddit.com/r/sustainability/post/1", Time: "2025-01-15T11:00:00Z"},
				{Comments: 34, Members: 15200, Vote: 112, Subreddit: "sustainability", Title: "Post sobre EcoFriendly - 2", Link: "https://reddit.com/r/sustainability/post/2", Time: "2025-02-15T11:00:00Z"},
			},
		},
		{
			Keyword: "#SustainableFashion",
			Posts: []Post{
				{Comments: 22, Members: 12000, Vote: 78, Subreddit: "sustainablefashion", Title: "Post sobre SustainableFashion - 1", Link: "https://reddit.com/r/sustainablefashion/post/1", Time: "2025-01-20T11:00:00Z"},
			},
		},
		{
			Keyword: "#NuevosMateriales",
			Posts: []Post{
				{Comments: 18, Members: 8000, Vote: 65, Subreddit: "materials", Title: "Post sobre NuevosMateriales - 1", Link: "https://reddit.com/r/materials/post/1", Time: "2025-01-25T11:00:00Z"},
			},
		},
	}

	// X has no raw post feed yet.
	doc.Trends.Data.Twitter = []Post{}

	doc.Trends.Metadata = []NewsItem{
		{
			Title:       "Pieles sintéticas revolucionan la moda en Milán",
			Description: "Las nuevas tecnologías de materiales sintéticos están ganando terreno en las pasarelas milanesas.",
			URL:         "https://fashionnews.com/pieles-sinteticas-milan",
			Keywords:    []string{"pieles sintéticas", "moda sostenible", "innovación"},
		},
		{
			Title:       "Materiales reciclados: La nueva tendencia en accesorios",
			Description: "Los bolsos fabricados con materiales reciclados muestran un crecimiento del 65% en popularidad.",
			URL:         "https://ecotrends.com/materiales-reciclados",
			Keywords:    []string{"materiales reciclados", "accesorios", "sostenibilidad"},
		},
	}

	return doc
}
