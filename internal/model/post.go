package model

// FAQItem is one question/answer pair rendered under a blog post.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Post is a generated blog article.
type Post struct {
	ID           int       `json:"id,omitempty"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Excerpt      string    `json:"excerpt"`
	Content      string    `json:"content,omitempty"`
	Keywords     []string  `json:"keywords"`
	FAQ          []FAQItem `json:"faq,omitempty"`
	RelatedPosts []string  `json:"relatedPosts,omitempty"`
	PublishDate  string    `json:"publishDate"`
	Author       string    `json:"author,omitempty"`
	URL          string    `json:"url"`
	Status       string    `json:"status"`
}

// BlogStats summarises the blog store.
type BlogStats struct {
	TotalPosts int    `json:"totalPosts"`
	LatestPost *Post  `json:"latestPost"`
	Source     string `json:"source"`
}
