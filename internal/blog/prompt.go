package blog

import (
	"fmt"
	"strings"
	"time"

	"github.com/sells-group/lead-intake/internal/model"
)

// MaxLinkedPosts caps how many existing posts are offered for internal links.
const MaxLinkedPosts = 10

// PromptInput carries everything the generation prompt interpolates.
type PromptInput struct {
	Topic    string
	Existing []model.Post
	SiteURL  string
	Author   string
	Now      time.Time
}

// BuildPrompt renders the instruction sent to the text model.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString("Write a comprehensive, SEO-optimized blog post for a Fontana car accident law firm with the following requirements:\n\n")
	fmt.Fprintf(&b, "TOPIC: %q\n\n", in.Topic)

	b.WriteString("REQUIREMENTS:\n")
	b.WriteString("- 1500-2000 words\n")
	b.WriteString("- Include relevant Fontana/San Bernardino County local information\n")
	b.WriteString("- Use conversational, helpful tone (not overly legal)\n")
	b.WriteString("- Include practical actionable advice\n")
	b.WriteString("- Add call-to-action for free consultation\n")
	b.WriteString("- Include FAQ section with 5 relevant questions\n")
	fmt.Fprintf(&b, "- Optimize for keywords: %s\n", quoteAll(TargetKeywords))
	b.WriteString("- Include local landmarks/roads when relevant (Sierra Avenue, Foothill Boulevard, I-10, Kaiser Permanente Fontana Medical Center, etc.)\n\n")

	b.WriteString("INTERNAL LINKING REQUIREMENTS:\n")
	b.WriteString("- Include 3-5 internal links naturally within the content\n")
	b.WriteString("- Use descriptive anchor text (not \"click here\")\n")
	b.WriteString("- Link to related topics when mentioned\n")
	existing := in.Existing
	if len(existing) > MaxLinkedPosts {
		existing = existing[:MaxLinkedPosts]
	}
	if len(existing) > 0 {
		b.WriteString("Available blog posts to link to:\n")
		for _, p := range existing {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Title, PostURL(in.SiteURL, p.Slug))
		}
	} else {
		b.WriteString("- Note: No existing posts yet, include placeholder links like [Related: Understanding California Car Accident Laws]\n")
	}
	b.WriteString("\n")

	b.WriteString("STRUCTURE:\n")
	b.WriteString("1. Compelling headline\n")
	b.WriteString("2. Introduction (hook + problem)\n")
	b.WriteString("3. Main content sections (3-4 sections with internal links)\n")
	b.WriteString("4. Related Articles section (list 3 related posts)\n")
	b.WriteString("5. FAQ section\n")
	b.WriteString("6. Call-to-action conclusion\n\n")

	b.WriteString("FORMAT: Return as JSON with this structure:\n")
	b.WriteString("{\n")
	b.WriteString("  \"title\": \"SEO-optimized title\",\n")
	b.WriteString("  \"slug\": \"url-friendly-slug\",\n")
	b.WriteString("  \"excerpt\": \"Brief 160-character description\",\n")
	b.WriteString("  \"content\": \"Full HTML content with internal links\",\n")
	b.WriteString("  \"keywords\": [\"keyword1\", \"keyword2\"],\n")
	b.WriteString("  \"faq\": [{\"question\": \"Q\", \"answer\": \"A\"}],\n")
	b.WriteString("  \"relatedPosts\": [\"slug1\", \"slug2\", \"slug3\"],\n")
	fmt.Fprintf(&b, "  \"publishDate\": %q,\n", in.Now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "  \"author\": %q\n", in.Author)
	b.WriteString("}\n")

	return b.String()
}

// PostURL returns the absolute URL of a post on site.
func PostURL(siteURL, slug string) string {
	return strings.TrimRight(siteURL, "/") + "/blog/" + slug
}

func quoteAll(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(q, ", ")
}
