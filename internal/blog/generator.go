// Package blog generates search-optimised articles with a text model and
// persists them through a store.BlogStore.
package blog

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-intake/internal/model"
	"github.com/sells-group/lead-intake/internal/store"
)

// DefaultAuthor signs posts the model leaves unsigned.
const DefaultAuthor = "Fontana Car Accident Legal Team"

// TextGenerator produces a completion for a single prompt.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Generator writes one post per call.
type Generator struct {
	llm     TextGenerator
	store   store.BlogStore
	siteURL string
	author  string
	topics  []string
	now     func() time.Time
	pick    func(n int) int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSiteURL sets the absolute base used for internal links.
func WithSiteURL(u string) Option { return func(g *Generator) { g.siteURL = u } }

// WithAuthor overrides DefaultAuthor.
func WithAuthor(a string) Option {
	return func(g *Generator) {
		if a != "" {
			g.author = a
		}
	}
}

// WithTopics replaces the topic rotation.
func WithTopics(t []string) Option {
	return func(g *Generator) {
		if len(t) > 0 {
			g.topics = t
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(g *Generator) { g.now = now } }

// WithPicker overrides the random topic choice; pick returns an index in [0, n).
func WithPicker(pick func(n int) int) Option { return func(g *Generator) { g.pick = pick } }

// NewGenerator creates a Generator writing through st.
func NewGenerator(llm TextGenerator, st store.BlogStore, opts ...Option) *Generator {
	g := &Generator{
		llm:     llm,
		store:   st,
		siteURL: "https://www.accidentlawyerfontana.com",
		author:  DefaultAuthor,
		topics:  Topics,
		now:     time.Now,
		pick:    rand.IntN,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate picks a topic, asks the model for a post, fills missing fields
// and saves it. The saved post is returned.
func (g *Generator) Generate(ctx context.Context) (*model.Post, error) {
	topic := g.topics[g.pick(len(g.topics))]
	now := g.now()

	existing, err := g.store.ListPosts(ctx, MaxLinkedPosts)
	if err != nil {
		zap.L().Warn("blog: no existing posts for linking", zap.Error(err))
		existing = nil
	}

	prompt := BuildPrompt(PromptInput{
		Topic:    topic,
		Existing: existing,
		SiteURL:  g.siteURL,
		Author:   g.author,
		Now:      now,
	})

	zap.L().Info("blog: generating post",
		zap.String("topic", topic),
		zap.String("provider", g.llm.Name()),
		zap.Int("linkable_posts", len(existing)),
	)

	text, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, eris.Wrap(err, "blog: generate")
	}

	post, err := ParsePost(text)
	if err != nil {
		return nil, err
	}
	g.fillDefaults(post, now)

	if err := g.store.SavePost(ctx, *post); err != nil {
		return nil, eris.Wrapf(err, "blog: save post %s", post.Slug)
	}

	zap.L().Info("blog: post generated",
		zap.String("title", post.Title),
		zap.String("slug", post.Slug),
	)
	return post, nil
}

// ParsePost decodes the first JSON object found in a model reply.
func ParsePost(text string) (*model.Post, error) {
	raw, ok := ExtractJSON(text)
	if !ok {
		return nil, eris.New("blog: no valid JSON found in AI response")
	}
	var p model.Post
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, eris.Wrap(err, "blog: decode post")
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, eris.New("blog: generated post has no title")
	}
	return &p, nil
}

// ExtractJSON returns the span from the first "{" to the last "}", after
// removing a surrounding markdown code fence.
func ExtractJSON(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func (g *Generator) fillDefaults(p *model.Post, now time.Time) {
	if s := Slugify(p.Slug); s != "" {
		p.Slug = s
	} else {
		p.Slug = Slugify(p.Title)
	}
	p.URL = "/blog/" + p.Slug
	if p.PublishDate == "" {
		p.PublishDate = now.UTC().Format(time.RFC3339)
	}
	if p.Author == "" {
		p.Author = g.author
	}
	if len(p.Keywords) == 0 {
		p.Keywords = append([]string(nil), TargetKeywords...)
	}
	p.Status = "published"
}
