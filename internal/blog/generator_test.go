package blog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-intake/internal/model"
	"github.com/sells-group/lead-intake/internal/store"
)

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) Name() string { return "mock" }

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

var fixedNow = time.Date(2025, 9, 16, 17, 0, 0, 0, time.UTC)

func newTestGenerator(llm TextGenerator, st store.BlogStore) *Generator {
	return NewGenerator(llm, st,
		WithClock(func() time.Time { return fixedNow }),
		WithPicker(func(int) int { return 6 }),
	)
}

const reply = "Here is your post:\n```json\n" + `{
  "title": "California Comparative Negligence Laws Explained",
  "slug": "California Comparative Negligence!",
  "excerpt": "How fault is shared after a Fontana crash.",
  "content": "<h2>Intro</h2>",
  "faq": [{"question": "Can I recover if partly at fault?", "answer": "Yes."}],
  "relatedPosts": ["fontana-car-accident-immediate-steps"]
}` + "\n```"

func TestGenerator_Generate(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.SavePost(context.Background(), model.Post{Title: "Older Post", Slug: "older-post"}))

	llm := &mockLLM{}
	llm.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, `TOPIC: "California Comparative Negligence Laws Explained"`) &&
			strings.Contains(p, "- Older Post (https://www.accidentlawyerfontana.com/blog/older-post)")
	})).Return(reply, nil)

	post, err := newTestGenerator(llm, st).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "california-comparative-negligence", post.Slug)
	assert.Equal(t, "/blog/california-comparative-negligence", post.URL)
	assert.Equal(t, "2025-09-16T17:00:00Z", post.PublishDate)
	assert.Equal(t, DefaultAuthor, post.Author)
	assert.Equal(t, "published", post.Status)
	assert.Equal(t, TargetKeywords, post.Keywords)
	require.Len(t, post.FAQ, 1)

	saved, err := st.GetPost(context.Background(), post.Slug)
	require.NoError(t, err)
	assert.Equal(t, post.Title, saved.Title)

	posts, err := st.ListPosts(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, post.Slug, posts[0].Slug)
	llm.AssertExpectations(t)
}

func TestGenerator_KeepsModelFields(t *testing.T) {
	llm := &mockLLM{}
	llm.On("Generate", mock.Anything, mock.Anything).Return(`{
		"title": "Truck Accident Liability",
		"publishDate": "2025-09-01T00:00:00Z",
		"author": "Jane Counsel",
		"keywords": ["truck accident"]
	}`, nil)

	post, err := newTestGenerator(llm, store.NewMemory()).Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "truck-accident-liability", post.Slug)
	assert.Equal(t, "2025-09-01T00:00:00Z", post.PublishDate)
	assert.Equal(t, "Jane Counsel", post.Author)
	assert.Equal(t, []string{"truck accident"}, post.Keywords)
}

func TestGenerator_NoJSON(t *testing.T) {
	llm := &mockLLM{}
	llm.On("Generate", mock.Anything, mock.Anything).Return("I cannot help with that.", nil)

	_, err := newTestGenerator(llm, store.NewMemory()).Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid JSON")
}

func TestGenerator_ModelError(t *testing.T) {
	llm := &mockLLM{}
	llm.On("Generate", mock.Anything, mock.Anything).Return("", eris.New("quota"))

	st := store.NewMemory()
	_, err := newTestGenerator(llm, st).Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blog: generate")

	stats, err := st.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalPosts)
}

func TestParsePost_RequiresTitle(t *testing.T) {
	_, err := ParsePost(`{"slug": "x"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no title")

	_, err = ParsePost(`{"title": }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode post")
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare", `{"a":1}`, `{"a":1}`, true},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"prose around", `Sure! {"a":{"b":2}} Hope that helps`, `{"a":{"b":2}}`, true},
		{"none", "no json here", "", false},
		{"reversed", "} {", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
