package server

import (
	"encoding/xml"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/lead-intake/internal/store"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	today := s.now().UTC().Format("2006-01-02")
	base := s.opts.SiteURL

	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: base + "/", LastMod: today, ChangeFreq: "weekly", Priority: "1.0"},
			{Loc: base + "/blog", LastMod: today, ChangeFreq: "daily", Priority: "0.9"},
			{Loc: base + "/#contact-form", LastMod: today, ChangeFreq: "monthly", Priority: "0.9"},
			{Loc: base + "/#faq", LastMod: today, ChangeFreq: "monthly", Priority: "0.8"},
			{Loc: base + "/#legal-services", LastMod: today, ChangeFreq: "monthly", Priority: "0.8"},
		},
	}

	posts, err := s.store.ListPosts(r.Context(), store.MaxListedPosts)
	if err != nil {
		zap.L().Warn("server: sitemap without posts", zap.Error(err))
	}
	for _, p := range posts {
		lastMod := today
		if len(p.PublishDate) >= 10 {
			lastMod = p.PublishDate[:10]
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + "/blog/" + strings.TrimPrefix(p.Slug, "/"),
			LastMod:    lastMod,
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Cache-Control", "public, max-age=3600, stale-while-revalidate=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}
