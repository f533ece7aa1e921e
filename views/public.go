package views

import (
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/sabadvance/webzine"
)

// Home renders the landing page: hero, latest posts, category overview.
func (v *viewSet) Home(posts []webzine.Post, categories []webzine.Category) templ.Component {
	return v.layout(pageMeta{
		Description: v.cfg.Description,
		Path:        "/",
		JSONLD:      webzine.WebsiteJsonLD(v.cfg),
	}, func(w io.Writer) error {
		fmt.Fprintf(w, `<section class="hero"><h1>%s</h1>`, esc(v.cfg.Name))
		if v.cfg.Description != "" {
			fmt.Fprintf(w, `<p>%s</p>`, esc(v.cfg.Description))
		}
		fmt.Fprintf(w, `</section>`)

		v.categoryNav(w, categories, "")

		fmt.Fprintf(w, `<section class="post-grid">`)
		for _, p := range posts {
			v.postCard(w, p)
		}
		if len(posts) == 0 {
			fmt.Fprintf(w, `<p class="empty">Nessun articolo pubblicato.</p>`)
		}
		fmt.Fprintf(w, `</section>`)
		fmt.Fprintf(w, `<p class="more"><a href="/blog/">Tutti gli articoli</a></p>`)

		v.chatWidget(w)
		return nil
	})
}

// BlogList renders the article index, optionally filtered by category.
func (v *viewSet) BlogList(posts []webzine.Post, activeCategory string, categories []webzine.Category) templ.Component {
	title := "Blog"
	path := "/blog/"
	for _, cat := range categories {
		if cat.Slug == activeCategory {
			title = cat.Name
			break
		}
	}
	return v.layout(pageMeta{
		Title: title,
		Path:  path,
	}, func(w io.Writer) error {
		fmt.Fprintf(w, `<h1>%s</h1>`, esc(title))
		v.categoryNav(w, categories, activeCategory)
		fmt.Fprintf(w, `<section class="post-grid">`)
		for _, p := range posts {
			v.postCard(w, p)
		}
		if len(posts) == 0 {
			fmt.Fprintf(w, `<p class="empty">Nessun articolo in questa categoria.</p>`)
		}
		fmt.Fprintf(w, `</section>`)
		return nil
	})
}

// Post renders a single article. safeBody is pre-sanitized HTML and is
// injected without further escaping.
func (v *viewSet) Post(post webzine.Post, safeBody string, share webzine.ShareLinks) templ.Component {
	return v.layout(pageMeta{
		Title:       post.Title,
		Description: post.Excerpt,
		Path:        post.Link,
		JSONLD:      webzine.ArticleJsonLD(v.cfg, post),
	}, func(w io.Writer) error {
		fmt.Fprintf(w, `<article class="post">`)
		fmt.Fprintf(w, `<h1>%s</h1>`, esc(post.Title))
		fmt.Fprintf(w, `<div class="post-meta">`)
		if post.Author != "" {
			fmt.Fprintf(w, `<span class="author">%s</span>`, esc(post.Author))
		}
		if post.PublishedAt != nil {
			fmt.Fprintf(w, `<time datetime="%s">%s</time>`,
				esc(post.PublishedAt.Format(time.RFC3339)), formatDate(post.PublishedAt))
		}
		fmt.Fprintf(w, `</div>`)
		if post.FeaturedImage != "" {
			fmt.Fprintf(w, `<img class="featured" src="%s" alt="%s">`,
				esc(post.FeaturedImage), esc(post.Title))
		}
		fmt.Fprintf(w, `<div class="post-body">%s</div>`, safeBody)

		fmt.Fprintf(w, `<div class="share-buttons">
<span>Condividi:</span>
<button data-share-url="%s">WhatsApp</button>
<button data-share-url="%s">Facebook</button>
<button data-share-url="%s">Twitter</button>
<button data-share-url="%s" data-share-copy>Copia link</button>
</div>`, esc(share.WhatsApp), esc(share.Facebook), esc(share.Twitter), esc(share.URL))

		if len(post.Categories) > 0 {
			fmt.Fprintf(w, `<ul class="category-pills">`)
			for _, cat := range post.Categories {
				fmt.Fprintf(w, `<li><a href="/blog/?category=%s">%s</a></li>`, esc(cat.Slug), esc(cat.Name))
			}
			fmt.Fprintf(w, `</ul>`)
		}
		fmt.Fprintf(w, `</article>`)
		return nil
	})
}

// chatWidget renders the chatbot container wired up by chatbot.js.
func (v *viewSet) chatWidget(w io.Writer) {
	fmt.Fprintf(w, `<section id="chatbot" class="chatbot">
<h2>Chiedi a %s</h2>
<div class="chatbot-log"></div>
<form>
<textarea maxlength="500" placeholder="Fai una domanda sui contenuti del blog..."></textarea>
<span class="chatbot-counter">0/500</span>
<button type="submit">Invia</button>
</form>
</section>`, esc(v.cfg.Name))
}
