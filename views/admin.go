package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/sabadvance/webzine"
)

// adminLayout is the stripped-down shell for the dashboard pages. It skips
// the public chrome and the tracking scripts.
func (v *viewSet) adminLayout(title string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="it">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="robots" content="noindex">
<title>%s | %s Admin</title>
<link rel="stylesheet" href="/public/admin.css">
</head>
<body class="admin">
`, esc(title), esc(v.cfg.Name))
		if err := body(w); err != nil {
			return err
		}
		fmt.Fprintf(w, "</body>\n</html>\n")
		return nil
	})
}

// AdminLogin renders the password form, with an error line on failure.
func (v *viewSet) AdminLogin(showError bool, csrfToken string) templ.Component {
	return v.adminLayout("Login", func(w io.Writer) error {
		fmt.Fprintf(w, `<section class="login">
<h1>%s Admin</h1>
<form method="post" action="/admin/login/">
<input type="hidden" name="_csrf" value="%s">
<label>Password
<input type="password" name="password" required autofocus>
</label>
`, esc(v.cfg.Name), esc(csrfToken))
		if showError {
			fmt.Fprintf(w, `<p class="error">Password errata.</p>`)
		}
		fmt.Fprintf(w, `<button type="submit">Accedi</button>
</form>
</section>`)
		return nil
	})
}

// AdminDashboard renders the post and category tables with a message banner.
func (v *viewSet) AdminDashboard(posts []webzine.Post, categories []webzine.Category, message string, csrfToken string) templ.Component {
	return v.adminLayout("Dashboard", func(w io.Writer) error {
		fmt.Fprintf(w, `<header class="admin-header">
<h1>Dashboard</h1>
<nav>
<a href="/admin/stats/">Statistiche</a>
<form method="post" action="/admin/logout/" class="inline">
<input type="hidden" name="_csrf" value="%s">
<button type="submit">Esci</button>
</form>
</nav>
</header>
`, esc(csrfToken))
		if message != "" {
			fmt.Fprintf(w, `<p class="banner">%s</p>`, esc(message))
		}

		fmt.Fprintf(w, `<section class="posts">
<h2>Articoli</h2>
<p><a class="button" href="/admin/post/new/">Nuovo articolo</a></p>
<table>
<thead><tr><th>Titolo</th><th>Stato</th><th>Pubblicato</th><th>Aggiornato</th><th></th></tr></thead>
<tbody>
`)
		for _, p := range posts {
			published := "-"
			if p.PublishedAt != nil {
				published = formatDate(p.PublishedAt)
			}
			fmt.Fprintf(w, `<tr>
<td><a href="/admin/post/%s/">%s</a></td>
<td>%s</td>
<td>%s</td>
<td>%s</td>
<td><button data-delete="/admin/post/%s/">Elimina</button></td>
</tr>
`, esc(p.Slug), esc(p.Title), esc(p.Status.String()), published,
				p.UpdatedAt.Format("02/01/2006 15:04"), esc(p.Slug))
		}
		fmt.Fprintf(w, `</tbody>
</table>
</section>
`)

		fmt.Fprintf(w, `<section class="categories">
<h2>Categorie</h2>
<table>
<thead><tr><th>Nome</th><th>Slug</th><th>Descrizione</th><th></th></tr></thead>
<tbody>
`)
		for _, cat := range categories {
			fmt.Fprintf(w, `<tr>
<td>%s</td>
<td>%s</td>
<td>%s</td>
<td><button data-delete="/admin/categories/%d/">Elimina</button></td>
</tr>
`, esc(cat.Name), esc(cat.Slug), esc(cat.Description), cat.ID)
		}
		fmt.Fprintf(w, `</tbody>
</table>
<form method="post" action="/admin/categories/save/">
<input type="hidden" name="_csrf" value="%s">
<input type="text" name="name" placeholder="Nuova categoria" required>
<input type="text" name="description" placeholder="Descrizione">
<button type="submit">Aggiungi</button>
</form>
</section>
`, esc(csrfToken))

		// Delete buttons go through fetch so the routes can stay DELETE.
		fmt.Fprintf(w, `<script>
document.addEventListener('click', function (ev) {
  var btn = ev.target.closest('[data-delete]');
  if (!btn) return;
  if (!confirm('Eliminare definitivamente?')) return;
  fetch(btn.getAttribute('data-delete'), {
    method: 'DELETE',
    headers: { 'X-CSRF-Token': %q }
  }).then(function () { window.location.reload(); });
});
</script>
`, csrfToken)
		return nil
	})
}

// AdminPostForm renders the editor for a post, new or existing.
func (v *viewSet) AdminPostForm(post webzine.Post, categories []webzine.Category, csrfToken string) templ.Component {
	return v.adminLayout("Editor", func(w io.Writer) error {
		publishedAt := ""
		if post.PublishedAt != nil {
			publishedAt = post.PublishedAt.Format("2006-01-02T15:04")
		}
		selected := make(map[int64]bool, len(post.Categories))
		for _, cat := range post.Categories {
			selected[cat.ID] = true
		}

		fmt.Fprintf(w, `<header class="admin-header">
<h1>Editor</h1>
<nav><a href="/admin/">Dashboard</a></nav>
</header>
<form method="post" action="/admin/save/" class="editor">
<input type="hidden" name="_csrf" value="%s">
<label>Titolo <input type="text" name="title" value="%s" required></label>
<label>Slug <input type="text" name="slug" value="%s" placeholder="generato dal titolo"></label>
<label>Autore <input type="text" name="author" value="%s"></label>
<label>Estratto <textarea name="excerpt" rows="3">%s</textarea></label>
<label>Contenuto <textarea name="body" rows="20">%s</textarea></label>
<label>Immagine in evidenza <input type="text" name="featured_image" value="%s" placeholder="URL"></label>
`, esc(csrfToken), esc(post.Title), esc(post.Slug), esc(post.Author),
			esc(post.Excerpt), esc(post.Body), esc(post.FeaturedImage))

		fmt.Fprintf(w, `<label>Stato <select name="status">`)
		for _, st := range []webzine.Status{webzine.StatusDraft, webzine.StatusPublished, webzine.StatusArchived} {
			sel := ""
			if post.Status == st {
				sel = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, st, sel, st)
		}
		fmt.Fprintf(w, `</select></label>
<label>Data di pubblicazione <input type="datetime-local" name="published_at" value="%s"></label>
`, esc(publishedAt))

		fmt.Fprintf(w, `<fieldset><legend>Categorie</legend>`)
		for _, cat := range categories {
			checked := ""
			if selected[cat.ID] {
				checked = " checked"
			}
			fmt.Fprintf(w, `<label class="checkbox"><input type="checkbox" name="category" value="%d"%s> %s</label>`,
				cat.ID, checked, esc(cat.Name))
		}
		fmt.Fprintf(w, `</fieldset>
<button type="submit">Salva</button>
</form>
`)
		return nil
	})
}
