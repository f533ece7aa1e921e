package views

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ChiSiamo renders the about page.
func (v *viewSet) ChiSiamo() templ.Component {
	return v.layout(pageMeta{
		Title: "Chi Siamo",
		Path:  "/chi-siamo/",
	}, func(w io.Writer) error {
		fmt.Fprintf(w, `<article class="page">
<h1>Chi Siamo</h1>
<p>%s è un magazine editoriale indipendente. Raccontiamo storie, idee e
tendenze con uno sguardo curioso e personale.</p>
<p>Per collaborazioni e segnalazioni puoi contattare la redazione.</p>
</article>`, esc(v.cfg.Name))
		return nil
	})
}

// Privacy renders the privacy policy page.
func (v *viewSet) Privacy() templ.Component {
	return v.layout(pageMeta{
		Title: "Privacy Policy",
		Path:  "/privacy/",
	}, func(w io.Writer) error {
		fmt.Fprintf(w, `<article class="page">
<h1>Privacy Policy</h1>
<p>Questo sito raccoglie esclusivamente dati aggregati di navigazione:
pagina visitata, user agent e un identificativo casuale di sessione
generato dal browser. Nessun dato è riconducibile a una persona.</p>
<p>I dati di visita vengono conservati per un massimo di 12 mesi e poi
eliminati automaticamente.</p>
</article>`)
		return nil
	})
}

// Cookies renders the cookie policy page.
func (v *viewSet) Cookies() templ.Component {
	return v.layout(pageMeta{
		Title: "Cookie Policy",
		Path:  "/cookies/",
	}, func(w io.Writer) error {
		fmt.Fprintf(w, `<article class="page">
<h1>Cookie Policy</h1>
<p>Questo sito utilizza soltanto cookie tecnici necessari al funzionamento
dell'area amministrativa. Non vengono usati cookie di profilazione né
strumenti di tracciamento di terze parti.</p>
</article>`)
		return nil
	})
}

// NotFound renders the 404 page.
func (v *viewSet) NotFound() templ.Component {
	return v.layout(pageMeta{
		Title: "Pagina non trovata",
	}, func(w io.Writer) error {
		fmt.Fprintf(w, `<article class="page error-page">
<h1>404</h1>
<p>La pagina che cerchi non esiste o è stata spostata.</p>
<p><a href="/">Torna alla home</a></p>
</article>`)
		return nil
	})
}

// ServerError renders the 500 page.
func (v *viewSet) ServerError() templ.Component {
	return v.layout(pageMeta{
		Title: "Errore",
	}, func(w io.Writer) error {
		fmt.Fprintf(w, `<article class="page error-page">
<h1>Si è verificato un errore</h1>
<p>Riprova tra qualche istante.</p>
<p><a href="/">Torna alla home</a></p>
</article>`)
		return nil
	})
}
