package web

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/balkashynov/landing/internal/contact"
	"github.com/balkashynov/landing/internal/site"
	"github.com/balkashynov/landing/internal/theme"
)

// Toast is a one-shot notification rendered at the top of the page
type Toast struct {
	Success bool
	Text    string
}

// PageData is everything the landing page renders from
type PageData struct {
	Theme theme.Theme
	Toast *Toast
	// Form holds the values to re-render after a failed submission
	Form map[string]string
}

// Page renders the full landing document
func Page(data PageData) g.Node {
	palette := theme.PaletteFor(data.Theme)

	var notice g.Node
	if data.Toast != nil {
		notice = toast(data.Toast)
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			g.Attr("data-theme", string(data.Theme)),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(site.Brand)),
				StyleEl(g.Raw(stylesheet(palette))),
			),
			Body(
				Class("page"),
				navbar(data.Theme),
				notice,
				Header(Class("hero"), H1(g.Text(site.HeroTitle))),
				contactSection(data.Form),
			),
		),
	})
}

func navbar(current theme.Theme) g.Node {
	links := make([]g.Node, 0, len(site.NavLinks))
	for _, link := range site.NavLinks {
		links = append(links, A(Class("nav-link"), Href(link.Href), g.Text(link.Label)))
	}

	label := "Dark mode"
	if current == theme.Dark {
		label = "Light mode"
	}

	return Nav(
		Class("navbar"),
		A(Class("brand"), Href("/"), g.Text(site.Brand)),
		Div(Class("nav-links"), g.Group(links)),
		Form(
			Method("post"), Action("/theme"),
			Button(Type("submit"), Class("theme-toggle"), g.Text(label)),
		),
	)
}

func toast(t *Toast) g.Node {
	kind := "toast-error"
	if t.Success {
		kind = "toast-success"
	}
	return Div(Class("toast "+kind), Role("status"), g.Text(t.Text))
}

func contactSection(values map[string]string) g.Node {
	return Section(
		ID("contact-us"), Class("contact"),
		H2(Class("title"), g.Text(site.ContactTitle)),
		P(Class("desc"), g.Text(site.ContactDescription)),
		Form(
			Method("post"), Action("/contact"), Class("contact-form"),
			field("Your name", Input(Type("text"), Name(contact.FieldName), Placeholder("Enter your name"),
				Value(values[contact.FieldName]), Required())),
			field("Email id", Input(Type("email"), Name(contact.FieldEmail), Placeholder("Enter your email"),
				Value(values[contact.FieldEmail]), Required())),
			Div(
				Class("field wide"),
				P(Class("label"), g.Text("Message")),
				Textarea(Rows("8"), Name(contact.FieldMessage), Placeholder("Enter your message"),
					g.Text(values[contact.FieldMessage])),
			),
			Button(Type("submit"), Class("submit"), g.Text("Submit →")),
		),
	)
}

func field(label string, input g.Node) g.Node {
	return Div(
		Class("field"),
		P(Class("label"), g.Text(label)),
		input,
	)
}

func stylesheet(p theme.Palette) string {
	return fmt.Sprintf(`:root{--bg:%s;--surface:%s;--border:%s;--text:%s;--muted:%s;--accent:%s;--error:%s;--success:%s}
body{margin:0;font-family:system-ui,sans-serif;background:var(--bg);color:var(--text)}
.navbar{display:flex;align-items:center;justify-content:space-between;padding:1rem 3rem;position:sticky;top:0;background:var(--bg)}
.brand{font-weight:700;color:var(--accent);text-decoration:none}
.nav-links{display:flex;gap:1.5rem}
.nav-link{color:var(--text);text-decoration:none}
.theme-toggle{border:1px solid var(--border);background:var(--surface);color:var(--text);border-radius:999px;padding:.4rem 1rem;cursor:pointer}
.toast{margin:1rem auto;max-width:42rem;padding:.75rem 1rem;border-radius:.5rem;color:#fff}
.toast-success{background:var(--success)}
.toast-error{background:var(--error)}
.hero{text-align:center;padding:5rem 1rem 0}
.hero h1{font-size:3rem;margin:0;color:var(--accent)}
.contact{display:flex;flex-direction:column;align-items:center;gap:1.75rem;padding:7.5rem 1rem 4rem}
.title{font-size:2.5rem;margin:0}
.desc{color:var(--muted);max-width:32rem;text-align:center;margin:0}
.contact-form{display:grid;grid-template-columns:1fr;gap:.75rem;max-width:42rem;width:100%%}
@media(min-width:640px){.contact-form{grid-template-columns:1fr 1fr;gap:1.25rem}.wide{grid-column:span 2}}
.label{margin:0 0 .5rem;font-size:.875rem;font-weight:500}
input,textarea{width:100%%;box-sizing:border-box;padding:.75rem;font-size:.875rem;border:1px solid var(--border);border-radius:.5rem;background:transparent;color:var(--text)}
.submit{width:max-content;background:var(--accent);color:#fff;border:0;border-radius:999px;padding:.75rem 2.5rem;cursor:pointer}
`, p.Background, p.Surface, p.Border, p.PrimaryText, p.SecondaryText, p.Accent, p.Error, p.Success)
}
