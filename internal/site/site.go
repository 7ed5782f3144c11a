// Package site holds the landing page's copy, shared by the terminal and
// HTML surfaces.
package site

const (
	Brand              = "agency.ai"
	HeroTitle          = "Turning imagination into digital impact"
	ContactTitle       = "Reach out to us"
	ContactDescription = "From strategy to execution, we craft digital solutions that move your business forward."
)

// Link is one navbar anchor
type Link struct {
	Label string
	Href  string
}

// NavLinks are the navbar anchors, in display order
var NavLinks = []Link{
	{Label: "Home", Href: "#"},
	{Label: "Services", Href: "#services"},
	{Label: "Our Work", Href: "#our-work"},
	{Label: "Contact Us", Href: "#contact-us"},
}
