// Package shared contains components used by more than one page.
package shared

// Page is embedded by page types to share the document title and the
// site chrome.
type Page struct {
	Title   string
	Tagline string
}

// Banner returns the site banner for this page.
func (p Page) Banner() Banner {
	return Banner{Title: p.Title, Tagline: p.Tagline}
}

// Footer returns the site footer.
func (p Page) Footer() Footer {
	return Footer{}
}
