package shared

import "github.com/rohanthewiz/element"

// Footer is the site footer.
type Footer struct{}

// Render implements element.Component.
func (f Footer) Render(b *element.Builder) any {
	b.Footer("class", "site-footer").R(
		b.P().T("CineMatch &copy; 2025 &middot; Recommendations powered by content similarity"),
	)
	return nil
}
