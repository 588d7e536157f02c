package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/luma/gallery/internal/core/domain"
)

const (
	noOrdersText    = "No orders found. Go to the Gallery to buy art!"
	noPortfolioText = "You haven't uploaded any art yet. Go to Studio!"
)

// Render writes the current screen: the auth prompt when logged out,
// otherwise the navigation bar and the selected view.
func (a *App) Render(w io.Writer) error {
	if a.session == nil {
		_, err := fmt.Fprint(w, "LUMA GALLERY\nMembers Only Access\n\n  signup   create an account\n  login    enter the gallery\n")
		return err
	}

	r := &renderer{w: w}
	r.nav(a.session, a.view)
	switch a.view {
	case ViewProfile:
		r.profile(a.session, a.Portfolio(a.session.User.Name))
	case ViewDashboard:
		r.dashboard(a.session, a.Portfolio(a.session.User.Name))
	default:
		r.gallery(a.session, a.artworks)
	}
	return r.err
}

// renderer remembers the first write error so the view code can ignore them.
type renderer struct {
	w   io.Writer
	err error
}

func (r *renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *renderer) nav(s *Session, current View) {
	items := domain.SwitchRole[[]View](s.User.Role, navItems{})
	labels := make([]string, 0, len(items))
	for _, v := range items {
		label := viewLabel(v)
		if v == current {
			label = "[" + label + "]"
		}
		labels = append(labels, label)
	}
	r.printf("LUMA ULTIMATE  %s  |  %s (%s) %s\n\n",
		strings.Join(labels, " "), s.User.Name, strings.ToUpper(string(s.User.Role)), avatarBadge(s.User))
}

func (r *renderer) gallery(s *Session, art []domain.Artwork) {
	r.printf("Live Collection\n\n")
	canBuy := domain.SwitchRole[bool](s.User.Role, buyAction{})

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	for _, w := range art {
		action := ""
		if canBuy {
			action = "Buy " + w.Price.Display()
		}
		if r.err == nil {
			_, r.err = fmt.Fprintf(tw, "#%d\t%s\t%s by %s\t%s\n", w.ID, w.Title, w.Category, w.Artist, action)
		}
	}
	if r.err == nil {
		r.err = tw.Flush()
	}
}

func (r *renderer) profile(s *Session, portfolio []domain.Artwork) {
	u := s.User
	r.printf("%s\n%s\n%s\n\n", u.Name, u.Email, strings.ToUpper(string(u.Role)))
	r.printf("Address: %s\n", orDefault(u.Address, "No address set"))
	r.printf("Phone:   %s\n", orDefault(u.Phone, "No phone set"))
	r.printf("\"%s\"\n\n", orDefault(u.Bio, "No bio available"))

	domain.SwitchRole[func(*renderer)](u.Role, profileSection{user: u, portfolio: portfolio})(r)
}

func (r *renderer) dashboard(s *Session, portfolio []domain.Artwork) {
	r.printf("Artist Studio\n\n")
	r.printf("  upload <title> <price> [category] [image path]   publish an artwork\n")
	r.printf("  remove <id>                                      take down one of your works\n\n")
	r.printf("Published by %s: %d\n", s.User.Name, len(portfolio))
}

func viewLabel(v View) string {
	switch v {
	case ViewDashboard:
		return "Studio"
	case ViewProfile:
		return "Profile"
	default:
		return "Gallery"
	}
}

func avatarBadge(u domain.User) string {
	if u.Avatar != "" {
		return "(avatar)"
	}
	return "(" + u.Initial() + ")"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// navItems lists the views each role can open.
type navItems struct{}

func (navItems) Buyer() []View   { return []View{ViewGallery, ViewProfile} }
func (navItems) Artist() []View  { return []View{ViewGallery, ViewDashboard, ViewProfile} }
func (navItems) Curator() []View { return []View{ViewGallery, ViewProfile} }
func (navItems) Unknown(string) []View {
	return []View{ViewGallery, ViewProfile}
}

// buyAction reports whether the gallery offers a Buy action.
type buyAction struct{}

func (buyAction) Buyer() bool         { return true }
func (buyAction) Artist() bool        { return false }
func (buyAction) Curator() bool       { return false }
func (buyAction) Unknown(string) bool { return false }

// profileSection picks the role-specific block under the profile card.
type profileSection struct {
	user      domain.User
	portfolio []domain.Artwork
}

func (p profileSection) Buyer() func(*renderer) {
	return func(r *renderer) {
		r.printf("My Collection\n")
		if len(p.user.Orders) == 0 {
			r.printf("%s\n", noOrdersText)
			return
		}
		for _, o := range p.user.Orders {
			r.printf("  %s  Purchased on %s  %s\n", o.Title, o.Date, o.Price.Display())
		}
	}
}

func (p profileSection) Artist() func(*renderer) {
	return func(r *renderer) {
		r.printf("My Portfolio\n")
		if len(p.portfolio) == 0 {
			r.printf("%s\n", noPortfolioText)
			return
		}
		for _, w := range p.portfolio {
			r.printf("  #%d %s  %s\n", w.ID, w.Title, w.Price.Display())
		}
	}
}

func (p profileSection) Curator() func(*renderer)       { return func(*renderer) {} }
func (p profileSection) Unknown(string) func(*renderer) { return func(*renderer) {} }
