// Package app holds the marketplace client state and its flows: signup,
// login, browsing, purchasing, profile edits and artist uploads. Views are
// rendered as text by Render.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/luma/gallery/internal/core/domain"
	"github.com/luma/gallery/internal/core/ports"
	"github.com/luma/gallery/internal/core/service"
)

var (
	ErrArtworkNotFound = errors.New("artwork not found")
	ErrNotOwner        = errors.New("artwork belongs to another artist")
	ErrUnknownView     = errors.New("unknown view")
)

// Toast messages shown after each flow.
const (
	MsgProfileUpdated  = "Profile Updated!"
	MsgProfileFailed   = "Failed to update profile"
	MsgUploadOK        = "Artwork Uploaded Successfully!"
	MsgUploadFailed    = "Failed to upload artwork"
	MsgOrderPlaced     = "Order Placed! Check your Profile."
	MsgArtworkRemoved  = "Artwork Removed"
	MsgRemoveFailed    = "Failed to remove artwork"
	welcomeBackPattern = "Welcome back, %s"
)

// View is the screen shown to a logged-in user.
type View string

const (
	ViewGallery   View = "gallery"
	ViewProfile   View = "profile"
	ViewDashboard View = "dashboard"
)

// Gateway is the record API as the client uses it.
type Gateway interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	AddUser(ctx context.Context, u domain.User) (domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) (domain.User, error)
	ListArtworks(ctx context.Context) ([]domain.Artwork, error)
	AddArtwork(ctx context.Context, a domain.Artwork) (domain.Artwork, error)
	DeleteArtwork(ctx context.Context, id int64) error
}

// SessionStore persists the logged-in user.
type SessionStore interface {
	Get(ctx context.Context) (*domain.User, error)
	Set(ctx context.Context, u domain.User) error
	Clear(ctx context.Context) error
}

// Session is the logged-in identity. Views that depend on who is looking
// receive it explicitly.
type Session struct {
	User domain.User
}

// App is the client state machine. It is not safe for concurrent use.
type App struct {
	gateway  Gateway
	sessions SessionStore
	validate *formValidator
	orderIDs ports.IDGenerator
	now      func() time.Time
	logger   zerolog.Logger

	users    []domain.User
	artworks []domain.Artwork
	session  *Session
	view     View
	toasts   []string
}

// Option customises an App.
type Option func(*App)

// WithClock replaces the wall clock used for order dates.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithOrderIDs replaces the order id source.
func WithOrderIDs(ids ports.IDGenerator) Option {
	return func(a *App) { a.orderIDs = ids }
}

func New(gateway Gateway, sessions SessionStore, logger zerolog.Logger, opts ...Option) *App {
	a := &App{
		gateway:  gateway,
		sessions: sessions,
		validate: newFormValidator(),
		orderIDs: service.NewIDAllocator(),
		now:      time.Now,
		logger:   logger,
		users:    []domain.User{},
		artworks: []domain.Artwork{},
		view:     ViewGallery,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load fetches both collections and restores a stored session. Fetch
// failures leave the collection empty.
func (a *App) Load(ctx context.Context) {
	users, err := a.gateway.ListUsers(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to fetch users")
		users = []domain.User{}
	}
	art, err := a.gateway.ListArtworks(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to fetch art")
		art = []domain.Artwork{}
	}
	a.users, a.artworks = users, art

	stored, err := a.sessions.Get(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to read session")
		return
	}
	if stored != nil {
		a.session = &Session{User: *stored}
	}
}

// Signup creates an account and logs it in. The email must not already be
// in the loaded user list (exact match).
func (a *App) Signup(ctx context.Context, f SignupForm) error {
	if err := a.validate.Validate(f); err != nil {
		return err
	}
	if f.Role == "" {
		f.Role = string(domain.RoleBuyer)
	}
	for _, u := range a.users {
		if u.Email == f.Email {
			return domain.ErrEmailTaken
		}
	}

	created, err := a.gateway.AddUser(ctx, domain.User{
		Email:    f.Email,
		Password: f.Password,
		Name:     f.Name,
		Role:     domain.Role(f.Role),
		Address:  f.Address,
		Phone:    f.Phone,
		Bio:      f.Bio,
		Orders:   []domain.Order{},
	})
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to add user")
		return fmt.Errorf("create account: %w", err)
	}

	a.users = append(a.users, created)
	a.login(ctx, created)
	return nil
}

// Login matches email and password exactly against the loaded users.
func (a *App) Login(ctx context.Context, f LoginForm) error {
	if err := a.validate.Validate(f); err != nil {
		return err
	}
	for _, u := range a.users {
		if u.Email == f.Email && u.Password == f.Password {
			a.login(ctx, u)
			return nil
		}
	}
	return domain.ErrInvalidCredentials
}

func (a *App) login(ctx context.Context, u domain.User) {
	a.session = &Session{User: u}
	if err := a.sessions.Set(ctx, u); err != nil {
		a.logger.Warn().Err(err).Msg("failed to store session")
	}
	a.notify(fmt.Sprintf(welcomeBackPattern, u.Name))
}

// Logout forgets the session and returns to the gallery.
func (a *App) Logout(ctx context.Context) {
	a.session = nil
	a.view = ViewGallery
	if err := a.sessions.Clear(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("failed to clear session")
	}
}

// Navigate switches view. The dashboard is for artists only.
func (a *App) Navigate(v View) error {
	if a.session == nil {
		return domain.ErrNotAuthenticated
	}
	switch v {
	case ViewGallery, ViewProfile:
	case ViewDashboard:
		if a.session.User.Role != domain.RoleArtist {
			return domain.ErrArtistOnly
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownView, v)
	}
	a.view = v
	return nil
}

// UpdateProfile changes the non-nil fields of the current user.
func (a *App) UpdateProfile(ctx context.Context, f ProfileForm) error {
	if a.session == nil {
		return domain.ErrNotAuthenticated
	}
	u := a.session.User
	if f.Name != nil {
		u.Name = *f.Name
	}
	if f.Address != nil {
		u.Address = *f.Address
	}
	if f.Phone != nil {
		u.Phone = *f.Phone
	}
	if f.Bio != nil {
		u.Bio = *f.Bio
	}
	return a.saveUser(ctx, u)
}

// UpdateAvatar stores image content as the user's avatar data URL.
func (a *App) UpdateAvatar(ctx context.Context, image []byte) error {
	if a.session == nil {
		return domain.ErrNotAuthenticated
	}
	url, err := dataURL(image)
	if err != nil {
		return err
	}
	u := a.session.User
	u.Avatar = url
	return a.saveUser(ctx, u)
}

// saveUser sends the whole user and, on success, refreshes the session and
// the cached list entry.
func (a *App) saveUser(ctx context.Context, u domain.User) error {
	saved, err := a.gateway.UpdateUser(ctx, u)
	if err != nil {
		a.logger.Error().Err(err).Int64("id", u.ID).Msg("failed to update user")
		a.notify(MsgProfileFailed)
		return err
	}

	a.session = &Session{User: saved}
	for i := range a.users {
		if a.users[i].ID == saved.ID {
			a.users[i] = saved
		}
	}
	if err := a.sessions.Set(ctx, saved); err != nil {
		a.logger.Warn().Err(err).Msg("failed to store session")
	}
	a.notify(MsgProfileUpdated)
	return nil
}

// UploadArtwork publishes a new artwork credited to the current artist.
func (a *App) UploadArtwork(ctx context.Context, f UploadForm) error {
	if a.session == nil {
		return domain.ErrNotAuthenticated
	}
	if a.session.User.Role != domain.RoleArtist {
		return domain.ErrArtistOnly
	}
	if err := a.validate.Validate(f); err != nil {
		return err
	}

	price, err := domain.ParsePrice(f.Price)
	if err != nil {
		return fmt.Errorf("price must be a number: %w", err)
	}
	category := domain.Category(f.Category)
	if category == "" {
		category = domain.CategoryDigital
	}
	img := domain.PlaceholderArtworkImage
	if len(f.Image) > 0 {
		if img, err = dataURL(f.Image); err != nil {
			return err
		}
	}

	created, err := a.gateway.AddArtwork(ctx, domain.Artwork{
		Title:    f.Title,
		Artist:   a.session.User.Name,
		Price:    price,
		Category: category,
		Img:      img,
	})
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to add art")
		a.notify(MsgUploadFailed)
		return err
	}

	a.artworks = append([]domain.Artwork{created}, a.artworks...)
	a.notify(MsgUploadOK)
	return nil
}

// Buy records an order for the artwork on the current buyer. There is no
// stock: the same artwork can be bought any number of times.
func (a *App) Buy(ctx context.Context, artworkID int64) error {
	if a.session == nil {
		return domain.ErrNotAuthenticated
	}
	if a.session.User.Role != domain.RoleBuyer {
		return domain.ErrBuyerOnly
	}
	art, ok := a.findArtwork(artworkID)
	if !ok {
		return ErrArtworkNotFound
	}

	order := domain.Order{
		ID:    a.orderIDs.Next(),
		Title: art.Title,
		Price: art.Price,
		Date:  a.now().Format(domain.OrderDateLayout),
		Img:   art.Img,
	}
	u := a.session.User
	u.Orders = append([]domain.Order{order}, u.Orders...)

	if err := a.saveUser(ctx, u); err != nil {
		return err
	}
	a.notify(MsgOrderPlaced)
	return nil
}

// RemoveArtwork deletes one of the current artist's own works.
func (a *App) RemoveArtwork(ctx context.Context, artworkID int64) error {
	if a.session == nil {
		return domain.ErrNotAuthenticated
	}
	if a.session.User.Role != domain.RoleArtist {
		return domain.ErrArtistOnly
	}
	art, ok := a.findArtwork(artworkID)
	if !ok {
		return ErrArtworkNotFound
	}
	if art.Artist != a.session.User.Name {
		return ErrNotOwner
	}

	if err := a.gateway.DeleteArtwork(ctx, artworkID); err != nil {
		a.logger.Error().Err(err).Int64("id", artworkID).Msg("failed to delete art")
		a.notify(MsgRemoveFailed)
		return err
	}

	kept := a.artworks[:0]
	for _, w := range a.artworks {
		if w.ID != artworkID {
			kept = append(kept, w)
		}
	}
	a.artworks = kept
	a.notify(MsgArtworkRemoved)
	return nil
}

func (a *App) findArtwork(id int64) (domain.Artwork, bool) {
	for _, w := range a.artworks {
		if w.ID == id {
			return w, true
		}
	}
	return domain.Artwork{}, false
}

// Portfolio lists the artworks credited to name.
func (a *App) Portfolio(name string) []domain.Artwork {
	var out []domain.Artwork
	for _, w := range a.artworks {
		if w.Artist == name {
			out = append(out, w)
		}
	}
	return out
}

func (a *App) notify(msg string) {
	a.toasts = append(a.toasts, msg)
}

// Toasts returns and clears pending notifications.
func (a *App) Toasts() []string {
	out := a.toasts
	a.toasts = nil
	return out
}

// Session returns the logged-in session, or nil.
func (a *App) Session() *Session { return a.session }

func (a *App) View() View { return a.view }

func (a *App) Users() []domain.User { return a.users }

func (a *App) Artworks() []domain.Artwork { return a.artworks }
