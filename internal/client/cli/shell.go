package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/luma/gallery/internal/client/app"
	"github.com/luma/gallery/internal/core/domain"
)

const helpText = `commands:
  signup -name N -email E -password P -address A -phone PH [-role buyer|artist|curator] [-bio B]
  login <email> <password>
  logout
  gallery | profile | studio
  buy <artwork id>
  upload <title> <price> [Digital|Painting|Sculpture] [image path]
  remove <artwork id>
  edit <name|address|phone|bio> <value>
  avatar <image path>
  refresh
  quit
`

// Shell reads commands from in and writes screens and messages to out.
type Shell struct {
	app      *app.App
	in       *bufio.Scanner
	out      io.Writer
	readFile func(string) ([]byte, error)
}

func NewShell(a *app.App, in io.Reader, out io.Writer) *Shell {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Shell{app: a, in: sc, out: out, readFile: os.ReadFile}
}

// Run loads the client state and processes commands until quit, EOF or ctx
// cancellation.
func (s *Shell) Run(ctx context.Context) error {
	s.app.Load(ctx)
	s.render()

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			return s.in.Err()
		}

		cmd, args, err := ParseCommand(s.in.Text())
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}
		if cmd == CommandQuit {
			return nil
		}
		if err := s.Exec(ctx, cmd, args); err != nil {
			fmt.Fprintf(s.out, "%s\n", describe(err))
		}
		s.flushToasts()
	}
}

// Exec runs one command.
func (s *Shell) Exec(ctx context.Context, cmd Command, args []string) error {
	switch cmd {
	case CommandHelp:
		fmt.Fprint(s.out, helpText)
		return nil
	case CommandSignup:
		return s.signup(ctx, args)
	case CommandLogin:
		if len(args) != 2 {
			return errors.New("usage: login <email> <password>")
		}
		if err := s.app.Login(ctx, app.LoginForm{Email: args[0], Password: args[1]}); err != nil {
			return err
		}
	case CommandLogout:
		s.app.Logout(ctx)
	case CommandGallery:
		if err := s.app.Navigate(app.ViewGallery); err != nil {
			return err
		}
	case CommandProfile:
		if err := s.app.Navigate(app.ViewProfile); err != nil {
			return err
		}
	case CommandStudio:
		if err := s.app.Navigate(app.ViewDashboard); err != nil {
			return err
		}
	case CommandBuy:
		id, err := idArg(args)
		if err != nil {
			return err
		}
		if err := s.app.Buy(ctx, id); err != nil {
			return err
		}
	case CommandUpload:
		if err := s.upload(ctx, args); err != nil {
			return err
		}
	case CommandRemove:
		id, err := idArg(args)
		if err != nil {
			return err
		}
		if err := s.app.RemoveArtwork(ctx, id); err != nil {
			return err
		}
	case CommandEdit:
		if err := s.edit(ctx, args); err != nil {
			return err
		}
	case CommandAvatar:
		if len(args) != 1 {
			return errors.New("usage: avatar <image path>")
		}
		img, err := s.readFile(args[0])
		if err != nil {
			return err
		}
		if err := s.app.UpdateAvatar(ctx, img); err != nil {
			return err
		}
	case CommandRefresh:
		s.app.Load(ctx)
	default:
		if len(args) == 0 {
			return nil
		}
		return fmt.Errorf("unknown command %q, type help", args[0])
	}
	s.render()
	return nil
}

func (s *Shell) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	fs.SetOutput(s.out)

	var f app.SignupForm
	fs.StringVar(&f.Name, "name", "", "full name")
	fs.StringVar(&f.Role, "role", string(domain.RoleBuyer), "buyer, artist or curator")
	fs.StringVar(&f.Address, "address", "", "shipping address")
	fs.StringVar(&f.Phone, "phone", "", "phone number")
	fs.StringVar(&f.Bio, "bio", "", "short bio")
	fs.StringVar(&f.Email, "email", "", "email address")
	fs.StringVar(&f.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := s.app.Signup(ctx, f); err != nil {
		return err
	}
	s.render()
	return nil
}

func (s *Shell) upload(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return errors.New("usage: upload <title> <price> [category] [image path]")
	}
	f := app.UploadForm{Title: args[0], Price: args[1]}
	if len(args) > 2 {
		f.Category = args[2]
	}
	if len(args) > 3 {
		img, err := s.readFile(args[3])
		if err != nil {
			return err
		}
		f.Image = img
	}
	return s.app.UploadArtwork(ctx, f)
}

func (s *Shell) edit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: edit <name|address|phone|bio> <value>")
	}
	value := strings.Join(args[1:], " ")

	var f app.ProfileForm
	switch strings.ToLower(args[0]) {
	case "name":
		f.Name = &value
	case "address":
		f.Address = &value
	case "phone":
		f.Phone = &value
	case "bio":
		f.Bio = &value
	default:
		return fmt.Errorf("cannot edit %q", args[0])
	}
	return s.app.UpdateProfile(ctx, f)
}

func (s *Shell) render() {
	if err := s.app.Render(s.out); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}

func (s *Shell) flushToasts() {
	for _, t := range s.app.Toasts() {
		fmt.Fprintf(s.out, "* %s\n", t)
	}
}

func idArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one artwork id")
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid artwork id %q", args[0])
	}
	return id, nil
}

// describe turns flow errors into the messages the storefront shows.
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return "Email taken!"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, domain.ErrBuyerOnly):
		return "Please create a Buyer account to purchase."
	case errors.Is(err, domain.ErrArtistOnly):
		return "The Studio is for artist accounts."
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "Please log in first."
	case errors.Is(err, flag.ErrHelp):
		return ""
	default:
		return "error: " + err.Error()
	}
}
