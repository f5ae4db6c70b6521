package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"shopfront.dev/app/internal/modules/catalog"
)

// Fixed texts shown on the admin page.
const (
	MsgCreated          = "Product created successfully 🎉"
	MsgCreateFailed     = "Error creating product. Check backend / CORS."
	MsgInFlight         = "This product is already being submitted. Please wait."
	MsgAlreadySubmitted = "This form was already submitted."
)

// State of one form token. An unknown token is idle; Begin moves it to
// Submitting, then Complete to Done or Release back to idle so the same
// form can be retried.
type State string

const (
	StateSubmitting State = "submitting"
	StateDone       State = "done"
)

var (
	ErrMissingToken       = errors.New("missing submission token")
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrAlreadySubmitted   = errors.New("form already submitted")
	ErrCreateFailed       = errors.New("create product failed")
)

// TokenStore tracks submission state per form token.
type TokenStore interface {
	// Begin moves an idle token to submitting. It returns
	// ErrSubmissionInFlight or ErrAlreadySubmitted otherwise.
	Begin(ctx context.Context, token string) error
	Complete(ctx context.Context, token string) error
	Release(ctx context.Context, token string) error
}

type Creator interface {
	Create(ctx context.Context, in catalog.CreateProductInput) (catalog.Product, error)
}

type Submitter struct {
	creator Creator
	tokens  TokenStore
	log     *slog.Logger
}

func NewSubmitter(creator Creator, tokens TokenStore, l *slog.Logger) *Submitter {
	return &Submitter{creator: creator, tokens: tokens, log: l}
}

// Submit parses the form and posts it once per token. Parse failures do not
// consume the token.
func (s *Submitter) Submit(ctx context.Context, form ProductForm) (catalog.Product, error) {
	token := strings.TrimSpace(form.Token)
	if token == "" {
		return catalog.Product{}, ErrMissingToken
	}

	in, err := form.Payload()
	if err != nil {
		return catalog.Product{}, err
	}

	if err := s.tokens.Begin(ctx, token); err != nil {
		return catalog.Product{}, err
	}

	// token bookkeeping must survive a client that went away mid-request
	bg := context.WithoutCancel(ctx)

	p, err := s.creator.Create(ctx, in)
	if err != nil {
		s.log.ErrorContext(ctx, "admin create failed",
			slog.String("name", in.Name),
			slog.Any("err", err),
		)
		if rerr := s.tokens.Release(bg, token); rerr != nil {
			s.log.WarnContext(ctx, "submission token release failed", slog.Any("err", rerr))
		}
		return catalog.Product{}, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}

	if err := s.tokens.Complete(bg, token); err != nil {
		s.log.WarnContext(ctx, "submission token complete failed", slog.Any("err", err))
	}
	s.log.InfoContext(ctx, "product created", slog.Int64("product_id", p.ID), slog.String("name", p.Name))
	return p, nil
}

// Message maps a Submit result to the text shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return MsgCreated
	case errors.Is(err, ErrSubmissionInFlight):
		return MsgInFlight
	case errors.Is(err, ErrAlreadySubmitted):
		return MsgAlreadySubmitted
	default:
		return MsgCreateFailed
	}
}
