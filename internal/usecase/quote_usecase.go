package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"fieldservice_billing/internal/domain/entities"
	"fieldservice_billing/internal/domain/expiry"
	"fieldservice_billing/internal/domain/gate"
	"fieldservice_billing/internal/domain/shared"
	"fieldservice_billing/internal/domain/signature"
	"fieldservice_billing/internal/infrastructure/cache"
	"fieldservice_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateQuoteInput is what a business submits to draft a quote.
type CreateQuoteInput struct {
	ServiceID       string
	ClientID        string
	ValidUntil      time.Time
	TermsConditions string
	Notes           string
}

// UpdateQuoteInput carries the edit and, when non-zero, the version the caller
// last saw.
type UpdateQuoteInput struct {
	Edit    entities.QuoteEdit
	Version int
}

// TransitionPayload is the optional data a transition needs.
type TransitionPayload struct {
	Signature signature.Input
}

// IQuoteUseCase drives the quote lifecycle.
//
//   - Send: DRAFT -> SENT, gated, notifies the client, starts the countdown.
//   - Sign: SENT -> SIGNED with a captured signature.
//   - Decline: SENT -> DECLINED.
type IQuoteUseCase interface {
	Create(ctx context.Context, in CreateQuoteInput) (entities.Quote, error)
	Get(ctx context.Context, id string) (entities.Quote, error)
	Update(ctx context.Context, id string, in UpdateQuoteInput) (entities.Quote, error)
	Send(ctx context.Context, id string) (entities.Quote, error)
	Sign(ctx context.Context, id string, sig signature.Input) (entities.Quote, error)
	Decline(ctx context.Context, id string) (entities.Quote, error)
	ApplyTransition(ctx context.Context, id string, kind entities.TransitionKind, payload TransitionPayload) (entities.Quote, error)
	ValidateTransition(ctx context.Context, id string, kind entities.TransitionKind) ([]gate.Reason, error)
	EffectiveStatus(ctx context.Context, id string) (entities.QuoteStatus, error)
}

type QuoteUseCase struct {
	quotes     interfaces.IQuoteRepository
	clients    interfaces.IClientRepository
	services   interfaces.IServiceRepository
	notifier   interfaces.INotifier
	signatures interfaces.ISignatureStore
	countdowns *expiry.Registry
	options
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

// NewQuoteUseCase wires the quote lifecycle. countdownInterval is the
// re-evaluation period of the per-quote expiry countdowns.
func NewQuoteUseCase(
	quotes interfaces.IQuoteRepository,
	clients interfaces.IClientRepository,
	services interfaces.IServiceRepository,
	notifier interfaces.INotifier,
	signatures interfaces.ISignatureStore,
	countdownInterval time.Duration,
	opts ...Option,
) *QuoteUseCase {
	u := &QuoteUseCase{
		quotes:     quotes,
		clients:    clients,
		services:   services,
		notifier:   notifier,
		signatures: signatures,
		options:    newOptions(opts),
	}
	u.countdowns = expiry.NewRegistry(countdownInterval, u.now, u.onExpired)
	return u
}

// Close stops every running countdown.
func (u *QuoteUseCase) Close() {
	u.countdowns.Close()
}

// Counting reports whether quote id has a live countdown.
func (u *QuoteUseCase) Counting(id string) bool {
	return u.countdowns.Tracked(id)
}

func (u *QuoteUseCase) Create(ctx context.Context, in CreateQuoteInput) (q entities.Quote, err error) {
	defer func() { u.observe("quote", "create", err) }()
	log := u.logger(ctx)

	svc, err := u.services.GetByID(ctx, strings.TrimSpace(in.ServiceID))
	if err != nil {
		return entities.Quote{}, err
	}
	if svc.ID == "" {
		return entities.Quote{}, notFound("service", in.ServiceID)
	}
	client, err := u.clients.GetByID(ctx, strings.TrimSpace(in.ClientID))
	if err != nil {
		return entities.Quote{}, err
	}
	if client.ID == "" {
		return entities.Quote{}, notFound("client", in.ClientID)
	}

	now := u.clock()
	id := uuid.NewString()
	q, err = entities.NewQuote(id, entities.DocumentNumber("Q", now, id), svc.ID, client.ID, in.ValidUntil, in.TermsConditions, in.Notes, now)
	if err != nil {
		return entities.Quote{}, err
	}
	q, err = u.quotes.Create(ctx, q)
	if err != nil {
		log.Error("[quote][usecase] create failed", zap.String("service_id", svc.ID), zap.Error(err))
		return entities.Quote{}, err
	}
	u.invalidate(ctx, cache.QuoteCreated, cache.Refs{QuoteID: q.ID})
	log.Info("[quote][usecase] created", zap.String("quote_id", q.ID), zap.String("quote_number", q.QuoteNumber))
	return q, nil
}

func (u *QuoteUseCase) Get(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, invalidInput("quote id is required")
	}
	q, err := cached(ctx, u.options, cache.QuoteKey(id),
		func() (entities.Quote, error) { return u.quotes.GetByID(ctx, id) },
		func(q entities.Quote) bool { return q.ID != "" })
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, notFound("quote", id)
	}
	return q, nil
}

// load reads the committed quote, bypassing the cache. Every write starts here.
func (u *QuoteUseCase) load(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, invalidInput("quote id is required")
	}
	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, notFound("quote", id)
	}
	return q, nil
}

func (u *QuoteUseCase) Update(ctx context.Context, id string, in UpdateQuoteInput) (q entities.Quote, err error) {
	defer func() { u.observe("quote", "update", err) }()

	q, err = u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if in.Version != 0 && in.Version != q.Version {
		return entities.Quote{}, staleVersion("quote", q.ID, in.Version, q.Version)
	}
	read := q.Version
	if err := q.ApplyEdit(in.Edit, u.clock()); err != nil {
		return entities.Quote{}, err
	}
	q, err = u.quotes.Update(ctx, q, read)
	if err != nil {
		return entities.Quote{}, err
	}
	u.invalidate(ctx, cache.QuoteUpdated, cache.Refs{QuoteID: q.ID})

	// A SENT quote whose deadline moved gets a fresh countdown.
	if q.Status == entities.QuoteStatusSent && in.Edit.ValidUntil != nil {
		u.countdowns.Track(q.ID, q.ValidUntil)
	}
	return q, nil
}

func (u *QuoteUseCase) Send(ctx context.Context, id string) (q entities.Quote, err error) {
	defer func() { u.observe("quote", "send", err) }()
	log := u.logger(ctx)

	q, err = u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	client, svc, err := u.siblings(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}

	read := q.Version
	if err := q.Send(client, svc, u.clock()); err != nil {
		log.Info("[quote][usecase] send rejected", zap.String("quote_id", q.ID), zap.Error(err))
		return entities.Quote{}, err
	}
	q, err = u.quotes.Update(ctx, q, read)
	if err != nil {
		return entities.Quote{}, err
	}
	u.invalidate(ctx, cache.QuoteSent, cache.Refs{QuoteID: q.ID})
	u.countdowns.Track(q.ID, q.ValidUntil)

	if nerr := u.notifier.QuoteSent(ctx, q, client); nerr != nil {
		u.observe("quote", "notify", nerr)
		log.Warn("[quote][usecase] notification failed", zap.String("quote_id", q.ID), zap.Error(nerr))
	}
	log.Info("[quote][usecase] sent", zap.String("quote_id", q.ID), zap.Time("valid_until", q.ValidUntil))
	return q, nil
}

// Sign captures the signature, re-reads the client and service as they are
// now, stores the artifact and commits against the version read first.
func (u *QuoteUseCase) Sign(ctx context.Context, id string, sig signature.Input) (q entities.Quote, err error) {
	defer func() { u.observe("quote", "sign", err) }()
	log := u.logger(ctx)

	q, err = u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := q.CanDecide(entities.TransitionSign, u.clock()); err != nil {
		return entities.Quote{}, err
	}
	artifact, err := signature.Capture(sig)
	if err != nil {
		return entities.Quote{}, err
	}

	client, svc, err := u.siblings(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	if reasons := entities.SignPreconditions(&client, &svc); !gate.Passed(reasons) {
		return entities.Quote{}, shared.NewValidationError(reasons)
	}

	ref, err := u.signatures.Put(ctx, q.ID, artifact)
	if err != nil {
		log.Error("[quote][usecase] signature upload failed", zap.String("quote_id", q.ID), zap.Error(err))
		return entities.Quote{}, shared.Upstream("signature store", err)
	}

	read := q.Version
	if err := q.Sign(ref, u.clock()); err != nil {
		return entities.Quote{}, err
	}
	q, err = u.quotes.Update(ctx, q, read)
	if err != nil {
		if errors.Is(err, shared.ErrConflict) {
			log.Info("[quote][usecase] sign lost race", zap.String("quote_id", id))
		}
		return entities.Quote{}, err
	}
	u.countdowns.Untrack(q.ID)
	u.invalidate(ctx, cache.QuoteSigned, cache.Refs{QuoteID: q.ID})
	log.Info("[quote][usecase] signed", zap.String("quote_id", q.ID), zap.String("signature_ref", ref))
	return q, nil
}

func (u *QuoteUseCase) Decline(ctx context.Context, id string) (q entities.Quote, err error) {
	defer func() { u.observe("quote", "decline", err) }()

	q, err = u.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	read := q.Version
	if err := q.Decline(u.clock()); err != nil {
		return entities.Quote{}, err
	}
	q, err = u.quotes.Update(ctx, q, read)
	if err != nil {
		return entities.Quote{}, err
	}
	u.countdowns.Untrack(q.ID)
	u.invalidate(ctx, cache.QuoteDeclined, cache.Refs{QuoteID: q.ID})
	u.logger(ctx).Info("[quote][usecase] declined", zap.String("quote_id", q.ID))
	return q, nil
}

func (u *QuoteUseCase) ApplyTransition(ctx context.Context, id string, kind entities.TransitionKind, payload TransitionPayload) (entities.Quote, error) {
	switch kind {
	case entities.TransitionSend:
		return u.Send(ctx, id)
	case entities.TransitionSign:
		return u.Sign(ctx, id, payload.Signature)
	case entities.TransitionDecline:
		return u.Decline(ctx, id)
	}
	return entities.Quote{}, invalidInput("unsupported quote transition " + string(kind))
}

// ValidateTransition previews the gate for kind against the current records.
// Sign also reports the client and service checks it re-runs at commit.
func (u *QuoteUseCase) ValidateTransition(ctx context.Context, id string, kind entities.TransitionKind) ([]gate.Reason, error) {
	switch kind {
	case entities.TransitionSend, entities.TransitionSign, entities.TransitionDecline:
	default:
		return nil, invalidInput("unsupported quote transition " + string(kind))
	}
	q, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	client, svc, err := u.siblings(ctx, q)
	if err != nil {
		return nil, err
	}
	reasons := entities.ValidateTransition(kind, entities.TransitionContext{
		Quote:   &q,
		Client:  &client,
		Service: &svc,
		Now:     u.clock(),
	})
	if kind == entities.TransitionSign {
		reasons = append(reasons, entities.SignPreconditions(&client, &svc)...)
	}
	return reasons, nil
}

func (u *QuoteUseCase) EffectiveStatus(ctx context.Context, id string) (entities.QuoteStatus, error) {
	q, err := u.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return q.EffectiveStatus(u.clock()), nil
}

// siblings reads the client and service a quote points at. Missing records
// come back zero-valued so the gate reports them as inactive.
func (u *QuoteUseCase) siblings(ctx context.Context, q entities.Quote) (entities.Client, entities.Service, error) {
	client, err := u.clients.GetByID(ctx, q.ClientID)
	if err != nil {
		return entities.Client{}, entities.Service{}, err
	}
	svc, err := u.services.GetByID(ctx, q.ServiceID)
	if err != nil {
		return entities.Client{}, entities.Service{}, err
	}
	return client, svc, nil
}

// onExpired runs on the countdown goroutine. The stored status stays SENT;
// only cached reads are refreshed so EffectiveStatus is recomputed.
func (u *QuoteUseCase) onExpired(id string) {
	u.metrics.QuoteExpired()
	u.invalidate(context.Background(), cache.QuoteUpdated, cache.Refs{QuoteID: id})
	u.log.Info("[quote][countdown] expired", zap.String("quote_id", id))
}
