package storeform

import (
	"context"
	"fmt"
	"maps"
	"storefront/pkg/diag"
	"storefront/pkg/logger"
	"storefront/pkg/serrors"
	"storefront/pkg/storeapi"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "storefront/internal/storeform"

// component is the diag.Event component of this package.
const component = "storeform"

// State is a step of the submit cycle.
type State string

const (
	StateIdle           State = "Idle"
	StateValidating     State = "Validating"
	StateDomainChecking State = "DomainChecking"
	StateCreatingStore  State = "CreatingStore"
)

// transitions lists the allowed next states. Every cycle ends in StateIdle.
var transitions = map[State][]State{ //nolint: gochecknoglobals
	StateIdle:           {StateValidating},
	StateValidating:     {StateIdle, StateDomainChecking},
	StateDomainChecking: {StateIdle, StateCreatingStore},
	StateCreatingStore:  {StateIdle},
}

// Outcome is how a submit cycle ended.
type Outcome string

const (
	OutcomeInvalid           Outcome = "Invalid"
	OutcomeDomainTaken       Outcome = "DomainTaken"
	OutcomeDomainCheckFailed Outcome = "DomainCheckFailed"
	OutcomeCreated           Outcome = "Created"
	OutcomeCreateFailed      Outcome = "CreateFailed"
)

// Status lines shown to the visitor. Transport details never appear here.
const (
	StatusDomainTaken       = "Domain is available. No action taken."
	StatusDomainCheckFailed = "Error checking domain availability."
	StatusCreated           = "Store created successfully!"
	StatusCreateFailed      = "Error creating store."
)

// Options tune the workflow.
type Options struct {
	// DomainSuffix is appended to the subdomain to build the checked domain.
	DomainSuffix string
	// ResetOnSuccess restores DefaultDraft after a store was created.
	ResetOnSuccess bool
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
	// MeterProvider defaults to the global provider.
	MeterProvider metric.MeterProvider
}

// Workflow holds what every Form shares. It is safe for concurrent use.
type Workflow struct {
	stores      storeapi.Client
	sink        diag.Sink
	options     Options
	tracer      trace.Tracer
	submissions metric.Int64Counter
}

// NewWorkflow builds a Workflow. A nil sink discards diagnostic events.
func NewWorkflow(stores storeapi.Client, sink diag.Sink, options Options) (*Workflow, error) {
	if sink == nil {
		sink = diag.Discard
	}
	if options.TracerProvider == nil {
		options.TracerProvider = otel.GetTracerProvider()
	}
	if options.MeterProvider == nil {
		options.MeterProvider = otel.GetMeterProvider()
	}

	submissions, err := options.MeterProvider.Meter(instrumentationName).Int64Counter(
		"storefront.storeform.submissions",
		metric.WithDescription("Store form submit cycles by outcome."),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create submissions counter: %w", err)
	}

	return &Workflow{
		stores:      stores,
		sink:        sink,
		options:     options,
		tracer:      options.TracerProvider.Tracer(instrumentationName),
		submissions: submissions,
	}, nil
}

// NewForm returns an idle Form holding DefaultDraft.
func (w *Workflow) NewForm() *Form {
	return &Form{
		workflow: w,
		state:    StateIdle,
		draft:    DefaultDraft(),
		errors:   ValidationErrors{},
	}
}

func (w *Workflow) publish(ctx context.Context, operation string, err error, attrs map[string]string) {
	w.sink.Emit(ctx, diag.Event{
		Component: component,
		Operation: operation,
		Err:       err,
		Attrs:     attrs,
	})
}

// View is a snapshot of a Form.
type View struct {
	State  State
	Draft  Draft
	Errors ValidationErrors
	Status string
}

// Form is one visitor's store form. Its fields change only through the
// transitions table; the lock is never held across a remote call.
type Form struct {
	workflow *Workflow

	mu     sync.Mutex
	state  State
	draft  Draft
	errors ValidationErrors
	status string
}

// View returns a snapshot of the form.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	return View{
		State:  f.state,
		Draft:  f.draft,
		Errors: maps.Clone(f.errors),
		Status: f.status,
	}
}

// Submit runs one submit cycle for draft and returns how it ended.
//
// A Form that is not idle rejects the call with an serrors.ErrConflict error
// and stays untouched. Remote failures are not returned: they end the cycle
// with a generic status line and are published to the diagnostics sink. A
// returned error other than the conflict means a broken state invariant.
func (f *Form) Submit(ctx context.Context, draft Draft) (Outcome, error) {
	f.mu.Lock()
	if f.state != StateIdle {
		state := f.state
		f.mu.Unlock()

		return "", serrors.With(serrors.ErrConflict, "submission already in progress (state %s)", state)
	}
	err := f.advance(StateIdle, StateValidating)
	if err == nil {
		f.draft = draft
	}
	f.mu.Unlock()
	if err != nil {
		return "", err
	}

	ctx, span := f.workflow.tracer.Start(ctx, "storeform.Submit",
		trace.WithAttributes(attribute.String("storeform.subdomain", draft.Subdomain)))
	defer span.End()

	outcome, err := f.run(ctx, draft)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	span.SetAttributes(attribute.String("storeform.outcome", string(outcome)))
	f.workflow.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))

	return outcome, err
}

func (f *Form) run(ctx context.Context, draft Draft) (Outcome, error) {
	w := f.workflow

	if errs := Validate(draft); len(errs) > 0 {
		return OutcomeInvalid, f.finish(StateValidating, func() {
			f.errors = errs
		})
	}
	if err := f.step(StateValidating, StateDomainChecking, func() {
		f.errors = ValidationErrors{}
	}); err != nil {
		return "", err
	}

	fqdn := draft.FQDN(w.options.DomainSuffix)
	ctx = logger.WithFields(ctx, zap.String("fqdn", fqdn))

	verdict, err := w.stores.CheckDomain(ctx, fqdn)
	if err != nil {
		w.publish(ctx, "check_domain", err, map[string]string{"fqdn": fqdn})

		return OutcomeDomainCheckFailed, f.finish(StateDomainChecking, func() {
			f.status = StatusDomainCheckFailed
		})
	}
	if !verdict.Claimable {
		logger.Info(ctx, "domain check did not allow creation", zap.String("verdict", verdict.Raw))

		return OutcomeDomainTaken, f.finish(StateDomainChecking, func() {
			f.status = StatusDomainTaken
		})
	}

	if err := f.step(StateDomainChecking, StateCreatingStore, nil); err != nil {
		return "", err
	}

	res, err := w.stores.CreateStore(ctx, draft.Store())
	if err != nil {
		w.publish(ctx, "create_store", err, map[string]string{"fqdn": fqdn})

		return OutcomeCreateFailed, f.finish(StateCreatingStore, func() {
			f.status = StatusCreateFailed
		})
	}
	logger.Info(ctx, "store created", zap.ByteString("response", res.Body))

	return OutcomeCreated, f.finish(StateCreatingStore, func() {
		f.status = StatusCreated
		if w.options.ResetOnSuccess {
			f.draft = DefaultDraft()
		}
	})
}

// step moves from -> to and applies mutate under the lock.
func (f *Form) step(from, to State, mutate func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.advance(from, to); err != nil {
		f.state = StateIdle

		return err
	}
	if mutate != nil {
		mutate()
	}

	return nil
}

// finish applies mutate and returns the form to StateIdle. The form ends idle
// even when the transition was illegal, so it never stays locked.
func (f *Form) finish(from State, mutate func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	mutate()
	if err := f.advance(from, StateIdle); err != nil {
		f.state = StateIdle

		return err
	}

	return nil
}

// advance performs a checked transition. Callers hold f.mu.
func (f *Form) advance(from, to State) error {
	if f.state != from {
		return serrors.With(serrors.ErrInternal, "form is in state %s, expected %s", f.state, from)
	}
	for _, next := range transitions[from] {
		if next == to {
			f.state = to

			return nil
		}
	}

	return serrors.With(serrors.ErrInternal, "illegal transition %s -> %s", from, to)
}
