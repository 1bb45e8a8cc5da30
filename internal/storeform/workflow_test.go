package storeform_test

import (
	"context"
	"errors"
	"storefront/internal/storeform"
	"storefront/pkg/diag"
	"storefront/pkg/domain"
	"storefront/pkg/serrors"
	"storefront/pkg/storeapi"
	mockstoreapi "storefront/pkg/storeapi/mock"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"
)

const suffix = ".expressitbd.com"

type recorder struct {
	mu     sync.Mutex
	events []diag.Event
}

func (r *recorder) Emit(_ context.Context, e diag.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) Events() []diag.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]diag.Event(nil), r.events...)
}

type fixture struct {
	stores   *mockstoreapi.MockClient
	sink     *recorder
	reader   *sdkmetric.ManualReader
	workflow *storeform.Workflow
}

func newFixture(t *testing.T, resetOnSuccess bool) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		stores: mockstoreapi.NewMockClient(ctrl),
		sink:   &recorder{},
		reader: sdkmetric.NewManualReader(),
	}

	wf, err := storeform.NewWorkflow(f.stores, f.sink, storeform.Options{
		DomainSuffix:   suffix,
		ResetOnSuccess: resetOnSuccess,
		MeterProvider:  sdkmetric.NewMeterProvider(sdkmetric.WithReader(f.reader)),
	})
	require.NoError(t, err)
	f.workflow = wf

	return f
}

// submissions returns the submissions counter value per outcome.
func (f *fixture) submissions(t *testing.T) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "storefront.storeform.submissions" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value("outcome")
				out[v.AsString()] += dp.Value
			}
		}
	}

	return out
}

func TestForm_initialView(t *testing.T) {
	f := newFixture(t, false)
	view := f.workflow.NewForm().View()

	require.Equal(t, storeform.StateIdle, view.State)
	require.Equal(t, storeform.DefaultDraft(), view.Draft)
	require.Empty(t, view.Errors)
	require.Empty(t, view.Status)
}

func TestForm_Submit_created(t *testing.T) {
	f := newFixture(t, false)
	form := f.workflow.NewForm()

	gomock.InOrder(
		f.stores.EXPECT().CheckDomain(gomock.Any(), "myshop.expressitbd.com").
			Return(storeapi.DomainVerdict{FQDN: "myshop.expressitbd.com", Claimable: true, Raw: "false"}, nil),
		f.stores.EXPECT().CreateStore(gomock.Any(), domain.Store{
			Name:     "My Shop",
			Currency: domain.CurrencyBDT,
			Country:  domain.CountryBangladesh,
			Domain:   "myshop",
			Category: domain.CategoryFashion,
			Email:    "a@b.com",
		}).Return(storeapi.CreateRes{Body: []byte(`{"_id":"s1"}`)}, nil),
	)

	outcome, err := form.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	require.Equal(t, storeform.OutcomeCreated, outcome)

	view := form.View()
	require.Equal(t, storeform.StateIdle, view.State)
	require.Equal(t, "Store created successfully!", view.Status)
	require.Empty(t, view.Errors)
	require.Equal(t, validDraft(), view.Draft)
	require.Empty(t, f.sink.Events())
	require.Equal(t, map[string]int64{"Created": 1}, f.submissions(t))
}

func TestForm_Submit_resetOnSuccess(t *testing.T) {
	f := newFixture(t, true)
	form := f.workflow.NewForm()

	f.stores.EXPECT().CheckDomain(gomock.Any(), gomock.Any()).Return(storeapi.DomainVerdict{Claimable: true}, nil)
	f.stores.EXPECT().CreateStore(gomock.Any(), gomock.Any()).Return(storeapi.CreateRes{}, nil)

	outcome, err := form.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	require.Equal(t, storeform.OutcomeCreated, outcome)
	require.Equal(t, storeform.DefaultDraft(), form.View().Draft)
	require.Equal(t, storeform.StatusCreated, form.View().Status)
}

func TestForm_Submit_domainTaken(t *testing.T) {
	f := newFixture(t, false)
	form := f.workflow.NewForm()

	f.stores.EXPECT().CheckDomain(gomock.Any(), "myshop.expressitbd.com").
		Return(storeapi.DomainVerdict{FQDN: "myshop.expressitbd.com", Raw: "true"}, nil)

	outcome, err := form.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	require.Equal(t, storeform.OutcomeDomainTaken, outcome)

	view := form.View()
	require.Equal(t, storeform.StateIdle, view.State)
	require.Equal(t, "Domain is available. No action taken.", view.Status)
	require.Empty(t, f.sink.Events())
}

func TestForm_Submit_domainCheckFailed(t *testing.T) {
	f := newFixture(t, false)
	form := f.workflow.NewForm()

	boom := errors.New("connection refused")
	f.stores.EXPECT().CheckDomain(gomock.Any(), "myshop.expressitbd.com").Return(storeapi.DomainVerdict{}, boom)

	outcome, err := form.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	require.Equal(t, storeform.OutcomeDomainCheckFailed, outcome)

	view := form.View()
	require.Equal(t, storeform.StateIdle, view.State)
	require.Equal(t, "Error checking domain availability.", view.Status)
	require.NotContains(t, view.Status, "connection refused")

	events := f.sink.Events()
	require.Len(t, events, 1)
	require.Equal(t, "storeform", events[0].Component)
	require.Equal(t, "check_domain", events[0].Operation)
	require.ErrorIs(t, events[0].Err, boom)
	require.Equal(t, "myshop.expressitbd.com", events[0].Attrs["fqdn"])
	require.Equal(t, map[string]int64{"DomainCheckFailed": 1}, f.submissions(t))
}

func TestForm_Submit_createFailed(t *testing.T) {
	f := newFixture(t, true)
	form := f.workflow.NewForm()

	boom := serrors.With(serrors.ErrUnavailable, "store creation failed with status 500")
	f.stores.EXPECT().CheckDomain(gomock.Any(), gomock.Any()).Return(storeapi.DomainVerdict{Claimable: true}, nil)
	f.stores.EXPECT().CreateStore(gomock.Any(), gomock.Any()).Return(storeapi.CreateRes{}, boom)

	outcome, err := form.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	require.Equal(t, storeform.OutcomeCreateFailed, outcome)

	view := form.View()
	require.Equal(t, storeform.StateIdle, view.State)
	require.Equal(t, "Error creating store.", view.Status)
	// the draft is kept so the visitor can retry
	require.Equal(t, validDraft(), view.Draft)

	events := f.sink.Events()
	require.Len(t, events, 1)
	require.Equal(t, "create_store", events[0].Operation)
	require.ErrorIs(t, events[0].Err, serrors.ErrUnavailable)
}

func TestForm_Submit_invalidMakesNoRemoteCalls(t *testing.T) {
	f := newFixture(t, false)
	form := f.workflow.NewForm()
	// no EXPECT: any remote call fails the test

	draft := validDraft()
	draft.Name = "ab"
	draft.Email = "ab.com"

	outcome, err := form.Submit(context.Background(), draft)
	require.NoError(t, err)
	require.Equal(t, storeform.OutcomeInvalid, outcome)

	view := form.View()
	require.Equal(t, storeform.StateIdle, view.State)
	require.Equal(t, draft, view.Draft)
	require.Len(t, view.Errors, 2)
	require.Equal(t, "Store name must be at least 3 characters long.", view.Errors[storeform.FieldName].Message)
	require.Equal(t, "Invalid email format!", view.Errors[storeform.FieldEmail].Message)
	require.Empty(t, view.Status)
}

func TestForm_Submit_invalidKeepsPreviousStatus(t *testing.T) {
	f := newFixture(t, false)
	form := f.workflow.NewForm()

	f.stores.EXPECT().CheckDomain(gomock.Any(), gomock.Any()).Return(storeapi.DomainVerdict{Raw: "true"}, nil)

	_, err := form.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	_, err = form.Submit(context.Background(), storeform.DefaultDraft())
	require.NoError(t, err)
	require.Equal(t, storeform.StatusDomainTaken, form.View().Status)
	require.Len(t, form.View().Errors, 2)
}

func TestForm_Submit_clearsErrorsAfterValidDraft(t *testing.T) {
	f := newFixture(t, false)
	form := f.workflow.NewForm()

	_, err := form.Submit(context.Background(), storeform.DefaultDraft())
	require.NoError(t, err)
	require.NotEmpty(t, form.View().Errors)

	f.stores.EXPECT().CheckDomain(gomock.Any(), gomock.Any()).Return(storeapi.DomainVerdict{Raw: "true"}, nil)

	_, err = form.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	require.Empty(t, form.View().Errors)
}

func TestForm_Submit_rejectsWhileInFlight(t *testing.T) {
	f := newFixture(t, false)
	form := f.workflow.NewForm()

	started := make(chan struct{})
	release := make(chan struct{})
	f.stores.EXPECT().CheckDomain(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string) (storeapi.DomainVerdict, error) {
			close(started)
			<-release

			return storeapi.DomainVerdict{Raw: "true"}, nil
		})

	done := make(chan storeform.Outcome)
	go func() {
		outcome, err := form.Submit(context.Background(), validDraft())
		if err != nil {
			outcome = ""
		}
		done <- outcome
	}()

	<-started
	require.Equal(t, storeform.StateDomainChecking, form.View().State)

	second := validDraft()
	second.Name = "Other Shop"
	_, err := form.Submit(context.Background(), second)
	require.ErrorIs(t, err, serrors.ErrConflict)
	require.Equal(t, validDraft(), form.View().Draft)

	close(release)
	require.Equal(t, storeform.OutcomeDomainTaken, <-done)
	require.Equal(t, storeform.StateIdle, form.View().State)
}

func TestWorkflow_formsAreIndependent(t *testing.T) {
	f := newFixture(t, false)
	a := f.workflow.NewForm()
	b := f.workflow.NewForm()

	_, err := a.Submit(context.Background(), storeform.DefaultDraft())
	require.NoError(t, err)

	require.NotEmpty(t, a.View().Errors)
	require.Empty(t, b.View().Errors)
}

func TestNewWorkflow_defaults(t *testing.T) {
	wf, err := storeform.NewWorkflow(nil, nil, storeform.Options{})
	require.NoError(t, err)

	outcome, err := wf.NewForm().Submit(context.Background(), storeform.DefaultDraft())
	require.NoError(t, err)
	require.Equal(t, storeform.OutcomeInvalid, outcome)
}
