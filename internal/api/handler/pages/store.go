package pages

import (
	"net/http"
	"storefront/internal/storeform"
	"storefront/pkg/domain"
	"storefront/pkg/logger"
	"storefront/pkg/serrors"

	"go.uber.org/zap"
)

// BusyMessage is shown when a submit arrives while the previous one is still running.
const BusyMessage = "A submission is already in progress."

type option struct {
	Value    string
	Label    string
	Selected bool
}

type storeView struct {
	Title        string
	Draft        storeform.Draft
	Errors       map[string]string
	Status       string
	Notice       string
	Busy         bool
	DomainSuffix string
	Countries    []option
	Categories   []option
	Currencies   []option
}

func (h *Handler) newStoreView(v storeform.View, notice string) storeView {
	errs := make(map[string]string, len(v.Errors))
	for field, fe := range v.Errors {
		errs[string(field)] = fe.Message
	}

	countries := make([]option, 0, len(domain.Countries))
	for _, c := range domain.Countries {
		countries = append(countries, option{Value: string(c), Label: string(c), Selected: c == v.Draft.Country})
	}
	categories := make([]option, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		categories = append(categories, option{Value: string(c), Label: string(c), Selected: c == v.Draft.Category})
	}
	currencies := make([]option, 0, len(domain.Currencies))
	for _, c := range domain.Currencies {
		currencies = append(currencies, option{Value: string(c), Label: c.Label(), Selected: c == v.Draft.Currency})
	}

	return storeView{
		Title:        "Create store",
		Draft:        v.Draft,
		Errors:       errs,
		Status:       v.Status,
		Notice:       notice,
		Busy:         v.State != storeform.StateIdle,
		DomainSuffix: h.options.DomainSuffix,
		Countries:    countries,
		Categories:   categories,
		Currencies:   currencies,
	}
}

// showStoreForm renders the visitor's form, or a fresh one without opening a
// session when they have none yet.
func (h *Handler) showStoreForm(w http.ResponseWriter, r *http.Request) {
	var view storeform.View
	if form, ok := h.lookupForm(r); ok {
		view = form.View()
	} else {
		view = h.deps.Workflow.NewForm().View()
	}

	h.render(w, r, http.StatusOK, pageStore, h.newStoreView(view, ""))
}

func (h *Handler) submitStoreForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		logger.Warn(ctx, "could not parse store form", zap.Error(err))
		h.fail(w, r, http.StatusBadRequest)

		return
	}

	form := h.acquireForm(w, r)

	draft := storeform.Draft{
		Name:      r.PostForm.Get("name"),
		Subdomain: r.PostForm.Get("subdomain"),
		Country:   domain.Country(r.PostForm.Get("country")),
		Category:  domain.Category(r.PostForm.Get("category")),
		Currency:  domain.Currency(r.PostForm.Get("currency")),
		Email:     r.PostForm.Get("email"),
	}

	status := http.StatusOK
	notice := ""

	outcome, err := form.Submit(ctx, draft)
	switch {
	case err == nil && outcome == storeform.OutcomeInvalid:
		status = http.StatusUnprocessableEntity
	case err == nil:
	case serrors.KindOf(err) == serrors.ErrConflict:
		status = http.StatusConflict
		notice = BusyMessage
	default:
		logger.Error(ctx, "store form submission failed", zap.Error(err))
		h.fail(w, r, http.StatusInternalServerError)

		return
	}

	logger.Debug(ctx, "store form submitted", zap.String("outcome", string(outcome)))

	h.render(w, r, status, pageStore, h.newStoreView(form.View(), notice))
}
