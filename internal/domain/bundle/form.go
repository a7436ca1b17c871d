package bundle

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"autoshop/internal/pkg/validator"
)

var ErrNotEditing = errors.New("package form is not in edit mode")

// Draft is the editable content of a package.
type Draft struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	Services    Selection        `json:"service_ids"`
	Discount    Discount         `json:"discount"`
	CustomTotal *decimal.Decimal `json:"custom_total,omitempty"`
}

func (d Draft) clone() Draft {
	out := d
	out.Services = d.Services.Clone()
	if d.CustomTotal != nil {
		v := *d.CustomTotal
		out.CustomTotal = &v
	}
	return out
}

// FormState is either ViewState or EditState.
type FormState interface {
	Mode() string
	formState()
}

type ViewState struct{}

func (ViewState) Mode() string { return "view" }
func (ViewState) formState()   {}

type EditState struct {
	Draft Draft
}

func (EditState) Mode() string { return "edit" }
func (EditState) formState()   {}

// PriceLookup resolves the current unit price of services that can be sold.
type PriceLookup interface {
	PricesFor(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error)
}

// Editor holds a package's saved content and its form state. Membership and
// field changes are only accepted in edit mode.
type Editor struct {
	saved Draft
	state FormState
}

func NewEditor(saved Draft) *Editor {
	return &Editor{saved: saved.clone(), state: ViewState{}}
}

func (e *Editor) State() FormState { return e.state }

func (e *Editor) Saved() Draft { return e.saved.clone() }

func (e *Editor) Editing() bool {
	_, ok := e.state.(EditState)
	return ok
}

// BeginEdit starts editing a copy of the saved content. Calling it while
// already editing keeps the current draft.
func (e *Editor) BeginEdit() {
	if e.Editing() {
		return
	}
	e.state = EditState{Draft: e.saved.clone()}
}

// Apply mutates the draft.
func (e *Editor) Apply(change func(*Draft)) error {
	st, ok := e.state.(EditState)
	if !ok {
		return ErrNotEditing
	}
	change(&st.Draft)
	e.state = st
	return nil
}

func (e *Editor) AddService(id int64) error {
	return e.Apply(func(d *Draft) { d.Services.Add(id) })
}

func (e *Editor) RemoveService(id int64) error {
	return e.Apply(func(d *Draft) { d.Services.Remove(id) })
}

func (e *Editor) ToggleService(id int64) error {
	return e.Apply(func(d *Draft) { d.Services.Toggle(id) })
}

// Preview prices the current draft without validating it.
func (e *Editor) Preview(ctx context.Context, lookup PriceLookup) (Quote, error) {
	st, ok := e.state.(EditState)
	if !ok {
		return Quote{}, ErrNotEditing
	}
	services, _, err := resolve(ctx, lookup, st.Draft.Services)
	if err != nil {
		return Quote{}, err
	}
	return Calculate(services, st.Draft.Discount, st.Draft.CustomTotal), nil
}

// Commit validates and prices the draft. On success the draft becomes the
// saved content and the editor returns to view mode; on failure it stays in
// edit mode with the draft intact.
func (e *Editor) Commit(ctx context.Context, lookup PriceLookup) (Draft, Quote, error) {
	st, ok := e.state.(EditState)
	if !ok {
		return Draft{}, Quote{}, ErrNotEditing
	}

	errs := ValidateDraft(st.Draft)
	services, missing, err := resolve(ctx, lookup, st.Draft.Services)
	if err != nil {
		return Draft{}, Quote{}, err
	}
	for _, id := range missing {
		errs.Add("service_ids", validator.InvalidValue, fmt.Sprintf("service %d is not available", id))
	}
	if err := errs.Err(); err != nil {
		return Draft{}, Quote{}, err
	}

	quote := Calculate(services, st.Draft.Discount, st.Draft.CustomTotal)
	e.saved = st.Draft.clone()
	e.state = ViewState{}
	return e.saved.clone(), quote, nil
}

// Cancel discards the draft.
func (e *Editor) Cancel() {
	e.state = ViewState{}
}

// ValidateDraft reports form errors that block saving.
func ValidateDraft(d Draft) validator.Errors {
	var errs validator.Errors
	if d.Name == "" {
		errs.Add("name", validator.MissingRequiredField, "is required")
	}
	errs = append(errs, validateDiscount(d.Discount)...)
	if d.CustomTotal != nil {
		errs.Amount("custom_total", *d.CustomTotal)
	}
	if d.Services.Len() == 0 {
		errs.Add("service_ids", validator.EmptySelection, "select at least one service")
	}
	return errs
}

func validateDiscount(d Discount) validator.Errors {
	var errs validator.Errors
	switch d.Type {
	case DiscountPercent:
		if d.Value.GreaterThan(decimal.NewFromInt(100)) {
			errs.Add("discount.value", validator.InvalidNumericValue, "percent must not exceed 100")
		}
	case DiscountFixed:
	default:
		errs.Add("discount.type", validator.InvalidValue, "must be percent or fixed")
	}
	errs.Amount("discount.value", d.Value)
	return errs
}

func resolve(ctx context.Context, lookup PriceLookup, sel Selection) ([]PricedService, []int64, error) {
	ids := sel.IDs()
	if len(ids) == 0 {
		return nil, nil, nil
	}
	prices, err := lookup.PricesFor(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	services := make([]PricedService, 0, len(ids))
	var missing []int64
	for _, id := range ids {
		price, ok := prices[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		services = append(services, PricedService{ID: id, Price: price})
	}
	return services, missing, nil
}
