package pages

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	dto "github.com/dropDatabas3/bizflow/internal/http/dto/customers"
	"github.com/dropDatabas3/bizflow/internal/http/services/customers"
	"github.com/dropDatabas3/bizflow/internal/http/views"
	"github.com/go-chi/chi/v5"
)

func customerErrorKey(err error) (string, bool) {
	switch {
	case errors.Is(err, customers.ErrNameRequired):
		return "customer.nameRequired", true
	case errors.Is(err, customers.ErrEmailRequired):
		return "customer.emailRequired", true
	case errors.Is(err, customers.ErrInvalidStatus):
		return "customer.invalidStatus", true
	}
	return "", false
}

// customerRequest lee el form; id y user_id se ignoran.
func customerRequest(r *http.Request) dto.CustomerRequest {
	return dto.CustomerRequest{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Company: r.PostFormValue("company"),
		Status:  r.PostFormValue("status"),
	}
}

func customerForm(id string, in dto.CustomerRequest) views.CustomerForm {
	return views.CustomerForm{
		ID:      id,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Status:  in.Status,
	}
}

// Customers maneja GET /{locale}/dashboard/customers.
func (c *Controller) Customers(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}
	p := c.page(r, "customer.title", nil)
	list, err := c.deps.Customers.List(r.Context(), u.ID)
	if err != nil {
		c.fail(w, r, views.PageCustomers, p, err)
		return
	}
	p.Data = list
	c.deps.Views.Render(w, r, http.StatusOK, views.PageCustomers, p)
}

// NewCustomer maneja GET /{locale}/dashboard/customers/new.
func (c *Controller) NewCustomer(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	p := c.page(r, "customer.addCustomer", views.CustomerForm{Status: string(repository.CustomerActive)})
	c.deps.Views.Render(w, r, http.StatusOK, views.PageCustomerForm, p)
}

// CreateCustomer maneja POST /{locale}/dashboard/customers/new.
func (c *Controller) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}
	in := customerRequest(r)
	p := c.page(r, "customer.addCustomer", customerForm("", in))
	if _, err := c.deps.Customers.Create(r.Context(), u.ID, in); err != nil {
		c.customerFail(w, r, p, err)
		return
	}
	redirect(w, r, "/dashboard/customers")
}

// EditCustomer maneja GET /{locale}/dashboard/customers/{id}.
func (c *Controller) EditCustomer(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}
	p := c.page(r, "customer.editCustomer", nil)
	cu, err := c.deps.Customers.Get(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		c.fail(w, r, views.PageCustomerForm, p, err)
		return
	}
	p.Data = views.CustomerForm{
		ID:      cu.ID,
		Name:    cu.Name,
		Email:   cu.Email,
		Phone:   cu.Phone,
		Company: cu.Company,
		Status:  string(cu.Status),
	}
	c.deps.Views.Render(w, r, http.StatusOK, views.PageCustomerForm, p)
}

// UpdateCustomer maneja POST /{locale}/dashboard/customers/{id}.
func (c *Controller) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	in := customerRequest(r)
	p := c.page(r, "customer.editCustomer", customerForm(id, in))
	if _, err := c.deps.Customers.Update(r.Context(), u.ID, id, in); err != nil {
		c.customerFail(w, r, p, err)
		return
	}
	redirect(w, r, "/dashboard/customers")
}

// DeleteCustomer maneja POST /{locale}/dashboard/customers/{id}/delete.
func (c *Controller) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := c.deps.Customers.Delete(r.Context(), u.ID, chi.URLParam(r, "id")); err != nil {
		c.fail(w, r, views.PageCustomers, c.page(r, "customer.title", nil), err)
		return
	}
	redirect(w, r, "/dashboard/customers")
}

func (c *Controller) customerFail(w http.ResponseWriter, r *http.Request, p views.Page, err error) {
	if key, ok := customerErrorKey(err); ok {
		p.Error = key
		c.deps.Views.Render(w, r, http.StatusUnprocessableEntity, views.PageCustomerForm, p)
		return
	}
	c.fail(w, r, views.PageCustomerForm, p, err)
}
