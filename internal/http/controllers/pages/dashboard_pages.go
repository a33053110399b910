package pages

import (
	"net/http"

	"github.com/dropDatabas3/bizflow/internal/http/views"
)

// Dashboard maneja GET /{locale}/dashboard.
func (c *Controller) Dashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}
	p := c.page(r, "dashboard.title", nil)
	sum, err := c.deps.Dashboard.Summary(r.Context(), u.ID)
	if err != nil {
		c.fail(w, r, views.PageDashboard, p, err)
		return
	}
	p.Data = sum
	c.deps.Views.Render(w, r, http.StatusOK, views.PageDashboard, p)
}
