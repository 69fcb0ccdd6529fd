package handler

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
)

// Endpoint is one path with the methods registered on it.
type Endpoint struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

type routesResponse struct {
	Endpoints []Endpoint `json:"endpoints"`
}

// RoutesHandler lists the endpoints of the router it was built for.
type RoutesHandler struct {
	routes func() []*echo.Route
}

// NewRoutesHandler takes the route source of the router that serves it,
// usually (*echo.Echo).Routes.
func NewRoutesHandler(routes func() []*echo.Route) *RoutesHandler {
	return &RoutesHandler{routes: routes}
}

// List returns every registered endpoint.
//
// @Summary      List endpoints
// @Tags         meta
// @Produce      json
// @Success      200  {object}  routesResponse
// @Failure      401  {object}  domain.AuthError
// @Failure      403  {object}  domain.AuthError
// @Router       /routes [get]
func (h *RoutesHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, routesResponse{Endpoints: Endpoints(h.routes())})
}

// Endpoints groups routes by path, sorted by path with sorted methods.
// Echo's internal not-found handlers are skipped.
func Endpoints(routes []*echo.Route) []Endpoint {
	methods := make(map[string]map[string]struct{})
	for _, r := range routes {
		if r.Method == echo.RouteNotFound {
			continue
		}
		if methods[r.Path] == nil {
			methods[r.Path] = make(map[string]struct{})
		}
		methods[r.Path][r.Method] = struct{}{}
	}

	out := make([]Endpoint, 0, len(methods))
	for path, set := range methods {
		ep := Endpoint{Path: path, Methods: make([]string, 0, len(set))}
		for m := range set {
			ep.Methods = append(ep.Methods, m)
		}
		sort.Strings(ep.Methods)
		out = append(out, ep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
