package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/law-manager/lawauth/internal/core/domain"
)

const serviceName = "law-manager-server"

type rootResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type rolesResponse struct {
	Roles []domain.RoleDetail `json:"roles"`
}

// Root identifies the service.
//
// @Summary      Service banner
// @Tags         meta
// @Produce      json
// @Success      200  {object}  rootResponse
// @Router       / [get]
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, rootResponse{Name: serviceName, Status: "ok"})
}

// Roles lists the role catalog in privilege order.
//
// @Summary      Role catalog
// @Tags         auth
// @Produce      json
// @Success      200  {object}  rolesResponse
// @Failure      401  {object}  domain.AuthError
// @Router       /auth/roles [get]
func Roles(c echo.Context) error {
	return c.JSON(http.StatusOK, rolesResponse{Roles: domain.RoleCatalog()})
}
