package stub

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweetshop-client/internal/model"
)

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string `json:"token"`
}

// register creates a standard-user account. Admins are only seeded,
// never self-registered.
func (s *Server) register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username and password required"})
	}

	created, err := s.addAccount(req.Username, strings.TrimSpace(req.Email), req.Password, model.RoleUser)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create account failed"})
	}
	if !created {
		return c.JSON(http.StatusConflict, echo.Map{"message": "username already exists"})
	}
	return c.NoContent(http.StatusCreated)
}

// login verifies credentials and answers with a freshly minted token.
func (s *Server) login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	acct, ok := s.findAccount(strings.TrimSpace(req.Username))
	if !ok || !verifyPassword(acct.Hash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
	}

	token, err := mintToken(s.secret, acct)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "issue token failed"})
	}
	return c.JSON(http.StatusOK, loginResp{Token: token})
}
