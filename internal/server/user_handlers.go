package server

import (
	"tweetapp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// loginRequest is the body for POST /login.
type loginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

// RegisterUser handles POST /api/v1.0/tweets/register
func (s *Server) RegisterUser(c *fiber.Ctx) error {
	var candidate models.User
	if err := c.BodyParser(&candidate); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	// Password is json:"-" on the model; read it from the raw body field.
	var creds struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&creds); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	candidate.Password = creds.Password

	resp := s.userService.Register(s.requestContext(c), candidate)
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}

// Login handles POST /api/v1.0/tweets/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	resp := s.userService.Login(s.requestContext(c), req.LoginID, req.Password)
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}

// ForgotPassword handles GET /api/v1.0/tweets/:username/forgot
func (s *Server) ForgotPassword(c *fiber.Ctx) error {
	resp := s.userService.ForgotPassword(s.requestContext(c), c.Params("username"))
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}

// ResetPassword handles POST /api/v1.0/tweets/:username/resetpassword
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	var candidate models.User
	if err := c.BodyParser(&candidate); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	var creds struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&creds); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	candidate.Password = creds.Password

	resp := s.userService.ResetPassword(s.requestContext(c), c.Params("username"), candidate)
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}

// GetAllUsers handles GET /api/v1.0/tweets/users/all
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	resp := s.userService.ListAllUsers(s.requestContext(c))
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}

// SearchByUserName handles GET /api/v1.0/tweets/user/search/:username
func (s *Server) SearchByUserName(c *fiber.Ctx) error {
	resp := s.userService.SearchByUserName(s.requestContext(c), c.Params("username"))
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}

// GetByUserName handles GET /api/v1.0/tweets/user/:username
func (s *Server) GetByUserName(c *fiber.Ctx) error {
	resp := s.userService.GetByUserName(s.requestContext(c), c.Params("username"))
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}
