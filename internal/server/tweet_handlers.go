package server

import (
	"github.com/gofiber/fiber/v2"

	"tweetapp/internal/models"
)

// tweetRequest is the body for posting, updating and replying to tweets.
type tweetRequest struct {
	Body string `json:"body"`
}

// GetAllTweets handles GET /api/v1.0/tweets/all
func (s *Server) GetAllTweets(c *fiber.Ctx) error {
	resp := s.tweetService.GetAllTweets(s.requestContext(c))
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}

// GetAllTweetsOfUser handles GET /api/v1.0/tweets/:username
func (s *Server) GetAllTweetsOfUser(c *fiber.Ctx) error {
	resp := s.tweetService.GetAllTweetsOfUser(s.requestContext(c), c.Params("username"))
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}

// PostNewTweet handles POST /api/v1.0/tweets/:username/add
func (s *Server) PostNewTweet(c *fiber.Ctx) error {
	var req tweetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	resp := s.tweetService.PostNewTweet(s.requestContext(c), c.Params("username"), req.Body)
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}

// UpdateTweet handles PUT /api/v1.0/tweets/:username/update/:id
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	var req tweetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	resp := s.tweetService.UpdateTweet(s.requestContext(c), c.Params("username"), id, req.Body)
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}

// DeleteTweet handles DELETE /api/v1.0/tweets/:username/delete/:id
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	resp := s.tweetService.DeleteTweet(s.requestContext(c), c.Params("username"), id)
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}

// LikeTweet handles PUT /api/v1.0/tweets/:username/like/:id
func (s *Server) LikeTweet(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	resp := s.tweetService.LikeTweet(s.requestContext(c), c.Params("username"), id)
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}

// ReplyToTweet handles POST /api/v1.0/tweets/:username/reply/:id
func (s *Server) ReplyToTweet(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	var req tweetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	resp := s.tweetService.ReplyToTweet(s.requestContext(c), c.Params("username"), id, req.Body)
	return c.Status(resp.Code.HTTPStatus()).JSON(resp)
}
