package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tweetapp/internal/middleware"
	"tweetapp/internal/models"
	"tweetapp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore backs the services with canned data for handler tests.
type stubStore struct {
	usersByLogin map[string]*models.User
	usersByEmail map[string]*models.User
	allUsers     []models.User
	tweetsByID   map[uint]*models.Tweet
	allTweets    []models.Tweet
	nextID       uint
}

func newStubStore() *stubStore {
	return &stubStore{
		usersByLogin: map[string]*models.User{},
		usersByEmail: map[string]*models.User{},
		tweetsByID:   map[uint]*models.Tweet{},
	}
}

func (s *stubStore) addUser(u models.User) {
	s.usersByLogin[u.LoginID] = &u
	s.usersByEmail[u.Email] = &u
	s.allUsers = append(s.allUsers, u)
}

func (s *stubStore) addTweet(tw models.Tweet) {
	s.tweetsByID[tw.ID] = &tw
	s.allTweets = append(s.allTweets, tw)
}

func (s *stubStore) GetByLoginID(_ context.Context, loginID string) (*models.User, error) {
	return s.usersByLogin[loginID], nil
}
func (s *stubStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return s.usersByEmail[email], nil
}
func (s *stubStore) SearchByLoginID(_ context.Context, fragment string) ([]models.User, error) {
	var out []models.User
	for _, u := range s.allUsers {
		if strings.Contains(strings.ToLower(u.LoginID), strings.ToLower(fragment)) {
			out = append(out, u)
		}
	}
	return out, nil
}
func (s *stubStore) List(_ context.Context) ([]models.User, error) { return s.allUsers, nil }
func (s *stubStore) Create(_ context.Context, user *models.User) error {
	s.addUser(*user)
	return nil
}
func (s *stubStore) Update(_ context.Context, user *models.User) error {
	s.usersByLogin[user.LoginID] = user
	return nil
}

func (s *stubStore) GetByID(_ context.Context, id uint) (*models.Tweet, error) {
	return s.tweetsByID[id], nil
}
func (s *stubStore) GetByUserID(_ context.Context, userID uint) ([]models.Tweet, error) {
	var out []models.Tweet
	for _, tw := range s.allTweets {
		if tw.UserID == userID {
			out = append(out, tw)
		}
	}
	return out, nil
}
func (s *stubStore) ListTweets(_ context.Context) ([]models.Tweet, error) { return s.allTweets, nil }
func (s *stubStore) CreateTweet(_ context.Context, tweet *models.Tweet) error {
	s.addTweet(*tweet)
	return nil
}
func (s *stubStore) UpdateTweet(_ context.Context, tweet *models.Tweet) error {
	s.tweetsByID[tweet.ID] = tweet
	return nil
}
func (s *stubStore) Delete(_ context.Context, id uint) error {
	delete(s.tweetsByID, id)
	return nil
}
func (s *stubStore) GetLike(_ context.Context, _, _ uint) (*models.Like, error) { return nil, nil }
func (s *stubStore) Like(_ context.Context, _, _ uint) error                    { return nil }
func (s *stubStore) Unlike(_ context.Context, _, _ uint) error                  { return nil }
func (s *stubStore) CountLikes(_ context.Context, _ uint) (int64, error)        { return 1, nil }

func (s *stubStore) Next(_ context.Context, _ string) (uint, error) {
	s.nextID++
	return s.nextID, nil
}

// tweetStore narrows stubStore to the tweet repository's method names.
type tweetStore struct{ *stubStore }

func (r tweetStore) List(ctx context.Context) ([]models.Tweet, error) {
	return r.stubStore.ListTweets(ctx)
}
func (r tweetStore) Create(ctx context.Context, tweet *models.Tweet) error {
	return r.stubStore.CreateTweet(ctx, tweet)
}
func (r tweetStore) Update(ctx context.Context, tweet *models.Tweet) error {
	return r.stubStore.UpdateTweet(ctx, tweet)
}

func newTestApp(store *stubStore) *fiber.App {
	s := &Server{
		userService:  service.NewUserService(store, store),
		tweetService: service.NewTweetService(tweetStore{store}, store, store, nil),
	}
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestRegisterEndpoint(t *testing.T) {
	store := newStubStore()
	store.addUser(models.User{ID: 1, LoginID: "taken", Email: "taken@x.com"})
	app := newTestApp(store)

	t.Run("Success", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1.0/tweets/register",
			`{"login_id":"amanb","email":"a@x.com","password":"p1","confirm_password":"p1","contact_number":"123","display_name":"Aman"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, string(models.Success), body["result"])
		assert.Equal(t, string(models.StatusOK), body["status"])
	})

	t.Run("Conflict maps to 409", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1.0/tweets/register",
			`{"login_id":"taken","email":"other@x.com","password":"p1","confirm_password":"p1"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, string(models.Failure), body["result"])
		assert.Equal(t, string(models.StatusConflict), body["status"])
	})

	t.Run("Malformed body", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1.0/tweets/register", `{not json`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLoginEndpoint(t *testing.T) {
	store := newStubStore()
	store.addUser(models.User{ID: 1, LoginID: "amanb", Password: "p1"})
	app := newTestApp(store)

	t.Run("Success", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1.0/tweets/login",
			`{"login_id":"amanb","password":"p1"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Unknown user maps to 404", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1.0/tweets/login",
			`{"login_id":"ghost","password":"p1"}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Wrong password maps to 409", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1.0/tweets/login",
			`{"login_id":"amanb","password":"nope"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestTweetEndpoints(t *testing.T) {
	store := newStubStore()
	store.addUser(models.User{ID: 1, LoginID: "amanb"})
	store.addTweet(models.Tweet{ID: 10, UserID: 1, Body: "hello"})
	app := newTestApp(store)

	t.Run("Post", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1.0/tweets/amanb/add",
			`{"body":"a new tweet"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		tweets := body["tweets"].([]any)
		require.Len(t, tweets, 1)
		assert.Equal(t, "a new tweet", tweets[0].(map[string]any)["body"])
	})

	t.Run("Update", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut, "/api/v1.0/tweets/amanb/update/10",
			`{"body":"edited"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Like", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPut, "/api/v1.0/tweets/amanb/like/10", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		tweets := body["tweets"].([]any)
		require.Len(t, tweets, 1)
		assert.Equal(t, float64(1), tweets[0].(map[string]any)["likes_count"])
	})

	t.Run("Reply to missing tweet maps to 404", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1.0/tweets/amanb/reply/999",
			`{"body":"re"}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Non-numeric id maps to 400", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1.0/tweets/amanb/delete/abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// The :username parameter must reach the service context so deep-layer log
// lines can be attributed to the acting user.
func TestRequestContextCarriesLoginID(t *testing.T) {
	s := &Server{}
	app := fiber.New()

	var gotLoginID string
	var plainLoginID any
	app.Get("/tweets/:username", func(c *fiber.Ctx) error {
		gotLoginID, _ = s.requestContext(c).Value(middleware.LoginIDKey).(string)
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/all", func(c *fiber.Ctx) error {
		plainLoginID = s.requestContext(c).Value(middleware.LoginIDKey)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/tweets/amanb", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "amanb", gotLoginID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/all", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Nil(t, plainLoginID, "routes without :username add nothing")
}

// Static route segments must win over the :username wildcard.
func TestRoutePrecedence(t *testing.T) {
	store := newStubStore()
	store.addUser(models.User{ID: 1, LoginID: "amanb"})
	store.addTweet(models.Tweet{ID: 10, UserID: 1, Body: "hello"})
	app := newTestApp(store)

	t.Run("/all returns the timeline", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/v1.0/tweets/all", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotNil(t, body["tweets"])
	})

	t.Run("/users/all returns the directory", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/v1.0/tweets/users/all", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotNil(t, body["users"])
	})

	t.Run("/user/:username resolves the exact login id", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/v1.0/tweets/user/amanb", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		users := body["users"].([]any)
		require.Len(t, users, 1)
		assert.Equal(t, "amanb", users[0].(map[string]any)["login_id"])

		resp, _ = doJSON(t, app, http.MethodGet, "/api/v1.0/tweets/user/ghost", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("/user/search matches fragments", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/v1.0/tweets/user/search/MAN", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		users := body["users"].([]any)
		require.Len(t, users, 1)
	})

	t.Run("/:username still resolves a user's tweets", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/v1.0/tweets/amanb", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		tweets := body["tweets"].([]any)
		require.Len(t, tweets, 1)
	})
}
