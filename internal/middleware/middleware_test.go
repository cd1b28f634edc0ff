package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/legalmoves-backend/internal/testutil"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	testutil.AssertNoError(t, err)
	generated := resp.Header.Get(RequestIDHeader)
	testutil.AssertEqual(t, len(generated), 36)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err = app.Test(req)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resp.Header.Get(RequestIDHeader), "abc-123")
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(RequestID(), Logger(zerolog.New(&buf)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/bad", func(c *fiber.Ctx) error { return fiber.ErrBadRequest })

	for _, path := range []string{"/ok", "/bad", "/missing"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil))
		testutil.AssertNoError(t, err)
	}

	type line struct {
		Level  string `json:"level"`
		Path   string `json:"path"`
		Status int    `json:"status"`
		Method string `json:"method"`
	}
	var got []line
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var l line
		testutil.AssertNoError(t, dec.Decode(&l))
		got = append(got, l)
	}
	testutil.AssertEqual(t, got, []line{
		{Level: "info", Path: "/ok", Status: 200, Method: "GET"},
		{Level: "info", Path: "/bad", Status: 400, Method: "GET"},
		{Level: "info", Path: "/missing", Status: 404, Method: "GET"},
	})
}

func TestWebSocketUpgradeRejectsPlainHTTP(t *testing.T) {
	app := fiber.New()
	app.Use("/ws", WebSocketUpgrade())
	app.Get("/ws/standard", func(c *fiber.Ctx) error { return c.SendString("upgraded") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ws/standard", nil))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusUpgradeRequired)
}
