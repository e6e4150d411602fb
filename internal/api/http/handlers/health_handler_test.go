package handlers

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamados-dashboard/internal/persistence"
)

func TestReadyReportsInMemoryBackendHealthy(t *testing.T) {
	h := NewHealthHandler("chamados-dashboard", "test", &persistence.Postgres{}, &persistence.Redis{})
	app := fiber.New()
	app.Get("/health/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/ready", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "in-memory") {
		t.Errorf("body = %s, want in-memory backend reported", body)
	}
}
