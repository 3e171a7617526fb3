package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_IncludesPrincipalAndError(t *testing.T) {
	var buf bytes.Buffer
	oldW, oldFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		c.Locals(PrincipalKey, "bob@x.com")
		Error(c, "thing.fail", errors.New("boom"), map[string]any{"k": "v"})
		return c.SendStatus(fiber.StatusNoContent)
	})
	_, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)

	var e entry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &e))
	assert.Equal(t, "error", e.Level)
	assert.Equal(t, "thing.fail", e.Action)
	assert.Equal(t, "bob@x.com", e.Principal)
	assert.Equal(t, "boom", e.Err)
	assert.Equal(t, "/x", e.Path)
	assert.Equal(t, "v", e.Fields["k"])
}
