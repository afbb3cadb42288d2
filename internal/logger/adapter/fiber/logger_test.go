package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/GoSociety-Admin/GoSociety-Admin/internal/logger/adapter/fiber"

	"github.com/GoSociety-Admin/GoSociety-Admin/internal/logger"
)

// accessLogLine implements the logger's default json format.
type accessLogLine struct {
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		targetPath string
		wantOutput bool
	}{
		{
			name:       "console access log disabled no output",
			targetPath: "/",
			config: adapter.Config{
				Config: logger.Log{
					Console: logger.Console{Enabled: true},
				},
			},
			wantOutput: false,
		},
		{
			name:       "console access log enabled json output",
			targetPath: "/plots",
			config: adapter.Config{
				Config: logger.Log{
					EnableAccessLogToConsole: true,
					Console:                  logger.Console{Enabled: true},
				},
			},
			wantOutput: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := runRequest(t, tc.config, tc.targetPath)

			if !tc.wantOutput {
				assert.Empty(t, out)
				return
			}

			require.NotEmpty(t, out)

			var line accessLogLine
			require.NoError(t, json.Unmarshal([]byte(out), &line))

			assert.Equal(t, fiber.StatusOK, line.Status)
			assert.Equal(t, tc.targetPath, line.URI)
			assert.Equal(t, fiber.MethodGet, line.Method)
		})
	}
}

// runRequest performs one GET through the middleware and captures stdout.
func runRequest(t *testing.T, cfg adapter.Config, target string) string {
	t.Helper()

	stdout := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	app := fiber.New()
	app.Use(adapter.New(cfg))
	app.Get(target, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest(fiber.MethodGet, target, nil)
	_, err = app.Test(req)
	require.NoError(t, err)

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout

	return <-outC
}
