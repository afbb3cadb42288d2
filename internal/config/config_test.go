package config

import (
	"path/filepath"
	"testing"
)

func TestReadConfig(t *testing.T) {
	var (
		err         error
		projectRoot string
	)

	// Get the project root by going up from internal/config
	projectRoot, err = filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	if cfg.DB.Host == "" {
		t.Error("DB.Host should not be empty")
	}
}

// The default config path is the etc directory next to the binary; the
// start command passes an empty path when the flag is not set.
func TestReadConfig_DefaultPath(t *testing.T) {
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	t.Chdir(projectRoot)

	cfg, err := ReadConfig("")
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}
}

// A config without an explicit ShutDownTime gets the 5 second default, so
// the graceful drain in WaitShutdown is never skipped.
func TestValidate_DefaultShutDownTime(t *testing.T) {
	cfg := Config{Webserver: Webserver{Port: 8080, URL: "http://localhost"}}

	if err := validate(&cfg); err != nil {
		t.Fatalf("validate() unexpected error = %v", err)
	}

	if cfg.Webserver.ShutDownTime != 5 {
		t.Errorf("ShutDownTime = %d, want 5", cfg.Webserver.ShutDownTime)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         Config
		expectedErr error
	}{
		{
			name:        "missing port",
			cfg:         Config{Webserver: Webserver{URL: "http://localhost"}},
			expectedErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name:        "missing url",
			cfg:         Config{Webserver: Webserver{Port: 8080}},
			expectedErr: ErrEmptyURL,
		},
		{
			name: "valid",
			cfg:  Config{Webserver: Webserver{Port: 8080, URL: "http://localhost"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate(&tc.cfg)

			if tc.expectedErr == nil {
				if err != nil {
					t.Fatalf("validate() unexpected error = %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("validate() expected error %v, got nil", tc.expectedErr)
			}
		})
	}
}
