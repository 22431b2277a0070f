package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akz4ol/gatewayops-go/internal/testutil"
	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	resetViper(t)
	home := testutil.SetupTestHome(t)

	loginKey = "gwo_test_abcdef123456"
	t.Cleanup(func() { loginKey = "" })

	if err := runLogin(loginCmd, nil); err != nil {
		t.Fatalf("login: %v", err)
	}

	path := filepath.Join(home, ".gwo.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "gwo_test_abcdef123456") {
		t.Errorf("key missing from config:\n%s", data)
	}

	if err := runLogout(logoutCmd, nil); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file should be removed on logout")
	}

	// Logging out twice is not an error.
	if err := runLogout(logoutCmd, nil); err != nil {
		t.Errorf("second logout: %v", err)
	}
}

func TestLoginRejectsBadKey(t *testing.T) {
	resetViper(t)
	testutil.SetupTestHome(t)

	loginKey = "sk-wrong-vendor"
	t.Cleanup(func() { loginKey = "" })

	if err := runLogin(loginCmd, nil); err == nil {
		t.Fatal("expected validation error for non-gwo key")
	}
}

func TestSetupClient_RequiresKey(t *testing.T) {
	resetViper(t)
	testutil.SetupTestHome(t)

	err := setupClient(tracesListCmd, nil)
	if err == nil {
		t.Fatal("expected error when no API key is configured")
	}
	if !strings.Contains(err.Error(), "gwo auth login") {
		t.Errorf("error should point at auth login, got %q", err)
	}
}

func TestSetupClient_KeyFromEnv(t *testing.T) {
	resetViper(t)
	testutil.SetupTestHome(t)
	t.Setenv("GATEWAYOPS_API_KEY", "gwo_env_abcdef123456")

	if err := setupClient(tracesListCmd, nil); err != nil {
		t.Fatalf("setup with env key: %v", err)
	}
	if gw == nil {
		t.Fatal("client not constructed")
	}
}

func TestSetupClient_SkipsAuthForLogin(t *testing.T) {
	resetViper(t)
	testutil.SetupTestHome(t)

	if err := setupClient(loginCmd, nil); err != nil {
		t.Fatalf("login should not require an existing key: %v", err)
	}
}
