// Package ftp adapts FTP uploads to the agent tool interface.
package ftp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ftplib "github.com/jlaffaye/ftp"
)

// Config holds the connection settings. Host may include a port; the default
// is 21.
type Config struct {
	Host     string
	User     string
	Password string
	Timeout  time.Duration
}

// Tool uploads local files to an FTP server.
type Tool struct {
	host     string
	user     string
	password string
	timeout  time.Duration
}

// New builds a Tool from explicit configuration.
func New(cfg Config) *Tool {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Tool{
		host:     cfg.Host,
		user:     cfg.User,
		password: cfg.Password,
		timeout:  cfg.Timeout,
	}
}

// NewFromEnv builds a Tool configured from FTP_HOST, FTP_USER, and
// FTP_PASSWORD. Missing values are reported when the tool is called.
func NewFromEnv() *Tool {
	return New(Config{
		Host:     os.Getenv("FTP_HOST"),
		User:     os.Getenv("FTP_USER"),
		Password: os.Getenv("FTP_PASSWORD"),
	})
}

func (t *Tool) Name() string { return "ftp_upload" }

func (t *Tool) Description() string {
	return "Upload a local file to the configured FTP server. Input is the path of the file to upload."
}

// Call uploads the file at the input path under its base name. Operational
// failures come back as diagnostic text rather than an error.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	if t.host == "" || t.user == "" || t.password == "" {
		return "FTP is not configured: set FTP_HOST, FTP_USER, and FTP_PASSWORD in your project's .env file.", nil
	}

	local := strings.TrimSpace(input)
	f, err := os.Open(local)
	if err != nil {
		return fmt.Sprintf("Could not open %s: %v", local, err), nil
	}
	defer f.Close()

	addr := t.host
	if !strings.Contains(addr, ":") {
		addr += ":21"
	}
	conn, err := ftplib.Dial(addr, ftplib.DialWithContext(ctx), ftplib.DialWithTimeout(t.timeout))
	if err != nil {
		return fmt.Sprintf("Could not connect to %s: %v", addr, err), nil
	}
	defer conn.Quit()

	if err := conn.Login(t.user, t.password); err != nil {
		return fmt.Sprintf("FTP login failed for %s: %v", t.user, err), nil
	}

	remote := filepath.Base(local)
	if err := conn.Stor(remote, f); err != nil {
		return fmt.Sprintf("Uploading %s failed: %v", remote, err), nil
	}
	return fmt.Sprintf("Uploaded %s to %s as %s.", local, t.host, remote), nil
}
