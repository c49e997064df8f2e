package e2e

import (
	"bytes"
	"context"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	addr := freeAddr(t)
	baseURL := "http://" + addr

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	server := exec.CommandContext(ctx, binaryPath, "dev-server", "--listen", addr, "--token", "smoke")
	server.Env = testEnv(home)
	require.NoError(t, server.Start())
	t.Cleanup(func() {
		cancel()
		_ = server.Wait()
	})
	waitForListener(t, addr)

	_, stderr, err := runInvscan(t, binaryPath, home, "",
		"profile", "set",
		"--base-url", baseURL,
		"--borrower", "smoke",
		"--session", "demo",
		"--token", "smoke",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runInvscan(t, binaryPath, home, "", "items", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Epson Beamer")

	labels := t.TempDir()
	_, stderr, err = runInvscan(t, binaryPath, home, "", "label", "--item", "2", "--dir", labels)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runInvscan(t, binaryPath, home, "",
		"scan", "--mode", "cart", "--frames", labels, "--interval", "0", "--checkout",
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Rode NTG4+ added")
	assert.Contains(t, stdout, "Checked out 1 item(s) for smoke")

	stdout, stderr, err = runInvscan(t, binaryPath, home, "PROD-2\n", "scan", "--mode", "return", "--manual")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "returned 1 item(s)")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "invscan-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/invscan")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build invscan binary: %s", string(output))
	return binaryPath
}

func runInvscan(t *testing.T, binaryPath, home string, input string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = testEnv(home)
	cmd.Stdin = strings.NewReader(input)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// testEnv isolates HOME and drops PATH so tokens go to the file store.
func testEnv(home string) []string {
	env := []string{"HOME=" + home, "PATH=" + filepath.Join(home, "no-bin")}
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "HOME=") || strings.HasPrefix(kv, "PATH=") || strings.HasPrefix(kv, "INVSCAN_") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, "INVSCAN_LOG_LEVEL=error")
}

func freeAddr(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	return addr
}

func waitForListener(t *testing.T, addr string) {
	t.Helper()

	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 5*time.Second, 50*time.Millisecond)
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
