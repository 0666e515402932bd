package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"inquiry-desk/utils"
)

func TestFindChromeBinaryPrefersEnv(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")
	if got := findChromeBinary(); got != "/opt/custom/chrome" {
		t.Errorf("findChromeBinary: got %q, want /opt/custom/chrome", got)
	}
}

func TestNewPDFRendererKeepsExplicitBinary(t *testing.T) {
	t.Setenv("CHROME_BIN", "/from/env")
	p := NewPDFRenderer("/from/config", utils.NewNopLogger())
	if p.chromeBin != "/from/config" {
		t.Errorf("chromeBin: got %q, want /from/config", p.chromeBin)
	}
}

func TestRenderFailsWithoutBrowser(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-chrome")
	p := NewPDFRenderer(missing, utils.NewNopLogger())
	p.timeout = 5 * time.Second

	if _, err := p.Render(context.Background(), []byte("<html><body>x</body></html>")); err == nil {
		t.Fatal("expected an error when the browser binary does not exist")
	}
}
