package handler

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	renderer, err := NewRenderer(RendererConfig{
		TemplatesDir: "../../web/templates",
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		IsDev:        false,
	})
	require.NoError(t, err)
	return renderer
}

func TestRendererLoadsTemplateSets(t *testing.T) {
	renderer := newTestRenderer(t)

	names := renderer.ListTemplates()
	for _, want := range []string{"public/home", "public/contato", "partial/checkout"} {
		assert.Contains(t, names, want)
	}
}

func TestRenderHTMLClosedWizardShell(t *testing.T) {
	renderer := newTestRenderer(t)

	html, err := renderer.RenderHTML("partial/checkout", &checkoutView{})
	require.NoError(t, err)

	assert.Contains(t, html, `id="checkout-root"`)
	assert.NotContains(t, html, "checkout-overlay")
}

func TestRenderUnknownTemplateFails(t *testing.T) {
	renderer := newTestRenderer(t)

	_, err := renderer.RenderHTML("public/missing", nil)
	assert.Error(t, err)
}
