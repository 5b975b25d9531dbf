package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIsIdempotent(t *testing.T) {
	require.NoError(t, Init())
	require.NoError(t, Init())
}

func TestRenderProduct(t *testing.T) {
	html, err := RenderProduct(product("prod_1", "R$ 79,90"))
	require.NoError(t, err)

	body := string(html)
	assert.Contains(t, body, "<title>Camiseta prod_1 | Ignite Shop</title>")
	assert.Contains(t, body, `src="https://files.example/prod_1.png"`)
	assert.Contains(t, body, "<h1>Camiseta prod_1</h1>")
	assert.Contains(t, body, "R$ 79,90")
	assert.Contains(t, body, "<p>Tecido leve</p>")
	assert.Contains(t, body, `data-price-id="price_prod_1"`)
	assert.Contains(t, body, "Comprar agora")
}

func TestRenderProduct_NoDescription(t *testing.T) {
	p := product("prod_1", "R$ 79,90")
	p.Description = nil

	html, err := RenderProduct(p)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "Tecido leve")
}

func TestRenderProduct_EscapesCatalogText(t *testing.T) {
	p := product("prod_1", "R$ 79,90")
	p.Name = `<script>alert(1)</script>`

	html, err := RenderProduct(p)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>alert(1)</script>")
}

func TestRenderProduct_Deterministic(t *testing.T) {
	a, err := RenderProduct(product("prod_1", "R$ 79,90"))
	require.NoError(t, err)
	b, err := RenderProduct(product("prod_1", "R$ 79,90"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, ETag(a), ETag(b))
}

func TestRenderFallback(t *testing.T) {
	html, err := RenderFallback("prod_1")
	require.NoError(t, err)

	body := string(html)
	assert.Contains(t, body, "Loading...")
	assert.Contains(t, body, "_data")
	assert.Contains(t, body, "prod_1")
}

func TestDataPath(t *testing.T) {
	assert.Equal(t, "/_data/product/prod_1", DataPath("prod_1"))
	assert.Equal(t, "/_data/product/a%2Fb", DataPath("a/b"))
}

func TestRenderHome(t *testing.T) {
	html, err := RenderHome()
	require.NoError(t, err)
	assert.Contains(t, string(html), "<title>Ignite Shop</title>")
}

func TestRenderSuccess(t *testing.T) {
	html, err := RenderSuccess("cs_test_<1>")
	require.NoError(t, err)

	body := string(html)
	assert.Contains(t, body, "<title>Compra efetuada | Ignite Shop</title>")
	assert.Contains(t, body, "cs_test_&lt;1&gt;")
	assert.Contains(t, body, `href="/"`)
}

func TestRenderProduct_LayoutBlocksDoNotLeakBetweenPages(t *testing.T) {
	productHTML, err := RenderProduct(product("prod_1", "R$ 79,90"))
	require.NoError(t, err)
	home, err := RenderHome()
	require.NoError(t, err)

	assert.NotContains(t, string(productHTML), "Escolha um produto")
	assert.NotContains(t, string(home), "Comprar agora")
}
