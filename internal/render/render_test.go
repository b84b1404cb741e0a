package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojasmm/sonora/internal/catalog"
)

func parse(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc
}

func newDefaultRenderer() *Renderer {
	products, _ := catalog.Defaults()
	return New(products)
}

func TestBotProductLink(t *testing.T) {
	r := newDefaultRenderer()
	doc := parse(t, r.Bot("**Sony WH-1000XM5**"))

	links := doc.Find("a." + ControlClass)
	require.Equal(t, 1, links.Length())

	target, ok := links.Attr(NavigateAttr)
	require.True(t, ok)
	assert.Equal(t, "https://www.amazon.com/s?k=Sony+WH-1000XM5", target)
	assert.Equal(t, "Sony WH-1000XM5", links.Text())
	title, _ := links.Attr("title")
	assert.Equal(t, "View Sony WH-1000XM5 in browser", title)
}

func TestBotUnknownProductIsBold(t *testing.T) {
	r := newDefaultRenderer()
	doc := parse(t, r.Bot("Try the **Mystery Phones** today"))

	assert.Equal(t, 0, doc.Find("a").Length())
	assert.Equal(t, "Mystery Phones", doc.Find("strong").Text())
	assert.Equal(t, "Try the Mystery Phones today", doc.Find("body").Text())
}

func TestLongURLLabelIsTruncated(t *testing.T) {
	url := "https://example.com/" + strings.Repeat("a", 40)
	require.Len(t, url, 60)

	r := newDefaultRenderer()
	for _, role := range []Role{RoleBot, RoleUser} {
		t.Run(string(role), func(t *testing.T) {
			doc := parse(t, r.Render("look: "+url, role))
			link := doc.Find("a." + ControlClass)
			require.Equal(t, 1, link.Length())

			target, _ := link.Attr(NavigateAttr)
			assert.Equal(t, url, target)
			assert.Equal(t, url[:47]+"...", link.Text())
		})
	}
}

func TestShortURLLabelIsFull(t *testing.T) {
	url := "https://example.com/phones"
	doc := parse(t, newDefaultRenderer().User(url))
	assert.Equal(t, url, doc.Find("a").Text())
}

func TestBotMixedProductsAndURLs(t *testing.T) {
	r := newDefaultRenderer()
	out := r.Bot("See **Sony WH-1000XM5** or https://example.com/deals for more.")
	doc := parse(t, out)

	links := doc.Find("a." + ControlClass)
	require.Equal(t, 2, links.Length())

	first, _ := links.Eq(0).Attr(NavigateAttr)
	second, _ := links.Eq(1).Attr(NavigateAttr)
	assert.Equal(t, "https://www.amazon.com/s?k=Sony+WH-1000XM5", first)
	assert.Equal(t, "https://example.com/deals", second)
	assert.Equal(t, "See Sony WH-1000XM5 or https://example.com/deals for more.", doc.Find("body").Text())
}

func TestProductLabelIsNotLinkifiedTwice(t *testing.T) {
	products, err := catalog.NewCatalog([]catalog.Product{
		{Name: "https://phones.example/x", URL: "https://shop.example/phones"},
	})
	require.NoError(t, err)

	doc := parse(t, New(products).Bot("**https://phones.example/x**"))
	links := doc.Find("a")
	require.Equal(t, 1, links.Length())

	target, _ := links.Attr(NavigateAttr)
	assert.Equal(t, "https://shop.example/phones", target)
	assert.Equal(t, "https://phones.example/x", links.Text())
}

func TestUserTextSkipsEmphasis(t *testing.T) {
	doc := parse(t, newDefaultRenderer().User("**Sony WH-1000XM5**"))
	assert.Equal(t, 0, doc.Find("a").Length())
	assert.Equal(t, 0, doc.Find("strong").Length())
	assert.Equal(t, "**Sony WH-1000XM5**", doc.Find("body").Text())
}

func TestUserMarkupIsStripped(t *testing.T) {
	doc := parse(t, newDefaultRenderer().User(`<b onclick="x()">hi</b> <script>alert(1)</script>https://x.io/a?b=1&c=2`))

	assert.Equal(t, 0, doc.Find("b").Length())
	assert.Equal(t, 0, doc.Find("script").Length())

	link := doc.Find("a." + ControlClass)
	require.Equal(t, 1, link.Length())
	target, _ := link.Attr(NavigateAttr)
	assert.Equal(t, "https://x.io/a?b=1&c=2", target)
}

func TestBotTextIsEscaped(t *testing.T) {
	doc := parse(t, newDefaultRenderer().Bot(`Tom & Jerry <3 "quotes"`))
	assert.Equal(t, 0, doc.Find("a").Length())
	assert.Equal(t, `Tom & Jerry <3 "quotes"`, doc.Find("body").Text())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "https://a.io", Label("https://a.io"))

	exact := "https://" + strings.Repeat("b", 42)
	require.Len(t, exact, 50)
	assert.Equal(t, exact, Label(exact))

	long := "https://" + strings.Repeat("é", 60)
	got := Label(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Len(t, []rune(got), 50)
}

func TestFindURL(t *testing.T) {
	u, ok := FindURL("check HTTPS://Example.com/a and http://b.io")
	require.True(t, ok)
	assert.Equal(t, "HTTPS://Example.com/a", u)

	_, ok = FindURL("no links here, just www.example.com")
	assert.False(t, ok)
}
