// Package testsite serves a small quotes.toscrape.com look-alike for tests.
// Pages are keyed by request URI and rendered with the same markup as the
// real site, so the default selectors work against it unchanged.
package testsite

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
)

// Quote is one rendered quote block.
type Quote struct {
	Text   string
	Author string
	Tags   []string

	// OmitAuthor drops the author element from the block.
	OmitAuthor bool
}

// Page is one listing page.
type Page struct {
	Quotes []Quote

	// Next is the raw href of the next link. Empty renders no pager.
	Next string

	// Status overrides the response status. Zero means 200.
	Status int

	// Raw replaces the rendered HTML with a text/plain body.
	Raw string
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Quotes to Scrape</title>
</head>
<body>
<div class="container">
<div class="row header-box">
<div class="col-md-8"><h1><a href="/" style="text-decoration: none">Quotes to Scrape</a></h1></div>
</div>
<div class="row">
<div class="col-md-8">
{{range .Quotes}}
<div class="quote" itemscope itemtype="http://schema.org/CreativeWork">
    <span class="text" itemprop="text">{{.Text}}</span>
    <span>by {{if not .OmitAuthor}}<small class="author" itemprop="author">{{.Author}}</small>{{end}}
    <a href="/author/">(about)</a>
    </span>
    <div class="tags">
        Tags:
        <meta class="keywords" itemprop="keywords" content="">
        {{range .Tags}}
        <a class="tag" href="/tag/{{.}}/page/1/">{{.}}</a>
        {{end}}
    </div>
</div>
{{end}}
<nav>
    <ul class="pager">
        {{if .Next}}
        <li class="next">
            <a href="{{.Next}}">Next <span aria-hidden="true">&rarr;</span></a>
        </li>
        {{end}}
    </ul>
</nav>
</div>
</div>
</div>
</body>
</html>
`

// Site is a fixture quote site.
type Site struct {
	engine *gin.Engine
	pages  map[string]Page

	mu   sync.Mutex
	hits map[string]int
}

// New creates a site serving pages keyed by request URI ("/", "/page/2/",
// "/list?page=2"). Unknown URIs get a 404.
func New(pages map[string]Page) *Site {
	gin.SetMode(gin.TestMode)

	s := &Site{
		engine: gin.New(),
		pages:  pages,
		hits:   make(map[string]int),
	}

	s.engine.SetHTMLTemplate(template.Must(template.New("page").Parse(pageTemplate)))
	s.engine.GET("/*path", s.serve)

	return s
}

// NewServer starts an httptest server for the site. The caller closes it.
func NewServer(pages map[string]Page) (*Site, *httptest.Server) {
	s := New(pages)
	return s, httptest.NewServer(s.Handler())
}

// Handler returns the site's HTTP handler.
func (s *Site) Handler() http.Handler {
	return s.engine
}

// Hits returns how many times uri was requested.
func (s *Site) Hits(uri string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hits[uri]
}

func (s *Site) serve(c *gin.Context) {
	uri := c.Request.URL.RequestURI()

	s.mu.Lock()
	s.hits[uri]++
	s.mu.Unlock()

	page, ok := s.pages[uri]
	if !ok {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}

	status := page.Status
	if status == 0 {
		status = http.StatusOK
	}

	if page.Raw != "" {
		c.Data(status, "text/plain; charset=utf-8", []byte(page.Raw))
		return
	}

	c.HTML(status, "page", page)
}
