// Package testutil provides an in-process stand-in for the auction house API.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
)

// Reply is a canned response.
type Reply struct {
	Status int
	Body   string
}

// FakeAPI serves buscar-lotes and buscar-leilao from canned replies and
// records the form values it received.
type FakeAPI struct {
	*httptest.Server

	Sold    Reply
	Unsold  Reply
	Auction Reply

	mu    sync.Mutex
	forms []map[string]string
	ids   []string
}

// NewFakeAPI starts the server; it is closed with the test.
//
// Routes:
//   - POST /buscar-lotes: Sold or Unsold reply, chosen by nm_vendidos.
//   - POST /buscar-leilao: Auction reply.
func NewFakeAPI(t interface{ Cleanup(func()) }) *FakeAPI {
	gin.SetMode(gin.TestMode)

	f := &FakeAPI{
		Sold:    Reply{Status: http.StatusOK, Body: "[]"},
		Unsold:  Reply{Status: http.StatusOK, Body: "[]"},
		Auction: Reply{Status: http.StatusNotFound, Body: "{}"},
	}

	r := gin.New()
	r.POST("/buscar-lotes", func(c *gin.Context) {
		f.record(c)
		reply := f.Unsold
		if c.PostForm("nm_vendidos") == "S" {
			reply = f.Sold
		}
		c.Data(reply.Status, "application/json", []byte(reply.Body))
	})
	r.POST("/buscar-leilao", func(c *gin.Context) {
		f.record(c)
		c.Data(f.Auction.Status, "application/json", []byte(f.Auction.Body))
	})

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Close)
	return f
}

func (f *FakeAPI) record(c *gin.Context) {
	form := map[string]string{}
	for _, k := range []string{"url_leiloeiro", "leilao_id", "nm_vendidos"} {
		if v, ok := c.GetPostForm(k); ok {
			form[k] = v
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forms = append(f.forms, form)
	f.ids = append(f.ids, c.GetHeader("X-Request-ID"))
}

// LotsURL is the buscar-lotes endpoint.
func (f *FakeAPI) LotsURL() string { return f.URL + "/buscar-lotes" }

// AuctionURL is the buscar-leilao endpoint.
func (f *FakeAPI) AuctionURL() string { return f.URL + "/buscar-leilao" }

// Forms returns the form values of every request received so far.
func (f *FakeAPI) Forms() []map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]string(nil), f.forms...)
}

// RequestIDs returns the X-Request-ID header of every request received so far.
func (f *FakeAPI) RequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ids...)
}
