package httpapi_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/payment"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/nikolayk812/storefront/internal/view"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

const (
	webhookSecret = "whsec_test"
	baseURL       = "http://shop.test"
)

type testEnv struct {
	store    *fakeStore
	provider *payment.FakeProvider
	router   http.Handler
}

func newTestEnv(t *testing.T, opts httpapi.Options) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	catalog := &fakeCatalog{products: map[int64]domain.Product{
		1: {ID: 1, Name: "Mug", Price: domain.NewMoney(decimal.RequireFromString("12.99"), currency.USD), Stock: 10},
		2: {ID: 2, Name: "Poster", Price: domain.NewMoney(decimal.RequireFromString("5.50"), currency.USD), Stock: 10},
		3: {ID: 3, Name: "Scarf", Price: domain.NewMoney(decimal.RequireFromString("20"), currency.EUR), Stock: 10},
	}}

	store := newFakeStore()
	carts := session.NewRedisCartStore(client, time.Hour)
	provider := payment.NewFakeProvider(webhookSecret)
	dedup := session.NewRedisEventDeduplicator(client, time.Hour)

	views, err := view.New()
	require.NoError(t, err)

	if opts.BaseURL == "" {
		opts.BaseURL = baseURL
	}

	h := httpapi.NewHandler(
		carts,
		service.NewCheckout(catalog, store, provider),
		service.NewReconciler(provider, store, dedup, currency.USD),
		views,
		opts,
	)

	return &testEnv{
		store:    store,
		provider: provider,
		router:   httpapi.NewRouter(h, slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

// client keeps cookies between requests and never follows redirects.
type client struct {
	t    *testing.T
	http *http.Client
	url  string
}

func (e *testEnv) start(t *testing.T, handler http.Handler) *client {
	t.Helper()

	if handler == nil {
		handler = e.router
	}

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &client{
		t: t,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		url: srv.URL,
	}
}

func (c *client) do(method, path string, form url.Values, header http.Header) (*http.Response, string) {
	c.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, c.url+path, body)
	require.NoError(c.t, err)

	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	return resp, string(data)
}

func (c *client) get(path string) (*http.Response, string) {
	return c.do(http.MethodGet, path, nil, nil)
}

func (c *client) post(path string, form url.Values) (*http.Response, string) {
	if form == nil {
		form = url.Values{}
	}
	return c.do(http.MethodPost, path, form, nil)
}

func (c *client) postJSON(path string, form url.Values) (*http.Response, httpapi.CartResponse) {
	c.t.Helper()

	if form == nil {
		form = url.Values{}
	}
	resp, body := c.do(http.MethodPost, path, form, http.Header{"Accept": {"application/json"}})

	var out httpapi.CartResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(c.t, json.Unmarshal([]byte(body), &out))
	}
	return resp, out
}

func (c *client) cartCount() int {
	c.t.Helper()

	resp, body := c.get("/cart/count")
	require.Equal(c.t, http.StatusOK, resp.StatusCode)

	var out httpapi.CountResponse
	require.NoError(c.t, json.Unmarshal([]byte(body), &out))
	return out.Count
}

func validCustomerForm() url.Values {
	return url.Values{
		"name":    {"Ann Lee"},
		"email":   {"ann@example.com"},
		"phone":   {""},
		"address": {"1 Main St"},
	}
}
