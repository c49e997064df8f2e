package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/invscan/internal/adapters/inventory/memserver"
	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newMemClient(t *testing.T, token string) (Client, *memserver.Server) {
	t.Helper()

	mem := memserver.New(memserver.Options{Token: token, Now: func() time.Time { return fixedNow }})
	mem.Seed()
	server := httptest.NewServer(mem.Handler())
	t.Cleanup(server.Close)

	return Client{BaseURL: server.URL, Token: token, HTTPClient: server.Client()}, mem
}

func TestClientListItemsDefaultsStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inventory/api/products", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":7,"name":"Kamera","category_name":"AV","folder_name":"Lager","extra":"ignored"},{"id":8,"name":"Mikro","status":"Borrowed"}]`))
	}))
	t.Cleanup(server.Close)

	items, err := Client{BaseURL: server.URL, Token: "tok", HTTPClient: server.Client()}.ListItems(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.Item{ID: 7, Name: "Kamera", Category: "AV", FolderName: "Lager", Status: domain.ItemStatusAvailable}, items[0])
	assert.Equal(t, domain.ItemStatusBorrowed, items[1].Status)
}

func TestClientRejectsMissingToken(t *testing.T) {
	t.Parallel()

	client, _ := newMemClient(t, "secret")
	client.Token = ""

	_, err := client.ListItems(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Status)
}

func TestClientCartDuplicateKeepsCount(t *testing.T) {
	t.Parallel()

	client, _ := newMemClient(t, "secret")
	ctx := context.Background()

	first, err := client.AddToCart(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, 1, first.CartCount)
	assert.Equal(t, "Laptop Pool 7", first.Item.Name)

	_, err = client.AddToCart(ctx, "PROD-123")
	assert.ErrorIs(t, err, domain.ErrAlreadyInCart)

	second, err := client.AddToCart(ctx, "LAB-KIT-A")
	assert.ErrorIs(t, err, domain.ErrAlreadyInCart)
	assert.Zero(t, second.CartCount)

	_, err = client.AddToCart(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestClientCheckoutAndReturnRoundTrip(t *testing.T) {
	t.Parallel()

	client, mem := newMemClient(t, "")
	ctx := context.Background()

	_, err := client.AddToCart(ctx, "1")
	require.NoError(t, err)
	_, err = client.AddToCart(ctx, "2")
	require.NoError(t, err)
	require.NoError(t, client.RemoveFromCart(ctx, 2))

	expected := fixedNow.Add(48 * time.Hour)
	transactionID, err := client.Checkout(ctx, ports.CheckoutRequest{Borrower: "mara", ExpectedReturnAt: expected})
	require.NoError(t, err)
	assert.NotEmpty(t, transactionID)

	record, err := client.FindActiveBorrow(ctx, "PROD-1")
	require.NoError(t, err)
	assert.Equal(t, transactionID, record.TransactionID)
	assert.Equal(t, []domain.ItemID{1}, record.Items)
	assert.Equal(t, "mara", record.Borrower)
	assert.True(t, record.ExpectedReturnAt.Equal(expected))

	require.NoError(t, client.ReturnItem(ctx, "1", transactionID))
	item, _ := mem.Item(1)
	assert.Equal(t, domain.ItemStatusAvailable, item.Status)

	err = client.ReturnItem(ctx, "1", transactionID)
	assert.ErrorIs(t, err, domain.ErrNoActiveBorrow)

	_, err = client.FindActiveBorrow(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNoActiveBorrow)
}

func TestClientCheckoutEmptyCartFails(t *testing.T) {
	t.Parallel()

	client, _ := newMemClient(t, "")

	_, err := client.Checkout(context.Background(), ports.CheckoutRequest{Borrower: "mara"})
	assert.ErrorContains(t, err, "cart is empty")

	_, err = client.Checkout(context.Background(), ports.CheckoutRequest{})
	assert.ErrorContains(t, err, "borrower is required")
}

func TestClientCycleCountEndpoints(t *testing.T) {
	t.Parallel()

	client, mem := newMemClient(t, "")
	ctx := context.Background()

	session, err := client.ListSessionEntries(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, "Demo Inventur", session.Name)
	_, total := session.Progress()
	assert.Equal(t, 5, total)

	item, err := client.ScanInSession(ctx, "demo", "LAB-KIT-A")
	require.NoError(t, err)
	assert.Equal(t, domain.ItemID(123), item.ID)

	_, err = client.ScanInSession(ctx, "demo", "nothing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	checked, err := client.SetChecked(ctx, "demo", 42, true)
	require.NoError(t, err)
	assert.True(t, checked.Checked)
	assert.True(t, checked.CheckedAt.Equal(fixedNow))

	updated, err := client.UpdateEntry(ctx, "demo", domain.SessionEntry{ItemID: 42, Checked: true, NewLocation: "B3", Notes: "Kabel fehlt"})
	require.NoError(t, err)
	assert.Equal(t, "B3", updated.NewLocation)
	assert.True(t, updated.LocationChanged)
	assert.False(t, updated.ConditionChanged)

	entry, ok := mem.Entry("demo", 42)
	require.True(t, ok)
	assert.Equal(t, "Kabel fehlt", entry.Notes)

	_, err = client.ListSessionEntries(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestReturnItemOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "redirect away from the form",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/inventory/borrows", http.StatusFound)
			},
		},
		{
			name: "redirect back to the form",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/inventory/return/", http.StatusFound)
			},
			wantErr: "redirected back to the return form",
		},
		{
			name: "plain page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<div class=\"alert alert-success\">Zurückgegeben</div>"))
			},
		},
		{
			name: "page with error alert",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<div class=\"alert alert-danger\">Fehler</div>"))
			},
			wantErr: "return form reported an error",
		},
		{
			name: "json failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success":false,"error":"QR code unknown"}`))
			},
			wantErr: "QR code unknown",
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: "status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "PROD-9", r.PostForm.Get("qr_code"))
				assert.Equal(t, "tx-1", r.PostForm.Get("transaction_id"))
				tt.handler(w, r)
			}))
			defer server.Close()

			err := Client{BaseURL: server.URL, HTTPClient: server.Client()}.ReturnItem(context.Background(), "PROD-9", "tx-1")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestClientRequestTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	client := Client{BaseURL: server.URL, HTTPClient: server.Client(), RequestTimeout: 20 * time.Millisecond}
	_, err := client.ListItems(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list products")
}

func TestBuildAPIURLKeepsBasePath(t *testing.T) {
	t.Parallel()

	got, err := buildAPIURL("https://hub.example.com/team/", "/inventory/api/products")
	require.NoError(t, err)
	assert.Equal(t, "https://hub.example.com/team/inventory/api/products", got)

	_, err = buildAPIURL("ftp://hub.example.com", "/x")
	assert.Error(t, err)
}
