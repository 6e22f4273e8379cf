package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/mmdatafocus/pos_frontend/api"
	"bitbucket.org/mmdatafocus/pos_frontend/utils"
)

func testSession() api.Session {
	return api.Session{Token: "test-token", Username: "tester", UserID: 1}
}

// No token means skip the fetch and return an empty collection. This is a
// normal state, not an error: an unauthenticated view shows no products.
func TestGetProducts_NoTokenReturnsEmpty(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := api.NewClientWith(srv.URL, srv.Client(), nil)
	products, err := client.GetProducts(context.Background(), api.Session{}, 0)
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Fatalf("products = %v, want empty non-nil slice", products)
	}
	if called {
		t.Fatal("upstream was called without a token")
	}
}

func TestGetProducts_SendsBearerAndFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Path; got != "/Product" {
			t.Errorf("path = %q", got)
		}
		if got := r.URL.Query().Get("categoryId"); got != "3" {
			t.Errorf("categoryId = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"productName":"Cola","pricePerUnit":100,"stockQuantity":5,"reorderLevel":2,"categoryId":3}]`))
	}))
	defer srv.Close()

	client := api.NewClientWith(srv.URL, srv.Client(), nil)
	products, err := client.GetProducts(context.Background(), testSession(), 3)
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(products) != 1 || products[0].ProductName != "Cola" {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestGetProducts_RejectsNonConformingPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing required product name.
		w.Write([]byte(`[{"id":1,"stockQuantity":5}]`))
	}))
	defer srv.Close()

	client := api.NewClientWith(srv.URL, srv.Client(), nil)
	if _, err := client.GetProducts(context.Background(), testSession(), 0); err == nil {
		t.Fatal("non-conforming payload was accepted")
	}
}

func TestGetSales_SortedNewestFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"saleId":1,"invoiceNo":"INV-1","saleDate":"2026-08-01T10:00:00Z","totalAmount":100},
			{"saleId":2,"invoiceNo":"INV-2","saleDate":"2026-08-20T10:00:00Z","totalAmount":200}
		]`))
	}))
	defer srv.Close()

	client := api.NewClientWith(srv.URL, srv.Client(), nil)
	sales, err := client.GetSales(context.Background(), testSession())
	if err != nil {
		t.Fatalf("GetSales: %v", err)
	}
	if len(sales) != 2 || sales[0].SaleId != 2 {
		t.Fatalf("sales not sorted newest first: %+v", sales)
	}
}

func TestGetSaleByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := api.NewClientWith(srv.URL, srv.Client(), nil)
	_, err := client.GetSaleByID(context.Background(), testSession(), 99)
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("got %v, want ErrorRecordNotFound", err)
	}
}

func TestSubmitSale_NoTokenFails(t *testing.T) {
	client := api.NewClientWith("http://127.0.0.1:0", nil, nil)
	_, err := client.SubmitSale(context.Background(), api.Session{}, validSale())
	if !errors.Is(err, api.ErrMissingCredential) {
		t.Fatalf("got %v, want ErrMissingCredential", err)
	}
}

func TestSubmitSale_ServerRejectionCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"insufficient stock for product 1"}`))
	}))
	defer srv.Close()

	client := api.NewClientWith(srv.URL, srv.Client(), nil)
	_, err := client.SubmitSale(context.Background(), testSession(), validSale())

	var rejected *api.ServerRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("got %v, want ServerRejectedError", err)
	}
	if rejected.Message != "insufficient stock for product 1" {
		t.Errorf("message = %q, want the upstream message verbatim", rejected.Message)
	}
}

func TestSubmitSale_TransportFailureWrapsErrNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := api.NewClientWith(srv.URL, nil, nil)
	_, err := client.SubmitSale(context.Background(), testSession(), validSale())
	if !errors.Is(err, api.ErrNetwork) {
		t.Fatalf("got %v, want ErrNetwork", err)
	}
}

func TestSubmitSale_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/Sale" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"saleId":42,"invoiceNo":"INV-42","totalAmount":365}`))
	}))
	defer srv.Close()

	client := api.NewClientWith(srv.URL, srv.Client(), nil)
	confirmation, err := client.SubmitSale(context.Background(), testSession(), validSale())
	if err != nil {
		t.Fatalf("SubmitSale: %v", err)
	}
	if confirmation.InvoiceNo != "INV-42" {
		t.Errorf("invoice = %q, want INV-42", confirmation.InvoiceNo)
	}
}
