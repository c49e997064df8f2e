// Package memserver is an in-memory inventory service speaking the same REST
// API as the production server. It backs the dev-server command and tests.
package memserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bnema/invscan/internal/adapters/inventory/wire"
	"github.com/bnema/invscan/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Options struct {
	// Token, when set, is required as a Bearer token on every request.
	Token string
	Now   func() time.Time
}

type Server struct {
	token string
	now   func() time.Time

	mu       sync.Mutex
	items    map[domain.ItemID]domain.Item
	cart     []domain.ItemID
	borrows  []*domain.BorrowRecord
	sessions map[domain.InventorySessionID]*domain.InventorySession
}

func New(opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		token:    opts.Token,
		now:      opts.Now,
		items:    map[domain.ItemID]domain.Item{},
		sessions: map[domain.InventorySessionID]*domain.InventorySession{},
	}
}

// AddItem stores item, replacing any item with the same id.
func (s *Server) AddItem(item domain.Item) {
	if item.Status == "" {
		item.Status = domain.ItemStatusAvailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

func (s *Server) Item(id domain.ItemID) (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	return item, ok
}

// OpenSession starts a cycle count with one unchecked entry per known item.
func (s *Server) OpenSession(id domain.InventorySessionID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &domain.InventorySession{ID: id, Name: name, Entries: map[domain.ItemID]domain.SessionEntry{}}
	for itemID := range s.items {
		session.Apply(domain.SessionEntry{ItemID: itemID})
	}
	s.sessions[id] = session
}

// Entry returns the server's copy of a session entry.
func (s *Server) Entry(sessionID domain.InventorySessionID, itemID domain.ItemID) (domain.SessionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.SessionEntry{}, false
	}
	entry, ok := session.Entries[itemID]
	return entry, ok
}

func (s *Server) Borrows() []domain.BorrowRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.BorrowRecord, 0, len(s.borrows))
	for _, record := range s.borrows {
		out = append(out, *record)
	}
	return out
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.authenticate)
	r.HandleFunc(wire.PathProducts, s.handleProducts).Methods(http.MethodGet)
	r.HandleFunc(wire.PathBorrowScanner, s.handleBorrowScanner).Methods(http.MethodPost)
	r.HandleFunc(wire.PathReturn, s.handleReturn).Methods(http.MethodPost)
	r.HandleFunc(wire.PathActiveBorrow, s.handleActiveBorrow).Methods(http.MethodGet)
	r.HandleFunc(wire.PathSessionItems, s.handleSessionItems).Methods(http.MethodGet)
	r.HandleFunc(wire.PathSessionCheck, s.handleCheck).Methods(http.MethodPost)
	r.HandleFunc(wire.PathSessionUpdate, s.handleUpdate).Methods(http.MethodPost)
	r.HandleFunc(wire.PathSessionScan, s.handleScan).Methods(http.MethodPost)
	r.HandleFunc("/inventory/borrows", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<p>Borrows</p>"))
	}).Methods(http.MethodGet)
	return r
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			writeJSON(w, http.StatusUnauthorized, wire.ErrorResponse{Error: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	products := make([]wire.Product, 0, len(s.items))
	for _, id := range s.sortedItemIDs() {
		products = append(products, wire.FromItem(s.items[id]))
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleBorrowScanner(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, wire.ErrorResponse{Error: "invalid form"})
		return
	}

	switch r.PostForm.Get("action") {
	case wire.ActionAddToCart:
		writeJSON(w, http.StatusOK, s.addToCart(r.PostForm.Get("qr_code")))
	case wire.ActionRemoveFromCart:
		writeJSON(w, http.StatusOK, s.removeFromCart(r.PostForm.Get("product_id")))
	case wire.ActionCheckout:
		writeJSON(w, http.StatusOK, s.checkout(r.PostForm.Get("borrower"), r.PostForm.Get("expected_return_at")))
	default:
		writeJSON(w, http.StatusBadRequest, wire.ErrorResponse{Error: "unknown action"})
	}
}

func (s *Server) addToCart(code string) wire.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.resolve(code)
	if !ok {
		return wire.CartResponse{ErrorResponse: failure("item not found", wire.CodeNotFound), CartCount: len(s.cart)}
	}
	for _, id := range s.cart {
		if id == item.ID {
			return wire.CartResponse{ErrorResponse: failure("item already in cart", wire.CodeAlreadyInCart), CartCount: len(s.cart)}
		}
	}
	if !item.Borrowable() {
		return wire.CartResponse{ErrorResponse: failure("item is "+string(item.Status), wire.CodeUnavailable), CartCount: len(s.cart)}
	}

	s.cart = append(s.cart, item.ID)
	product := wire.FromItem(item)
	return wire.CartResponse{ErrorResponse: wire.ErrorResponse{Success: true}, Product: &product, CartCount: len(s.cart)}
}

func (s *Server) removeFromCart(rawID string) wire.ErrorResponse {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return failure("invalid product id", "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, itemID := range s.cart {
		if itemID == domain.ItemID(id) {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return wire.ErrorResponse{Success: true}
		}
	}
	return failure("item not in cart", wire.CodeNotFound)
}

func (s *Server) checkout(borrower string, expected string) wire.CheckoutResponse {
	if strings.TrimSpace(borrower) == "" {
		return wire.CheckoutResponse{ErrorResponse: failure("borrower is required", "")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cart) == 0 {
		return wire.CheckoutResponse{ErrorResponse: failure("cart is empty", wire.CodeEmptyCart)}
	}

	record := &domain.BorrowRecord{
		TransactionID:    uuid.NewString(),
		Items:            append([]domain.ItemID(nil), s.cart...),
		Borrower:         borrower,
		BorrowedAt:       s.now(),
		ExpectedReturnAt: wire.ParseTime(expected),
	}
	for _, id := range record.Items {
		item := s.items[id]
		item.Status = domain.ItemStatusBorrowed
		s.items[id] = item
	}
	s.borrows = append(s.borrows, record)
	s.cart = nil

	return wire.CheckoutResponse{ErrorResponse: wire.ErrorResponse{Success: true}, TransactionID: record.TransactionID}
}

func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	record, err := s.returnLocked(r.PostForm.Get("qr_code"), r.PostForm.Get("transaction_id"))
	s.mu.Unlock()

	if err != nil {
		http.Redirect(w, r, wire.PathReturn+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/inventory/borrows?returned="+url.QueryEscape(record.TransactionID), http.StatusSeeOther)
}

func (s *Server) returnLocked(code string, transactionID string) (*domain.BorrowRecord, error) {
	item, ok := s.resolve(code)
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	record := s.activeBorrowLocked(item.ID)
	if record == nil || (transactionID != "" && record.TransactionID != transactionID) {
		return nil, domain.ErrNoActiveBorrow
	}
	if err := record.Close(s.now()); err != nil {
		return nil, err
	}
	for _, id := range record.Items {
		returned := s.items[id]
		returned.Status = domain.ItemStatusAvailable
		s.items[id] = returned
	}
	return record, nil
}

func (s *Server) handleActiveBorrow(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.resolve(r.URL.Query().Get("qr_code"))
	if !ok {
		writeJSON(w, http.StatusNotFound, failure("item not found", wire.CodeNotFound))
		return
	}
	record := s.activeBorrowLocked(item.ID)
	if record == nil {
		writeJSON(w, http.StatusNotFound, failure("no active borrow", ""))
		return
	}

	borrow := wire.FromRecord(*record, s.now())
	writeJSON(w, http.StatusOK, wire.BorrowResponse{ErrorResponse: wire.ErrorResponse{Success: true}, Borrow: &borrow})
}

func (s *Server) handleSessionItems(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.session(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, failure("inventory session not found", ""))
		return
	}

	ids := make([]domain.ItemID, 0, len(session.Entries))
	for id := range session.Entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	resp := wire.SessionItemsResponse{Inventory: wire.Session{ID: string(session.ID), Name: session.Name}, Items: []wire.Entry{}}
	for _, id := range ids {
		entry := wire.FromSessionEntry(session.Entries[id])
		entry.ProductName = s.items[id].Name
		resp.Items = append(resp.Items, entry)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var body wire.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid body", ""))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, entry, ok := s.sessionEntry(w, r)
	if !ok {
		return
	}
	entry.Checked = body.Checked
	entry.CheckedAt = time.Time{}
	if body.Checked {
		entry.CheckedAt = s.now()
	}
	session.Apply(entry)

	writeJSON(w, http.StatusOK, wire.CheckResponse{Checked: entry.Checked, CheckedAt: wire.FormatTime(entry.CheckedAt)})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body wire.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid body", ""))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, entry, ok := s.sessionEntry(w, r)
	if !ok {
		return
	}
	item := s.items[entry.ItemID]
	if body.Checked && !entry.Checked {
		entry.CheckedAt = s.now()
	}
	entry.Checked = body.Checked
	entry.Notes = body.Notes
	entry.NewLocation = body.NewLocation
	entry.NewCondition = body.NewCondition
	entry.LocationChanged = body.NewLocation != "" && body.NewLocation != item.Location
	entry.ConditionChanged = body.NewCondition != "" && body.NewCondition != item.Condition
	session.Apply(entry)

	writeJSON(w, http.StatusOK, wire.UpdateResponse{Item: wire.FromSessionEntry(entry)})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var body wire.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid body", ""))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.session(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, failure("inventory session not found", ""))
		return
	}
	item, ok := s.resolve(body.QRData)
	if !ok {
		writeJSON(w, http.StatusNotFound, failure("item not found", wire.CodeNotFound))
		return
	}
	if _, tracked := session.Entries[item.ID]; !tracked {
		session.Apply(domain.SessionEntry{ItemID: item.ID})
	}

	writeJSON(w, http.StatusOK, wire.ScanResponse{Product: wire.FromItem(item)})
}

func (s *Server) session(r *http.Request) (*domain.InventorySession, bool) {
	session, ok := s.sessions[domain.InventorySessionID(mux.Vars(r)["session"])]
	return session, ok
}

func (s *Server) sessionEntry(w http.ResponseWriter, r *http.Request) (*domain.InventorySession, domain.SessionEntry, bool) {
	session, ok := s.session(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, failure("inventory session not found", ""))
		return nil, domain.SessionEntry{}, false
	}
	id, err := strconv.ParseInt(mux.Vars(r)["item"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid item id", ""))
		return nil, domain.SessionEntry{}, false
	}
	if _, known := s.items[domain.ItemID(id)]; !known {
		writeJSON(w, http.StatusNotFound, failure("item not found", wire.CodeNotFound))
		return nil, domain.SessionEntry{}, false
	}

	entry, tracked := session.Entries[domain.ItemID(id)]
	if !tracked {
		entry = domain.SessionEntry{ItemID: domain.ItemID(id)}
	}
	return session, entry, true
}

// resolve maps a scanned code to an item: by id after prefix stripping, then
// by the item's own QR code.
func (s *Server) resolve(code string) (domain.Item, bool) {
	payload := domain.ParsePayload(code)
	if payload.Numeric() {
		item, ok := s.items[payload.ItemID]
		return item, ok
	}
	if payload.Code == "" {
		return domain.Item{}, false
	}
	for _, id := range s.sortedItemIDs() {
		if strings.EqualFold(s.items[id].QRCode, payload.Code) {
			return s.items[id], true
		}
	}
	return domain.Item{}, false
}

func (s *Server) activeBorrowLocked(id domain.ItemID) *domain.BorrowRecord {
	for _, record := range s.borrows {
		if record.Open() && record.Contains(id) {
			return record
		}
	}
	return nil
}

func (s *Server) sortedItemIDs() []domain.ItemID {
	ids := make([]domain.ItemID, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func failure(message string, code string) wire.ErrorResponse {
	return wire.ErrorResponse{Success: false, Error: message, Code: code}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
