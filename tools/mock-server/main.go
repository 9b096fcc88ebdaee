// Package main implements a mock upstream server for local development.
// It serves canned responses from JSON fixtures for the JustTCG cards
// endpoint, the eBay Browse and Catalog APIs and the eBay OAuth token
// endpoint, so the gateway can run end to end without real credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type browseAPIResponse struct {
	ItemSummaries []json.RawMessage `json:"itemSummaries"`
	Total         int               `json:"total"`
	Offset        int               `json:"offset"`
	Limit         int               `json:"limit"`
	Next          string            `json:"next"`
}

type itemSummary struct {
	ItemID string `json:"itemId"`
	Title  string `json:"title"`
}

type productSearchResponse struct {
	ProductSummaries []json.RawMessage `json:"productSummaries"`
	Total            int               `json:"total"`
	Offset           int               `json:"offset"`
	Limit            int               `json:"limit"`
	Next             string            `json:"next"`
}

type productSummary struct {
	EPID  string `json:"epid"`
	Title string `json:"title"`
}

// cardFixtures maps a TCGPlayer ID to the full JustTCG response body.
type cardFixtures map[string]json.RawMessage

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/search_response.json", "path to search response fixture")
	cardsFile := flag.String("cards", "tools/mock-server/testdata/cards.json", "path to JustTCG card fixtures")
	productsFile := flag.String("products", "tools/mock-server/testdata/products.json", "path to catalog product fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	cards, err := loadCards(*cardsFile)
	if err != nil {
		logger.Error("failed to load card fixtures", "path", *cardsFile, "error", err)
		os.Exit(1)
	}
	products, err := loadProducts(*productsFile)
	if err != nil {
		logger.Error("failed to load product fixture", "path", *productsFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixtures",
		"items", len(fixture.ItemSummaries),
		"cards", len(cards),
		"products", len(products.ProductSummaries),
	)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock upstream server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, fixture, cards, products)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(
	logger *slog.Logger,
	fixture *browseAPIResponse,
	cards cardFixtures,
	products *productSearchResponse,
) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /identity/v1/oauth2/token", tokenHandler(logger))
	mux.HandleFunc("GET /buy/browse/v1/item_summary/search", searchHandler(logger, fixture))
	mux.HandleFunc("POST /buy/browse/v1/item_summary/search_by_image", imageSearchHandler(logger, fixture))
	mux.HandleFunc("GET /buy/browse/v1/item/get_items_by_item_group", itemGroupHandler(logger, fixture))
	mux.HandleFunc("GET /buy/browse/v1/item/{itemId}", itemHandler(logger, fixture))
	mux.HandleFunc("GET /commerce/catalog/v1_beta/product_summary/search", productSearchHandler(logger, products))
	mux.HandleFunc("GET /commerce/catalog/v1_beta/product/{epid}", productHandler(logger, products))
	mux.HandleFunc("GET /v1/cards", cardsHandler(logger, cards))
	return mux
}

func loadFixture(path string) (*browseAPIResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp browseAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

func loadCards(path string) (cardFixtures, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading card fixtures: %w", err)
	}
	var cards cardFixtures
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parsing card fixtures: %w", err)
	}
	return cards, nil
}

func loadProducts(path string) (*productSearchResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading product fixture: %w", err)
	}
	var resp productSearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing product fixture: %w", err)
	}
	return &resp, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Basic Auth must be present; the credentials are not checked.
		if _, _, ok := r.BasicAuth(); !ok {
			logger.Warn("token request missing Basic Auth header")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "invalid_client",
				"error_description": "client authentication failed",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "mock-token-v1-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   7200,
			"token_type":   "Application Access Token",
		})
		logger.Info("issued mock token")
	}
}

func hasBearer(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return ok && token != ""
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]any{
		"errors": []map[string]any{{
			"errorId":  1001,
			"domain":   "OAuth",
			"category": "REQUEST",
			"message":  "Invalid access token",
		}},
	})
}

// matches reports whether every word of q appears in title. Both are
// expected lower-cased.
func matches(title, q string) bool {
	for word := range strings.FieldsSeq(q) {
		if !strings.Contains(title, word) {
			return false
		}
	}
	return true
}

func searchHandler(logger *slog.Logger, fixture *browseAPIResponse) http.HandlerFunc {
	type indexedItem struct {
		raw   json.RawMessage
		title string
	}
	items := make([]indexedItem, 0, len(fixture.ItemSummaries))
	for _, raw := range fixture.ItemSummaries {
		var s itemSummary
		//nolint:errcheck,gosec // fixture data is trusted; title extraction is best-effort
		json.Unmarshal(raw, &s)
		items = append(items, indexedItem{raw: raw, title: strings.ToLower(s.Title)})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !hasBearer(r) {
			unauthorized(w)
			return
		}

		q := strings.ToLower(r.URL.Query().Get("q"))

		limit := 50
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}
		offset := 0
		if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
			offset = v
		}

		matched := []json.RawMessage{}
		for _, item := range items {
			if matches(item.title, q) {
				matched = append(matched, item.raw)
			}
		}

		total := len(matched)

		if offset >= len(matched) {
			matched = []json.RawMessage{}
		} else {
			end := min(offset+limit, len(matched))
			matched = matched[offset:end]
		}

		next := ""
		if offset+limit < total {
			next = fmt.Sprintf("/buy/browse/v1/item_summary/search?q=%s&offset=%d&limit=%d",
				r.URL.Query().Get("q"), offset+limit, limit)
		}

		writeJSON(w, http.StatusOK, browseAPIResponse{
			ItemSummaries: matched,
			Total:         total,
			Offset:        offset,
			Limit:         limit,
			Next:          next,
		})
		logger.Info("search", "query", q, "matched", total, "returned", len(matched), "offset", offset, "limit", limit)
	}
}

func indexItems(fixture *browseAPIResponse) map[string]json.RawMessage {
	byID := make(map[string]json.RawMessage, len(fixture.ItemSummaries))
	for _, raw := range fixture.ItemSummaries {
		var s itemSummary
		if err := json.Unmarshal(raw, &s); err == nil && s.ItemID != "" {
			byID[s.ItemID] = raw
		}
	}
	return byID
}

func itemHandler(logger *slog.Logger, fixture *browseAPIResponse) http.HandlerFunc {
	byID := indexItems(fixture)

	return func(w http.ResponseWriter, r *http.Request) {
		if !hasBearer(r) {
			unauthorized(w)
			return
		}

		id := r.PathValue("itemId")
		raw, ok := byID[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"errors": []map[string]any{{"errorId": 11001, "message": "The specified item Id was not found."}},
			})
			return
		}
		writeJSON(w, http.StatusOK, raw)
		logger.Info("item", "item_id", id)
	}
}

// imageSearchHandler ignores the image content and returns the first page
// of the fixture.
func imageSearchHandler(logger *slog.Logger, fixture *browseAPIResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !hasBearer(r) {
			unauthorized(w)
			return
		}

		var body struct {
			Image string `json:"image"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Image == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"errors": []map[string]any{{"errorId": 12001, "message": "The image field is required."}},
			})
			return
		}

		limit := 50
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}
		items := fixture.ItemSummaries[:min(limit, len(fixture.ItemSummaries))]

		writeJSON(w, http.StatusOK, browseAPIResponse{
			ItemSummaries: items,
			Total:         len(fixture.ItemSummaries),
			Limit:         limit,
		})
		logger.Info("image search", "image_bytes", len(body.Image), "returned", len(items))
	}
}

// itemGroupHandler treats every item ID as a group of one.
func itemGroupHandler(logger *slog.Logger, fixture *browseAPIResponse) http.HandlerFunc {
	byID := indexItems(fixture)

	return func(w http.ResponseWriter, r *http.Request) {
		if !hasBearer(r) {
			unauthorized(w)
			return
		}

		id := r.URL.Query().Get("item_group_id")
		raw, ok := byID[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"errors": []map[string]any{{"errorId": 11006, "message": "The specified item group was not found."}},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": []json.RawMessage{raw}})
		logger.Info("item group", "item_group_id", id)
	}
}

func productSearchHandler(logger *slog.Logger, products *productSearchResponse) http.HandlerFunc {
	type indexedProduct struct {
		raw   json.RawMessage
		title string
	}
	index := make([]indexedProduct, 0, len(products.ProductSummaries))
	for _, raw := range products.ProductSummaries {
		var p productSummary
		//nolint:errcheck,gosec // fixture data is trusted; title extraction is best-effort
		json.Unmarshal(raw, &p)
		index = append(index, indexedProduct{raw: raw, title: strings.ToLower(p.Title)})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !hasBearer(r) {
			unauthorized(w)
			return
		}

		q := strings.ToLower(r.URL.Query().Get("q"))
		matched := []json.RawMessage{}
		for _, p := range index {
			if matches(p.title, q) {
				matched = append(matched, p.raw)
			}
		}

		writeJSON(w, http.StatusOK, productSearchResponse{
			ProductSummaries: matched,
			Total:            len(matched),
			Limit:            200,
		})
		logger.Info("product search", "query", q, "matched", len(matched))
	}
}

func productHandler(logger *slog.Logger, products *productSearchResponse) http.HandlerFunc {
	byEPID := make(map[string]json.RawMessage, len(products.ProductSummaries))
	for _, raw := range products.ProductSummaries {
		var p productSummary
		if err := json.Unmarshal(raw, &p); err == nil && p.EPID != "" {
			byEPID[p.EPID] = raw
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !hasBearer(r) {
			unauthorized(w)
			return
		}

		epid := r.PathValue("epid")
		raw, ok := byEPID[epid]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"errors": []map[string]any{{"errorId": 75015, "message": "No product found for the given epid."}},
			})
			return
		}
		writeJSON(w, http.StatusOK, raw)
		logger.Info("product", "epid", epid)
	}
}

func cardsHandler(logger *slog.Logger, cards cardFixtures) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Invalid or missing API key",
			})
			return
		}

		id := r.URL.Query().Get("tcgplayerId")
		if raw, ok := cards[id]; ok {
			writeJSON(w, http.StatusOK, raw)
			logger.Info("card", "tcgplayer_id", id)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"data": []any{},
			"meta": map[string]any{"total": 0, "limit": 20, "offset": 0, "hasMore": false},
		})
		logger.Info("card not found", "tcgplayer_id", id)
	}
}
