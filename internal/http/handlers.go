package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bottega/internal/analytics"
	"bottega/internal/core"
	"bottega/internal/importer"
	"bottega/internal/ledger"
	applog "bottega/internal/log"
)

type (
	itemDTO struct {
		Name              string          `json:"name"`
		QuantityRemaining int             `json:"quantity_remaining"`
		UnitCost          decimal.Decimal `json:"unit_cost"`
		BusinessWorth     decimal.Decimal `json:"business_worth"`
	}

	saleDTO struct {
		ID        string          `json:"id"`
		ItemName  string          `json:"item_name"`
		Quantity  int             `json:"quantity"`
		UnitPrice decimal.Decimal `json:"unit_price"`
		Total     decimal.Decimal `json:"total"`
		Date      string          `json:"date"`
	}

	addItemRequest struct {
		Name     string          `json:"name"`
		Quantity int             `json:"quantity"`
		UnitCost decimal.Decimal `json:"unit_cost"`
	}

	recordSaleRequest struct {
		ItemName  string          `json:"item_name"`
		Quantity  int             `json:"quantity"`
		Date      string          `json:"date,omitempty"`
		UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
	}

	importRequest struct {
		Text           string `json:"text"`
		FirstRowHeader *bool  `json:"first_row_header,omitempty"`
	}

	importLineDTO struct {
		Raw      string          `json:"raw"`
		Name     string          `json:"name,omitempty"`
		Quantity int             `json:"quantity,omitempty"`
		UnitCost decimal.Decimal `json:"unit_cost,omitempty"`
		Error    string          `json:"error,omitempty"`
	}

	importResponse struct {
		Results  []importLineDTO `json:"results"`
		Imported int             `json:"imported"`
		Failed   int             `json:"failed"`
	}

	summaryDTO struct {
		Start         string          `json:"start"`
		End           string          `json:"end"`
		Revenue       decimal.Decimal `json:"revenue"`
		Transactions  int             `json:"transactions"`
		DistinctItems int             `json:"distinct_items"`
	}

	topDTO struct {
		By      string               `json:"by"`
		Start   string               `json:"start"`
		End     string               `json:"end"`
		Entries []analytics.ItemTotal `json:"entries"`
	}

	errorDTO struct {
		Error string `json:"error"`
	}
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items := s.ledger.Items()
	out := make([]itemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, itemDTO{
			Name:              item.Name,
			QuantityRemaining: item.QuantityRemaining,
			UnitCost:          item.UnitCost,
			BusinessWorth:     item.BusinessWorth(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: "invalid request body"})
		return
	}

	if err := s.ledger.AddItem(r.Context(), req.Name, req.Quantity, req.UnitCost); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorDTO{Error: s.ledger.LastError()})
		return
	}

	item, _ := s.ledger.Item(req.Name)
	writeJSON(w, http.StatusCreated, itemDTO{
		Name:              item.Name,
		QuantityRemaining: item.QuantityRemaining,
		UnitCost:          item.UnitCost,
		BusinessWorth:     item.BusinessWorth(),
	})
}

func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	sales := s.ledger.Sales()
	out := make([]saleDTO, 0, len(sales))
	for _, sale := range sales {
		out = append(out, saleDTO{
			ID:        sale.ID.String(),
			ItemName:  sale.ItemName,
			Quantity:  sale.Quantity,
			UnitPrice: sale.UnitPrice,
			Total:     sale.Total(),
			Date:      sale.Date.String(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRecordSale(w http.ResponseWriter, r *http.Request) {
	var req recordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: "invalid request body"})
		return
	}

	if _, ok := s.ledger.Item(req.ItemName); !ok {
		writeJSON(w, http.StatusNotFound, errorDTO{Error: fmt.Sprintf("item %q not found", strings.TrimSpace(req.ItemName))})
		return
	}

	saleReq := ledger.SaleRequest{
		ItemName:          req.ItemName,
		Quantity:          req.Quantity,
		UnitPriceOverride: req.UnitPrice,
	}
	if req.Date != "" {
		t, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorDTO{Error: fmt.Sprintf("invalid date %q: use 2006-01-02", req.Date)})
			return
		}
		saleReq.Date = core.DateOf(t)
	}

	if !s.ledger.RecordSale(r.Context(), saleReq) {
		writeJSON(w, http.StatusUnprocessableEntity, errorDTO{Error: s.ledger.LastError()})
		return
	}

	item, _ := s.ledger.Item(req.ItemName)
	writeJSON(w, http.StatusCreated, itemDTO{
		Name:              item.Name,
		QuantityRemaining: item.QuantityRemaining,
		UnitCost:          item.UnitCost,
		BusinessWorth:     item.BusinessWorth(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: err.Error()})
		return
	}

	key := "summary|" + start.String() + "|" + end.String()
	summary, ok := s.summaries.Get(key)
	if !ok {
		summary = analytics.Summarize(s.ledger.Sales(), start, end)
		s.summaries.Set(key, summary)
		slog.DebugContext(r.Context(), "Summary computed",
			applog.FieldOperation, applog.OpSummary,
			applog.FieldRangeStart, start.String(),
			applog.FieldRangeEnd, end.String())
	}

	writeJSON(w, http.StatusOK, summaryDTO{
		Start:         start.String(),
		End:           end.String(),
		Revenue:       summary.Revenue,
		Transactions:  summary.Transactions,
		DistinctItems: summary.DistinctItems,
	})
}

func (s *Server) handleTopSellers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, end, err := parseRange(query)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: err.Error()})
		return
	}

	by := query.Get("by")
	if by == "" {
		by = "quantity"
	}
	if by != "quantity" && by != "revenue" {
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: fmt.Sprintf("invalid ranking %q: use quantity or revenue", by)})
		return
	}

	topN := s.defaultTopN
	if v := query.Get("n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorDTO{Error: fmt.Sprintf("invalid n %q: must be a positive integer", v)})
			return
		}
		topN = n
	}

	key := fmt.Sprintf("top|%s|%s|%s|%d", by, start, end, topN)
	entries, ok := s.rankings.Get(key)
	if !ok {
		sales := s.ledger.Sales()
		if by == "revenue" {
			entries = analytics.TopByRevenueBetween(sales, start, end, topN)
		} else {
			entries = analytics.TopByQuantityBetween(sales, start, end, topN)
		}
		s.rankings.Set(key, entries)
		slog.DebugContext(r.Context(), "Ranking computed",
			applog.FieldOperation, applog.OpTopSellers,
			applog.FieldRangeStart, start.String(),
			applog.FieldRangeEnd, end.String())
	}
	if entries == nil {
		entries = []analytics.ItemTotal{}
	}

	writeJSON(w, http.StatusOK, topDTO{By: by, Start: start.String(), End: end.String(), Entries: entries})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: "invalid request body"})
		return
	}

	firstRowHeader := true
	if req.FirstRowHeader != nil {
		firstRowHeader = *req.FirstRowHeader
	}

	results := importer.Parse(req.Text, firstRowHeader)
	resp := importResponse{Results: make([]importLineDTO, 0, len(results))}
	for _, line := range results {
		dto := importLineDTO{Raw: line.Raw, Error: line.Err}
		if line.OK() {
			if err := s.ledger.AddItem(r.Context(), line.Name, line.Quantity, line.UnitCost); err != nil {
				dto.Error = s.ledger.LastError()
			} else {
				dto.Name = line.Name
				dto.Quantity = line.Quantity
				dto.UnitCost = line.UnitCost
			}
		}
		if dto.Error == "" {
			resp.Imported++
		} else {
			resp.Failed++
		}
		resp.Results = append(resp.Results, dto)
	}

	slog.InfoContext(r.Context(), "Inventory import finished",
		applog.FieldLineCount, len(results),
		applog.FieldImportedOK, resp.Imported,
		applog.FieldImportedBad, resp.Failed)

	writeJSON(w, http.StatusOK, resp)
}

// parseRange reads inclusive start/end dates from the query, defaulting both
// to today when absent.
func parseRange(query url.Values) (core.Date, core.Date, error) {
	today := core.Today()
	start, end := today, today

	if v := strings.TrimSpace(query.Get("start")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return core.Date{}, core.Date{}, fmt.Errorf("invalid start %q: use 2006-01-02", v)
		}
		start = core.DateOf(t)
	}
	if v := strings.TrimSpace(query.Get("end")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return core.Date{}, core.Date{}, fmt.Errorf("invalid end %q: use 2006-01-02", v)
		}
		end = core.DateOf(t)
	}
	return start, end, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
