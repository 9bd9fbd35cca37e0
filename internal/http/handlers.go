package http

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"quickledger/internal/core"
	"quickledger/internal/ledger"
)

type indexData struct {
	Accounts []string
	Modes    []core.PaymentMode
	Month    string
	Today    string
}

type summaryData struct {
	Account    string
	MonthLabel string
	Summary    core.Summary
	Recent     []core.Transaction
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	accounts := []string{}
	if records, err := s.snapshot(r.Context()); err == nil {
		accounts = core.Accounts(records)
	} else {
		slog.ErrorContext(r.Context(), "Failed to load snapshot for index", "error", err)
	}

	now := time.Now()
	data := indexData{
		Accounts: accounts,
		Modes:    core.PaymentModes(),
		Month:    now.Format("2006-01"),
		Today:    now.Format("2006-01-02"),
	}
	s.render(w, "index.html", data)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	dateStr := sanitizeInput(r.FormValue("date"))
	txnDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		s.renderError(w, http.StatusUnprocessableEntity, "Date must be in YYYY-MM-DD format")
		return
	}

	cents, err := core.ParseDecimalToCents(sanitizeInput(r.FormValue("amount")))
	if err != nil {
		s.renderError(w, http.StatusUnprocessableEntity, "Amount must be a non-negative number")
		return
	}

	txn := core.Transaction{
		Date:        core.Date{Time: txnDate.UTC()},
		Type:        core.TxnType(strings.ToLower(sanitizeInput(r.FormValue("type")))),
		Amount:      core.Money{Cents: cents},
		Mode:        core.PaymentMode(strings.ToLower(sanitizeInput(r.FormValue("payment_mode")))),
		Description: sanitizeInput(r.FormValue("description")),
		Account:     sanitizeInput(r.FormValue("account")),
		SubAccount:  sanitizeInput(r.FormValue("sub_account")),
		CreatedAt:   time.Now().UTC(),
	}

	if err := txn.Validate(); err != nil {
		s.renderError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ref, err := s.store.Append(r.Context(), txn.Row())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to append transaction",
			"account", txn.Account, "error", err)
		if errors.Is(err, ledger.ErrUnavailable) {
			s.renderError(w, http.StatusServiceUnavailable, "Ledger store is unavailable, try again later")
			return
		}
		s.renderError(w, http.StatusInternalServerError, "Failed to record transaction")
		return
	}

	s.invalidateSnapshot()
	slog.InfoContext(r.Context(), "Transaction recorded",
		"account", txn.Account, "type", string(txn.Type),
		"amount_cents", txn.Amount.Cents, "ref", ref)

	w.Header().Set("HX-Trigger", "transactionCreated")
	w.WriteHeader(http.StatusCreated)
	fmt.Fprintf(w, `<div class="success">Recorded %s of %s on %s</div>`,
		txn.Type, txn.Amount.String(), txn.Date.Format("2006-01-02"))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	account := sanitizeInput(r.URL.Query().Get("account"))
	ref := parseMonthParam(r)

	records, err := s.snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load snapshot for summary", "error", err)
		if errors.Is(err, ledger.ErrUnavailable) {
			s.renderError(w, http.StatusServiceUnavailable, "Ledger store is unavailable, try again later")
			return
		}
		s.renderError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	summary := core.Summarize(records, account, ref)

	scoped := records
	if account != core.AllAccounts {
		scoped = make([]core.Transaction, 0, len(records))
		for _, txn := range records {
			if txn.Account == account {
				scoped = append(scoped, txn)
			}
		}
	}
	recent := core.ListRecent(scoped, s.recentLimit)

	data := summaryData{
		Account:    account,
		MonthLabel: ref.Format("January 2006"),
		Summary:    summary,
		Recent:     recent,
	}
	s.render(w, "summary.html", data)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		http.Error(w, "Templates unavailable", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("Failed to render template", "template", name, "error", err)
	}
}

func (s *Server) renderError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<div class="error">%s</div>`, template.HTMLEscapeString(msg))
}
