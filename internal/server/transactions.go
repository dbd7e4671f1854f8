package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/service/transaction"
	"inn_ledger/internal/domain/value"
	"inn_ledger/pkg/httpx/reply"
	"inn_ledger/pkg/httpx/req"
	"inn_ledger/pkg/lox"
	"inn_ledger/pkg/rest"
)

const headerIdempotencyKey = "Idempotency-Key"

type transactionService interface {
	Create(context.Context, transaction.CreateInput) (entity.Transaction, error)
	Get(context.Context, value.ID) (entity.Transaction, error)
	List(context.Context, transaction.Query) ([]entity.Transaction, error)
	Update(context.Context, value.ID, transaction.Patch) (entity.Transaction, error)
	Delete(context.Context, value.ID) (entity.Transaction, error)
}

type TransactionServer struct {
	transactionService transactionService
}

func NewTransactionServer(transactionService transactionService) TransactionServer {
	return TransactionServer{
		transactionService: transactionService,
	}
}

func (s TransactionServer) postTransaction(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.TransactionCreate

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	in, err := newCreateInput(request, r.Header.Get(headerIdempotencyKey))
	if err != nil {
		return fmt.Errorf("newCreateInput: %w", err)
	}

	created, err := s.transactionService.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("transactionService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTTransaction(created))

	return nil
}

func (s TransactionServer) listTransactions(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	query := r.URL.Query()

	q, err := newQuery(query.Get("name"), query.Get("firstDay"), query.Get("lastDay"))
	if err != nil {
		return fmt.Errorf("newQuery: %w", err)
	}

	found, err := s.transactionService.List(ctx, q)
	if err != nil {
		return fmt.Errorf("transactionService.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(found, newRESTTransaction))

	return nil
}

// Transaction ids are not parsed: an unknown or malformed id is simply not found.
func (s TransactionServer) getTransaction(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	found, err := s.transactionService.Get(ctx, value.ID(chi.URLParam(r, "id")))
	if err != nil {
		return fmt.Errorf("transactionService.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTTransaction(found))

	return nil
}

func (s TransactionServer) patchTransaction(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.TransactionPatch

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	updated, err := s.transactionService.Update(ctx, value.ID(chi.URLParam(r, "id")), newPatch(request))
	if err != nil {
		return fmt.Errorf("transactionService.Update: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTTransaction(updated))

	return nil
}

func (s TransactionServer) deleteTransaction(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	deleted, err := s.transactionService.Delete(ctx, value.ID(chi.URLParam(r, "id")))
	if err != nil {
		return fmt.Errorf("transactionService.Delete: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTTransaction(deleted))

	return nil
}
