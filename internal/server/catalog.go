package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/port"
	"inn_ledger/internal/domain/service/catalog"
	"inn_ledger/internal/domain/value"
	"inn_ledger/pkg/httpx/reply"
	"inn_ledger/pkg/httpx/req"
	"inn_ledger/pkg/lox"
	"inn_ledger/pkg/rest"
)

type catalogService interface {
	CreateTrader(context.Context, entity.Trader) (entity.Trader, error)
	GetTrader(context.Context, value.ID) (entity.Trader, error)
	ListTraders(ctx context.Context, name string) ([]entity.Trader, error)
	UpdateTrader(context.Context, value.ID, catalog.TraderPatch) (entity.Trader, error)
	DeleteTrader(context.Context, value.ID) (entity.Trader, error)

	CreateHunter(context.Context, entity.Hunter) (entity.Hunter, error)
	GetHunter(context.Context, value.ID) (entity.Hunter, error)
	ListHunters(ctx context.Context, name string) ([]entity.Hunter, error)
	UpdateHunter(context.Context, value.ID, catalog.HunterPatch) (entity.Hunter, error)
	DeleteHunter(context.Context, value.ID) (entity.Hunter, error)

	CreateAsset(context.Context, entity.Asset) (entity.Asset, bool, error)
	GetAsset(context.Context, value.ID) (entity.Asset, error)
	ListAssets(context.Context, port.AssetFilter) ([]entity.Asset, error)
	UpdateAsset(context.Context, value.ID, catalog.AssetPatch) (entity.Asset, error)
	DeleteAsset(context.Context, value.ID) (entity.Asset, error)
}

type CatalogServer struct {
	catalogService catalogService
}

func NewCatalogServer(catalogService catalogService) CatalogServer {
	return CatalogServer{
		catalogService: catalogService,
	}
}

func pathID(r *http.Request) (value.ID, error) {
	id, err := value.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return "", fmt.Errorf("value.ParseID: %w", err)
	}

	return id, nil
}

func (s CatalogServer) postTrader(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.TraderCreate

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	created, err := s.catalogService.CreateTrader(ctx, newDomainTrader(request))
	if err != nil {
		return fmt.Errorf("catalogService.CreateTrader: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTTrader(created))

	return nil
}

func (s CatalogServer) listTraders(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	found, err := s.catalogService.ListTraders(ctx, r.URL.Query().Get("name"))
	if err != nil {
		return fmt.Errorf("catalogService.ListTraders: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(found, newRESTTrader))

	return nil
}

func (s CatalogServer) getTrader(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		return err
	}

	found, err := s.catalogService.GetTrader(ctx, id)
	if err != nil {
		return fmt.Errorf("catalogService.GetTrader: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTTrader(found))

	return nil
}

func (s CatalogServer) patchTrader(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		return err
	}

	var request rest.TraderPatch

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	updated, err := s.catalogService.UpdateTrader(ctx, id, newTraderPatch(request))
	if err != nil {
		return fmt.Errorf("catalogService.UpdateTrader: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTTrader(updated))

	return nil
}

func (s CatalogServer) deleteTrader(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		return err
	}

	deleted, err := s.catalogService.DeleteTrader(ctx, id)
	if err != nil {
		return fmt.Errorf("catalogService.DeleteTrader: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTTrader(deleted))

	return nil
}

func (s CatalogServer) postHunter(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.HunterCreate

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	created, err := s.catalogService.CreateHunter(ctx, newDomainHunter(request))
	if err != nil {
		return fmt.Errorf("catalogService.CreateHunter: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTHunter(created))

	return nil
}

func (s CatalogServer) listHunters(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	found, err := s.catalogService.ListHunters(ctx, r.URL.Query().Get("name"))
	if err != nil {
		return fmt.Errorf("catalogService.ListHunters: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(found, newRESTHunter))

	return nil
}

func (s CatalogServer) getHunter(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		return err
	}

	found, err := s.catalogService.GetHunter(ctx, id)
	if err != nil {
		return fmt.Errorf("catalogService.GetHunter: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTHunter(found))

	return nil
}

func (s CatalogServer) patchHunter(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		return err
	}

	var request rest.HunterPatch

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	updated, err := s.catalogService.UpdateHunter(ctx, id, newHunterPatch(request))
	if err != nil {
		return fmt.Errorf("catalogService.UpdateHunter: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTHunter(updated))

	return nil
}

func (s CatalogServer) deleteHunter(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		return err
	}

	deleted, err := s.catalogService.DeleteHunter(ctx, id)
	if err != nil {
		return fmt.Errorf("catalogService.DeleteHunter: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTHunter(deleted))

	return nil
}

// postAsset answers 200 when the stock was merged into an existing asset of
// the same name and 201 when a new asset was stored.
func (s CatalogServer) postAsset(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.AssetCreate

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	stored, merged, err := s.catalogService.CreateAsset(ctx, newDomainAsset(request))
	if err != nil {
		return fmt.Errorf("catalogService.CreateAsset: %w", err)
	}

	status := http.StatusCreated
	if merged {
		status = http.StatusOK
	}

	reply.JSON(ctx, w, status, newRESTAsset(stored))

	return nil
}

func (s CatalogServer) listAssets(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	query := r.URL.Query()

	found, err := s.catalogService.ListAssets(ctx, port.AssetFilter{
		Name:     query.Get("name"),
		Material: query.Get("material"),
		Type:     value.AssetType(query.Get("type")),
	})
	if err != nil {
		return fmt.Errorf("catalogService.ListAssets: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(found, newRESTAsset))

	return nil
}

func (s CatalogServer) getAsset(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		return err
	}

	found, err := s.catalogService.GetAsset(ctx, id)
	if err != nil {
		return fmt.Errorf("catalogService.GetAsset: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAsset(found))

	return nil
}

func (s CatalogServer) patchAsset(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		return err
	}

	var request rest.AssetPatch

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	updated, err := s.catalogService.UpdateAsset(ctx, id, newAssetPatch(request))
	if err != nil {
		return fmt.Errorf("catalogService.UpdateAsset: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAsset(updated))

	return nil
}

func (s CatalogServer) deleteAsset(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		return err
	}

	deleted, err := s.catalogService.DeleteAsset(ctx, id)
	if err != nil {
		return fmt.Errorf("catalogService.DeleteAsset: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAsset(deleted))

	return nil
}
