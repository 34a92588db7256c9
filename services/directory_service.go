package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/kirovest/sales-app/models"
	"github.com/kirovest/sales-app/utils"
)

// DirectoryService fetches the read-only selectable lists: clients, products
// ("services" on the wire) and weekly routes. Client and product snapshots
// are cached in the local store so pickers still populate offline; every
// successful fetch replaces the previous snapshot wholesale.
type DirectoryService struct {
	api *APIClient
	db  *gorm.DB
}

func NewDirectoryService(api *APIClient, db *gorm.DB) (*DirectoryService, error) {
	if err := db.AutoMigrate(&models.CachedClient{}, &models.CachedProduct{}); err != nil {
		return nil, err
	}
	return &DirectoryService{api: api, db: db}, nil
}

// FetchClients loads the client directory. An unsuccessful envelope or an
// empty list is a fetch failure, matching how the app has always treated it.
func (s *DirectoryService) FetchClients(ctx context.Context) ([]models.ClientRef, error) {
	env, err := s.api.get(ctx, "/clients", true)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, businessError(env)
	}

	var clients []models.ClientRef
	if err := json.Unmarshal(env.Data, &clients); err != nil {
		return nil, utils.NewProtocolError(err)
	}
	if len(clients) == 0 {
		return nil, &utils.BusinessError{Message: "no clients found"}
	}

	if err := s.replaceClientCache(clients); err != nil {
		utils.ErrorLogger.Errorf("caching clients failed: %v", err)
	}
	return clients, nil
}

// FetchProducts loads the product catalog.
func (s *DirectoryService) FetchProducts(ctx context.Context) ([]models.ProductCatalogEntry, error) {
	env, err := s.api.get(ctx, "/services", true)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, businessError(env)
	}

	var products []models.ProductCatalogEntry
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, utils.NewProtocolError(err)
	}
	if len(products) == 0 {
		return nil, &utils.BusinessError{Message: "no products found"}
	}

	if err := s.replaceProductCache(products); err != nil {
		utils.ErrorLogger.Errorf("caching products failed: %v", err)
	}
	return products, nil
}

// CachedClients returns the last fetched client snapshot.
func (s *DirectoryService) CachedClients() ([]models.ClientRef, error) {
	var rows []models.CachedClient
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	clients := make([]models.ClientRef, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, models.ClientRef{ID: row.ID, Name: row.Name})
	}
	return clients, nil
}

// CachedProducts returns the last fetched catalog snapshot.
func (s *DirectoryService) CachedProducts() ([]models.ProductCatalogEntry, error) {
	var rows []models.CachedProduct
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]models.ProductCatalogEntry, 0, len(rows))
	for _, row := range rows {
		products = append(products, models.ProductCatalogEntry{
			ID:        row.ID,
			Name:      row.Name,
			UnitPrice: row.UnitPrice,
		})
	}
	return products, nil
}

// FetchWeeks loads the selectable route weeks.
func (s *DirectoryService) FetchWeeks(ctx context.Context) ([]models.Week, error) {
	env, err := s.api.get(ctx, "/weekly_routes/weeks", true)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, businessError(env)
	}

	var weeks []models.Week
	if err := json.Unmarshal(env.Data, &weeks); err != nil {
		return nil, utils.NewProtocolError(err)
	}
	if len(weeks) == 0 {
		return nil, &utils.BusinessError{Message: "no weeks found"}
	}
	return weeks, nil
}

// FetchRoutes loads the visits of one week. An empty route list is a valid
// result here, unlike the client and product directories.
func (s *DirectoryService) FetchRoutes(ctx context.Context, weekID int) ([]models.RouteStop, error) {
	env, err := s.api.get(ctx, fmt.Sprintf("/weekly_routes/%d", weekID), true)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, businessError(env)
	}

	var routes []models.RouteStop
	if err := json.Unmarshal(env.Data, &routes); err != nil {
		return nil, utils.NewProtocolError(err)
	}
	return routes, nil
}

// AddRoute creates one weekly route visit.
func (s *DirectoryService) AddRoute(ctx context.Context, route models.NewRoute) error {
	if route.WeekID == 0 || route.Day == "" || route.Client == "" || route.Purpose == "" {
		return utils.NewValidationError("missing required fields")
	}

	env, err := s.api.post(ctx, "/weekly_routes/add", route, true)
	if err != nil {
		return err
	}
	if !env.Success {
		return businessError(env)
	}
	return nil
}

func (s *DirectoryService) replaceClientCache(clients []models.ClientRef) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CachedClient{}).Error; err != nil {
			return err
		}
		rows := make([]models.CachedClient, 0, len(clients))
		for _, c := range clients {
			rows = append(rows, models.CachedClient{ID: c.ID, Name: c.Name})
		}
		return tx.Create(&rows).Error
	})
}

func (s *DirectoryService) replaceProductCache(products []models.ProductCatalogEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CachedProduct{}).Error; err != nil {
			return err
		}
		rows := make([]models.CachedProduct, 0, len(products))
		for _, p := range products {
			rows = append(rows, models.CachedProduct{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice})
		}
		return tx.Create(&rows).Error
	})
}
