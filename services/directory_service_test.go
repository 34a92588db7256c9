package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirovest/sales-app/models"
	"github.com/kirovest/sales-app/utils"
)

func newDirectoryService(t *testing.T, router *gin.Engine) *DirectoryService {
	t.Helper()
	api, db := newTestAPI(t, router)
	svc, err := NewDirectoryService(api, db)
	require.NoError(t, err)
	return svc
}

func TestFetchClientsCachesSnapshot(t *testing.T) {
	router := gin.New()
	router.GET("/clients", func(c *gin.Context) {
		assert.Equal(t, "Bearer test-token", c.GetHeader("Authorization"))
		utils.RespondJSON(c, http.StatusOK, "clients", []gin.H{
			{"id": 7, "name": "شركة النور"},
			{"id": 9, "name": "مؤسسة الأمل"},
		})
	})
	svc := newDirectoryService(t, router)

	clients, err := svc.FetchClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, models.ClientRef{ID: 7, Name: "شركة النور"}, clients[0])

	cached, err := svc.CachedClients()
	require.NoError(t, err)
	assert.Equal(t, clients, cached)
}

func TestFetchClientsEmptyListIsFailure(t *testing.T) {
	router := gin.New()
	router.GET("/clients", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "clients", []gin.H{})
	})
	svc := newDirectoryService(t, router)

	_, err := svc.FetchClients(context.Background())
	assert.True(t, utils.IsBusiness(err))
}

func TestFetchProductsFlattensPriceAmount(t *testing.T) {
	router := gin.New()
	router.GET("/services", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "services", []gin.H{
			{"id": 3, "title": "زيت محرك 5W30", "price": gin.H{"amount": 50}},
			{"id": 5, "title": "فلتر هواء", "price": gin.H{"amount": 12.5}},
		})
	})
	svc := newDirectoryService(t, router)

	products, err := svc.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 3, products[0].ID)
	assert.Equal(t, "زيت محرك 5W30", products[0].Name)
	assert.True(t, products[0].UnitPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, products[1].UnitPrice.Equal(decimal.RequireFromString("12.5")))

	cached, err := svc.CachedProducts()
	require.NoError(t, err)
	require.Len(t, cached, 2)
	assert.True(t, cached[1].UnitPrice.Equal(products[1].UnitPrice))
}

func TestFetchReplacesOldCache(t *testing.T) {
	first := true
	router := gin.New()
	router.GET("/clients", func(c *gin.Context) {
		if first {
			first = false
			utils.RespondJSON(c, http.StatusOK, "clients", []gin.H{
				{"id": 7, "name": "شركة النور"},
				{"id": 9, "name": "مؤسسة الأمل"},
			})
			return
		}
		utils.RespondJSON(c, http.StatusOK, "clients", []gin.H{
			{"id": 11, "name": "عميل جديد"},
		})
	})
	svc := newDirectoryService(t, router)

	_, err := svc.FetchClients(context.Background())
	require.NoError(t, err)
	_, err = svc.FetchClients(context.Background())
	require.NoError(t, err)

	cached, err := svc.CachedClients()
	require.NoError(t, err)
	require.Len(t, cached, 1, "a successful fetch replaces the snapshot wholesale")
	assert.Equal(t, 11, cached[0].ID)
}

func TestFetchWeeksEmptyIsFailure(t *testing.T) {
	router := gin.New()
	router.GET("/weekly_routes/weeks", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "weeks", []gin.H{})
	})
	svc := newDirectoryService(t, router)

	_, err := svc.FetchWeeks(context.Background())
	assert.True(t, utils.IsBusiness(err))
}

func TestFetchRoutesEmptyIsValid(t *testing.T) {
	router := gin.New()
	router.GET("/weekly_routes/weeks", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "weeks", []gin.H{{"id": 2, "title": "الأسبوع الثاني"}})
	})
	router.GET("/weekly_routes/:weekId", func(c *gin.Context) {
		assert.Equal(t, "2", c.Param("weekId"))
		utils.RespondJSON(c, http.StatusOK, "routes", []gin.H{})
	})
	svc := newDirectoryService(t, router)

	weeks, err := svc.FetchWeeks(context.Background())
	require.NoError(t, err)
	require.Len(t, weeks, 1)

	routes, err := svc.FetchRoutes(context.Background(), weeks[0].ID)
	assert.NoError(t, err, "a week with no visits yet is a valid result")
	assert.Empty(t, routes)
}

func TestAddRoute(t *testing.T) {
	var captured models.NewRoute
	router := gin.New()
	router.POST("/weekly_routes/add", func(c *gin.Context) {
		require.NoError(t, c.ShouldBindJSON(&captured))
		utils.RespondJSON(c, http.StatusOK, "route added", nil)
	})
	svc := newDirectoryService(t, router)

	err := svc.AddRoute(context.Background(), models.NewRoute{WeekID: 2, Day: "الأحد"})
	assert.True(t, utils.IsValidation(err), "all four fields are required")

	route := models.NewRoute{WeekID: 2, Day: "الأحد", Client: "شركة النور", Purpose: "تحصيل"}
	require.NoError(t, svc.AddRoute(context.Background(), route))
	assert.Equal(t, route, captured)
}
