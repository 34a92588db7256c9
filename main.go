package main

import (
	"context"
	"sync"
	"time"

	"github.com/kirovest/sales-app/auth"
	"github.com/kirovest/sales-app/config"
	"github.com/kirovest/sales-app/services"
	"github.com/kirovest/sales-app/utils"
)

func main() {
	utils.InitLogger()
	cfg := config.Load()

	db, err := utils.OpenStore(cfg.DBPath)
	if err != nil {
		utils.ErrorLogger.Fatalf("failed to open local store: %v", err)
	}
	utils.InitDB(db)

	session, err := auth.NewSession(db)
	if err != nil {
		utils.ErrorLogger.Fatalf("failed to restore session: %v", err)
	}

	api := services.NewAPIClient(cfg, session)
	directory, err := services.NewDirectoryService(api, db)
	if err != nil {
		utils.ErrorLogger.Fatalf("failed to init directory store: %v", err)
	}

	if !session.LoggedIn() {
		utils.InfoLogger.Info("no stored session, login required")
		return
	}
	utils.InfoLogger.Infof("session restored, role %s", session.Role())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The directory fetches are independent and idempotent, so they run
	// concurrently. On failure the cached snapshot still serves the pickers.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		clients, err := directory.FetchClients(ctx)
		if err != nil {
			utils.ErrorLogger.Errorf("client fetch failed: %v", err)
			clients, _ = directory.CachedClients()
		}
		utils.InfoLogger.Infof("%d clients available", len(clients))
	}()
	go func() {
		defer wg.Done()
		products, err := directory.FetchProducts(ctx)
		if err != nil {
			utils.ErrorLogger.Errorf("product fetch failed: %v", err)
			products, _ = directory.CachedProducts()
		}
		utils.InfoLogger.Infof("%d products available", len(products))
	}()
	wg.Wait()

	weeks, err := directory.FetchWeeks(ctx)
	if err != nil {
		utils.ErrorLogger.Errorf("week fetch failed: %v", err)
		return
	}
	utils.InfoLogger.Infof("%d route weeks available", len(weeks))
}
