package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/openshelf/locallibrary/config"
	"github.com/openshelf/locallibrary/handlers"
	"github.com/openshelf/locallibrary/middleware"
	"github.com/openshelf/locallibrary/service"
	"github.com/openshelf/locallibrary/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb:", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Println("mongodb disconnect:", err)
		}
	}()

	var covers *service.CoverService
	if cfg.S3Bucket != "" {
		covers, err = service.NewCoverService(ctx, cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			log.Fatal("s3:", err)
		}
	} else {
		log.Println("warning: AWS_S3_BUCKET not set; cover images disabled")
	}

	gateway := service.NewGatewayClient(cfg.GatewayBaseURL, cfg.GatewayMerchantID, cfg.GatewayPublicKey, cfg.GatewayPrivateKey)

	catalogHandler := &handlers.CatalogHandler{
		Store: db,
		Agg:   service.NewAggregationService(db),
	}
	booksHandler := &handlers.BooksHandler{
		Store:  db,
		Guard:  service.NewDeletionGuard(db),
		Covers: covers,
	}
	genresHandler := &handlers.GenresHandler{Store: db}
	instancesHandler := &handlers.InstancesHandler{Store: db}
	checkoutHandler := &handlers.CheckoutHandler{
		Checkout: service.NewCheckoutService(db, gateway),
	}

	r := chi.NewRouter()
	r.Use(middleware.AllowAll())
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"welcome to the local library."}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/summary", catalogHandler.Summary)

		r.Get("/books", catalogHandler.BookList)
		r.Post("/books", booksHandler.Create)
		r.Get("/book/{id}", catalogHandler.BookDetail)
		r.Put("/book/{id}", booksHandler.Update)
		r.Post("/book/{id}/delete", booksHandler.Delete)
		r.Get("/book/{id}/cover", booksHandler.Cover)
		r.Put("/book/{id}/cover", booksHandler.UploadCover)
		r.Get("/book/{id}/checkout", checkoutHandler.Begin)

		r.Get("/authors", catalogHandler.AuthorList)
		r.Get("/author/{id}", catalogHandler.AuthorDetail)

		r.Get("/genres", catalogHandler.GenreList)
		r.Post("/genres", genresHandler.Create)
		r.Get("/genre/{id}", catalogHandler.GenreDetail)
		r.Put("/genre/{id}", genresHandler.Update)

		r.Get("/bookinstances", instancesHandler.List)
		r.Post("/bookinstances", instancesHandler.Create)
	})

	r.Post("/payment", checkoutHandler.Payment)
	r.Get("/api/books", catalogHandler.APIBooks)

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("server listening on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
