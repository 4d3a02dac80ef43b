package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Arman2205/Knowledge_Network/internal/config"
	"github.com/Arman2205/Knowledge_Network/internal/database"
	"github.com/Arman2205/Knowledge_Network/internal/handlers"
	"github.com/Arman2205/Knowledge_Network/internal/repository"
	"github.com/Arman2205/Knowledge_Network/internal/services"
	"github.com/Arman2205/Knowledge_Network/pkg/logger"
	"github.com/Arman2205/Knowledge_Network/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const notFoundPage = `<h1>Sorry, the path is not valid. Please, check the information.</h1>`

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	knowledgeRepo := repository.NewKnowledgeRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	knowledgeService := services.NewKnowledgeService(knowledgeRepo, userRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	knowledgeHandler := handlers.NewKnowledgeHandler(knowledgeService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")

	// Protected user routes (only authenticated users can access)
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("", userHandler.GetAllUsersHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/details/{id}", userHandler.UpdateUserDetailsHandler).Methods("PATCH")
	protectedUserRoutes.HandleFunc("/add_friends/{id}", userHandler.AddFriendHandler).Methods("PATCH")
	protectedUserRoutes.HandleFunc("/remove_friends/{id}", userHandler.RemoveFriendHandler).Methods("PATCH")
	protectedUserRoutes.HandleFunc("/add_enemies/{id}", userHandler.AddEnemyHandler).Methods("PATCH")
	protectedUserRoutes.HandleFunc("/remove_enemies/{id}", userHandler.RemoveEnemyHandler).Methods("PATCH")

	// Public knowledge routes
	router.HandleFunc("/knowledges", knowledgeHandler.GetAllKnowledgesHandler).Methods("GET")
	router.HandleFunc("/knowledges/{id}", knowledgeHandler.GetKnowledgeHandler).Methods("GET")

	// Protected knowledge routes; patch and delete additionally require
	// the authenticated user to own the addressed knowledge
	protectedKnowledgeRoutes := router.PathPrefix("/knowledges").Subrouter()
	protectedKnowledgeRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedKnowledgeRoutes.HandleFunc("", knowledgeHandler.CreateKnowledgeHandler).Methods("POST")

	ownedKnowledgeRoutes := router.PathPrefix("/knowledges").Subrouter()
	ownedKnowledgeRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.OwnershipMiddleware(knowledgeRepo))
	ownedKnowledgeRoutes.HandleFunc("/{id}", knowledgeHandler.UpdateKnowledgeHandler).Methods("PATCH")
	ownedKnowledgeRoutes.HandleFunc("/{id}", knowledgeHandler.DeleteKnowledgeHandler).Methods("DELETE")

	// Static assets
	router.PathPrefix("/public/").Handler(http.StripPrefix("/public/", http.FileServer(http.Dir("./public/"))))

	// Unmatched paths get a static HTML page
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, notFoundPage)
	})

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
