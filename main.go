package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/deccan0963-netizen/Tasks/cache"
	"github.com/deccan0963-netizen/Tasks/client"
	"github.com/deccan0963-netizen/Tasks/handlers"
	"github.com/deccan0963-netizen/Tasks/logging"
	"github.com/deccan0963-netizen/Tasks/middleware"
	"github.com/deccan0963-netizen/Tasks/repositories"
	"github.com/deccan0963-netizen/Tasks/services"
)

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Tracking Service...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	tokenSecret := os.Getenv("JWT_SECRET")
	if mongoURI == "" || mongoDBName == "" {
		logging.Logger.Fatal("Event ID: CONFIG_MISSING, Description: MONGO_URI and MONGO_DB_NAME must be set")
	}
	if tokenSecret == "" {
		logging.Logger.Fatal("Event ID: CONFIG_MISSING, Description: JWT_SECRET must be set")
	}
	directoryURL := os.Getenv("DIRECTORY_API_URL")
	directoryKey := os.Getenv("DIRECTORY_API_KEY")
	listenAddr := ":" + envOr("SERVER_PORT", "8002")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer mongoClient.Disconnect(ctx)

	if err := mongoClient.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := mongoClient.Database(mongoDBName)
	projectsCollection := db.Collection("projects")
	tasksCollection := db.Collection("tasks")
	acceptancesCollection := db.Collection("taskAcceptances")

	projectRepo := repositories.NewProjectRepository(projectsCollection)
	taskRepo := repositories.NewTaskRepository(tasksCollection)
	acceptanceRepo := repositories.NewAcceptanceRepository(acceptancesCollection, tasksCollection)
	if err := acceptanceRepo.EnsureIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: Failed to create acceptance index: %v", err)
	}

	directoryClient := client.NewHTTPClient("DirectoryServiceCB")
	directoryCache := cache.NewTTL(24 * time.Hour)
	directoryService := services.NewDirectoryService(directoryClient, directoryCache, directoryURL, directoryKey)

	projectService := services.NewProjectService(projectRepo, taskRepo, acceptanceRepo, directoryService)
	taskService := services.NewTaskService(taskRepo, projectService)
	acceptanceService := services.NewAcceptanceService(acceptanceRepo, taskRepo, projectService)

	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	acceptanceHandler := handlers.NewAcceptanceHandler(acceptanceService)
	directoryHandler := handlers.NewDirectoryHandler(directoryService)

	auth := middleware.NewAuth([]byte(tokenSecret))
	manager := []string{handlers.RoleManager}
	anyRole := []string{handlers.RoleManager, handlers.RoleMember}

	// Mutating manager routes pass the role gate and then the privilege
	// service's per-role action list.
	managerCan := func(primary, secondary string, h http.HandlerFunc) http.Handler {
		return auth.Middleware(middleware.RequirePermission(directoryService, primary, secondary, h), manager)
	}

	r := mux.NewRouter()

	r.Handle("/api/projects", managerCan("Projects", "Create", projectHandler.CreateProject)).Methods(http.MethodPost)
	r.Handle("/api/projects", auth.Middleware(http.HandlerFunc(projectHandler.GetAllProjects), anyRole)).Methods(http.MethodGet)
	r.Handle("/api/projects/{id}", auth.Middleware(http.HandlerFunc(projectHandler.GetProjectByID), anyRole)).Methods(http.MethodGet)
	r.Handle("/api/projects/{id}", managerCan("Projects", "Edit", projectHandler.UpdateProject)).Methods(http.MethodPut)
	r.Handle("/api/projects/{id}", managerCan("Projects", "Delete", projectHandler.DeleteProject)).Methods(http.MethodDelete)
	r.Handle("/api/projects/{id}/details", auth.Middleware(http.HandlerFunc(projectHandler.GetProjectDetails), anyRole)).Methods(http.MethodGet)

	r.Handle("/api/tasks/all", auth.Middleware(http.HandlerFunc(taskHandler.GetAllTasks), anyRole)).Methods(http.MethodGet)
	r.Handle("/api/tasks/create", managerCan("Tasks", "Create", taskHandler.CreateTask)).Methods(http.MethodPost)
	r.Handle("/api/tasks/status", auth.Middleware(http.HandlerFunc(taskHandler.ChangeTaskStatus), anyRole)).Methods(http.MethodPost)
	r.Handle("/api/tasks/project/{projectId}", auth.Middleware(http.HandlerFunc(taskHandler.GetTasksByProjectID), anyRole)).Methods(http.MethodGet)
	r.Handle("/api/tasks/{taskID}", auth.Middleware(http.HandlerFunc(taskHandler.GetTaskByID), anyRole)).Methods(http.MethodGet)
	r.Handle("/api/tasks/{taskID}", managerCan("Tasks", "Edit", taskHandler.UpdateTask)).Methods(http.MethodPut)
	r.Handle("/api/tasks/{taskID}", managerCan("Tasks", "Delete", taskHandler.DeleteTask)).Methods(http.MethodDelete)

	r.Handle("/api/task-acceptance/accept", auth.Middleware(http.HandlerFunc(acceptanceHandler.AcceptTask), anyRole)).Methods(http.MethodPost)
	r.Handle("/api/task-acceptance/user/{userId}", auth.Middleware(http.HandlerFunc(acceptanceHandler.GetByUser), anyRole)).Methods(http.MethodGet)
	r.Handle("/api/task-acceptance/project/{projectId}", auth.Middleware(http.HandlerFunc(acceptanceHandler.GetAcceptedForProject), anyRole)).Methods(http.MethodGet)

	r.Handle("/api/directory/users", auth.Middleware(http.HandlerFunc(directoryHandler.GetUsers), anyRole)).Methods(http.MethodGet)
	r.Handle("/api/directory/departments", auth.Middleware(http.HandlerFunc(directoryHandler.GetDepartments), anyRole)).Methods(http.MethodGet)
	r.Handle("/api/directory/concerns", auth.Middleware(http.HandlerFunc(directoryHandler.GetConcerns), anyRole)).Methods(http.MethodGet)

	corsRouter := middleware.EnableCORS(r)

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_START, Description: Server running on %s", listenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FAILED, Description: Server failed to start: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
