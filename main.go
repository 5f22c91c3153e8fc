// main.go
package main

import (
	"context"
	"net/http"
	"os"

	"flowerhub/controllers"
	"flowerhub/routes"
	"flowerhub/services"
	"flowerhub/storage"
	"flowerhub/store"
	"flowerhub/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()

	utils.InitLogger()
	if err != nil {
		utils.Logger.Info("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			utils.Logger.Errorw("disconnect mongodb", "error", err)
		}
	}()

	// Open the durable cart snapshot store
	cartDBPath := os.Getenv("CART_DB_PATH")
	if cartDBPath == "" {
		cartDBPath = "flowerhub.db"
	}
	snapshots, err := storage.OpenBolt(cartDBPath)
	if err != nil {
		utils.Logger.Fatalw("open cart snapshot store", "path", cartDBPath, "error", err)
	}
	defer snapshots.Close()

	// Initialize services and the session manager
	catalog := services.NewMongoCatalog(client)
	identity := services.NewMongoIdentity(client)
	orders := services.NewMongoOrders(client)
	manager := store.NewManager(snapshots)

	// Initialize controllers
	userController := controllers.NewUserController(identity, manager, emailService)
	productController := controllers.NewProductController(catalog)
	cartController := controllers.NewCartController(manager, catalog)
	orderController := controllers.NewOrderController(manager, orders, emailService)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, productController, cartController, orderController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	utils.Logger.Infow("server is running", "port", port)
	utils.Logger.Fatal(http.ListenAndServe(":"+port, router))
}
