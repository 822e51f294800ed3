package routes

import (
	"github.com/gorilla/mux"

	"github.com/swiss1111/advanced-stock-price-checker/internal/api/docs"
)

// RegisterDocsRoutes mounts the Swagger UI at basePath
func RegisterDocsRoutes(router *mux.Router, basePath string, docsHandler *docs.Handler) {
	router.HandleFunc(docsHandler.JSONPath(), docsHandler.ServeJSON).Methods("GET")
	router.HandleFunc(docsHandler.YAMLPath(), docsHandler.ServeYAML).Methods("GET")
	router.HandleFunc(basePath, docsHandler.ServeUI).Methods("GET")
	router.HandleFunc(basePath+"/", docsHandler.ServeUI).Methods("GET")
}
