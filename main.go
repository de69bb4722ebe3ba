package main

import (
	"github.com/qualiflow/document_service/config"
	"github.com/qualiflow/document_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
