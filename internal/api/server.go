package api

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/qualiflow/document_service/config"
	"github.com/qualiflow/document_service/infra/queue"
	"github.com/qualiflow/document_service/internal/api/rest/handlers"
	"github.com/qualiflow/document_service/internal/api/rest/middleware"
	"github.com/qualiflow/document_service/internal/domain"
	"github.com/qualiflow/document_service/internal/dto"
	"github.com/qualiflow/document_service/internal/helper"
	"github.com/qualiflow/document_service/internal/repository"
	"github.com/qualiflow/document_service/internal/services"
	"github.com/qualiflow/document_service/pkg/cloudinary"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260828

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.ProjectDocument{},
		&domain.QualificationProtocol{},
		&domain.QualificationObject{},
		&domain.ApprovalRecord{},
		&domain.DocumentComment{},
		&domain.AuditLog{},
		&domain.DocumentationCheck{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	auth := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	approvalRepo := repository.NewApprovalRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	checkRepo := repository.NewCheckRepository(db)

	// ---------- Services ----------
	auditSvc := services.NewAuditService(auditRepo)
	approvalSvc := services.NewApprovalService(approvalRepo, commentRepo, documentRepo, auditSvc)
	statusCache := services.NewStatusCache(approvalSvc)
	progressSvc := services.NewProgressService(documentRepo, statusCache)
	documentSvc := services.NewDocumentService(documentRepo, up)
	checklistSvc := services.NewChecklistService(checkRepo, auditSvc)

	// Every transition drops the cached status first, then notifies the
	// embedding side. Consumers re-pull resolved state themselves.
	approvalSvc.OnStatusChange(func(event dto.DocumentStatusChangedEvent) {
		statusCache.Invalidate(event.DocumentID)

		payload, err := json.Marshal(event)
		if err != nil {
			log.Printf("status event marshal error: %v", err)
			return
		}
		if err := kafkaProducer.PublishMessage([]byte(event.DocumentID), payload); err != nil {
			log.Printf("status event publish error: %v", err)
		}
	})

	// With a consumer group configured, peer replicas' transitions invalidate
	// this replica's cache too.
	if cfg.KafkaGroupID != "" {
		consumer := queue.NewKafkaConsumer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroupID,
			services.NewStatusEventHandler(statusCache))
		go consumer.Listen()
	}

	// ---------- Handlers ----------
	api := app.Group("/api", middleware.AuthMiddleware(auth))
	handlers.NewApprovalHandler(approvalSvc).SetupRoutes(api)
	handlers.NewAuditHandler(auditSvc).SetupRoutes(api)
	handlers.NewDocumentHandler(documentSvc, progressSvc).SetupRoutes(api)
	handlers.NewCheckHandler(checklistSvc).SetupRoutes(api)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
