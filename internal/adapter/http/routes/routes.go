package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "credito_tributario/docs"
	request "credito_tributario/internal/adapter/http/dto/request"
	"credito_tributario/internal/adapter/http/handlers"
	"credito_tributario/internal/adapter/http/middleware"
	"credito_tributario/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Run wires the dependencies and serves the API until SIGINT/SIGTERM.
func Run(cfg config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := newDependencies(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err)
	}

	router, err := NewRouter(cfg, deps)
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[http][server] listening addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to startup the application: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[http][server] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[http][server] shutdown err=%v", err)
	}
	deps.Close(shutdownCtx)
}

// NewRouter builds the gin engine with every route under /v1.
func NewRouter(cfg config.Config, deps *Dependencies) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := request.RegisterValidations(v); err != nil {
			return nil, err
		}
	}

	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	v1.GET("/ping", handlers.Ping)

	api := v1.Group("")
	api.Use(middleware.Auth(cfg.JWTSecret))
	addClientRoutes(api, handlers.NewClientHandler(deps.Clients))
	addProposalRoutes(api, handlers.NewProposalHandler(deps.Proposals))
	addContractRoutes(api, handlers.NewContractHandler(deps.Contracts))
	addSessionRoutes(api, handlers.NewSessionHandler(deps.Session))

	return router, nil
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
