package rules

import (
	"fmt"

	ruleshttp "loyalty-rules/internal/rules/adapter/http"
	"loyalty-rules/internal/rules/adapter/persistence"
	"loyalty-rules/internal/rules/adapter/persistence/mongodb"
	"loyalty-rules/internal/rules/adapter/security"
	"loyalty-rules/internal/rules/config"
	"loyalty-rules/internal/rules/domain/repository"
	"loyalty-rules/internal/rules/usecase"
	"loyalty-rules/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// RulesModule bundles the decision engine with its adapters.
type RulesModule struct {
	reader      repository.DocumentReader
	decisionLog repository.DecisionLogger
	tokenSvc    *security.JWTokenService
	decisions   *usecase.DecisionUseCase
	handler     *ruleshttp.AuthorizeHandler
	config      *config.Config
	log         logger.Logger
}

// NewRulesModule creates a new rules module instance. The Redis client may
// be nil; the engine then runs without the audit stream.
func NewRulesModule(db *mongo.Database, redisClient *redis.Client, cfg *config.Config, log logger.Logger) (*RulesModule, error) {
	reader := mongodb.NewMongoDocumentReader(db, log)

	var decisionLog repository.DecisionLogger
	if redisClient != nil {
		decisionLog = persistence.NewRedisDecisionLog(redisClient, cfg.DecisionStream, log)
	}

	tokenSvc, err := security.NewJWTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	decisions := usecase.NewDecisionUseCase(reader, decisionLog, log)
	handler := ruleshttp.NewAuthorizeHandler(decisions, log)

	return &RulesModule{
		reader:      reader,
		decisionLog: decisionLog,
		tokenSvc:    tokenSvc,
		decisions:   decisions,
		handler:     handler,
		config:      cfg,
		log:         log,
	}, nil
}

// RegisterRoutes registers the decision endpoint with the provided router.
func (rm *RulesModule) RegisterRoutes(router fiber.Router) {
	middleware := rm.GetMiddleware()
	rm.handler.SetupRoutes(router, middleware)
}

// GetUsecase returns the decision point for in-process callers.
func (rm *RulesModule) GetUsecase() *usecase.DecisionUseCase {
	return rm.decisions
}

// GetTokenService returns the token service, mostly for operational tooling.
func (rm *RulesModule) GetTokenService() *security.JWTokenService {
	return rm.tokenSvc
}

// GetMiddleware returns the HTTP middleware chain for the module's routes.
func (rm *RulesModule) GetMiddleware() *ruleshttp.RulesMiddleware {
	return ruleshttp.NewRulesMiddleware(rm.tokenSvc)
}

// Stop performs cleanup when the module is shut down.
func (rm *RulesModule) Stop() error {
	return nil
}
