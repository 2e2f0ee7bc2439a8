package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/backend/internal/config"
	"github.com/skillswap/backend/internal/db"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/goroutine"
	httpRouter "github.com/skillswap/backend/internal/http/router"
	"github.com/skillswap/backend/internal/infrastructure/memory"
	"github.com/skillswap/backend/internal/infrastructure/persistence"
	"github.com/skillswap/backend/internal/interface/http/handler"
	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/security"
	"github.com/skillswap/backend/internal/service"
	"github.com/skillswap/backend/internal/storage"
	"github.com/skillswap/backend/internal/usecase/catalog"
	"github.com/skillswap/backend/internal/usecase/dashboard"
	"github.com/skillswap/backend/internal/usecase/message"
	"github.com/skillswap/backend/internal/usecase/notification"
	"github.com/skillswap/backend/internal/usecase/profile"
	"github.com/skillswap/backend/internal/usecase/review"
	"github.com/skillswap/backend/internal/usecase/skillrequest"
	"github.com/skillswap/backend/internal/validation"
	"github.com/skillswap/backend/internal/ws"
)

// maxSanitizedLength верхняя граница текста после очистки, точные лимиты проверяет validation.
const maxSanitizedLength = 10000

// repositories набор адаптеров выбранного драйвера хранения.
type repositories struct {
	users         repository.UserRepository
	userSkills    repository.UserSkillRepository
	categories    repository.CategoryRepository
	skills        repository.SkillRepository
	requests      repository.SkillRequestRepository
	messages      repository.RequestMessageRepository
	reviews       repository.ReviewRepository
	notifications repository.NotificationRepository
}

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}

	if err := validation.RegisterBindingValidators(); err != nil {
		logger.Log.Fatalf("main: не удалось зарегистрировать валидаторы: %v", err)
	}

	var (
		repos  *repositories
		pinger handler.Pinger
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Log.Warn("main: данные хранятся в памяти и пропадут после перезапуска")
		repos = memoryRepositories()
	default:
		dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Log.Fatalf("main: ошибка подключения к базе: %v", err)
		}
		defer safeClose(dbConn)

		if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
			logger.Log.Fatalf("main: ошибка миграций: %v", err)
		}
		repos = postgresRepositories(dbConn)
		pinger = dbConn
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	sanitizer := security.NewSanitizer(maxSanitizedLength)

	avatarStorage, err := storage.NewAvatarStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB, cfg.AvatarSize)
	if err != nil {
		logger.Log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, hub.Run)

	dispatcher := notification.NewDispatcher(repos.notifications, repos.users, repos.skills, hub)

	// Use cases.
	authService := service.NewAuthService(repos.users, tokenManager)

	createSkillUC := catalog.NewCreateSkillUseCase(repos.skills, repos.categories, sanitizer)
	updateSkillUC := catalog.NewUpdateSkillUseCase(repos.skills, repos.categories, sanitizer)
	deleteSkillUC := catalog.NewDeleteSkillUseCase(repos.skills)
	getSkillUC := catalog.NewGetSkillUseCase(repos.skills)
	searchSkillsUC := catalog.NewSearchSkillsUseCase(repos.skills)
	categoryUC := catalog.NewCategoryUseCases(repos.categories, repos.users)

	createRequestUC := skillrequest.NewCreateRequestUseCase(repos.requests, repos.skills, dispatcher)
	acceptRequestUC := skillrequest.NewAcceptRequestUseCase(repos.requests, dispatcher)
	rejectRequestUC := skillrequest.NewRejectRequestUseCase(repos.requests, dispatcher)
	completeRequestUC := skillrequest.NewCompleteRequestUseCase(repos.requests)
	cancelRequestUC := skillrequest.NewCancelRequestUseCase(repos.requests)
	getRequestUC := skillrequest.NewGetRequestUseCase(repos.requests)
	listRequestsUC := skillrequest.NewListRequestsUseCase(repos.requests)

	postMessageUC := message.NewPostMessageUseCase(repos.requests, repos.messages, sanitizer, dispatcher)
	listMessagesUC := message.NewListMessagesUseCase(repos.requests, repos.messages)
	markReadUC := message.NewMarkIncomingReadUseCase(repos.messages)
	unreadMessagesUC := message.NewCountUnreadUseCase(repos.messages)

	submitReviewUC := review.NewSubmitReviewUseCase(repos.requests, repos.reviews, sanitizer, dispatcher)
	canReviewUC := review.NewCanReviewUseCase(repos.requests, repos.reviews)
	ratingUC := review.NewAverageRatingUseCase(repos.reviews)
	listReviewsUC := review.NewListReviewsUseCase(repos.reviews)

	getProfileUC := profile.NewGetProfileUseCase(repos.users, repos.userSkills, repos.skills, repos.reviews)
	updateProfileUC := profile.NewUpdateProfileUseCase(repos.users, sanitizer)
	uploadAvatarUC := profile.NewUploadAvatarUseCase(repos.users, avatarStorage)
	userSkillUC := profile.NewUserSkillUseCases(repos.userSkills)

	dashboardUC := dashboard.NewDashboardUseCase(repos.users, repos.userSkills, repos.skills, repos.requests, repos.reviews)
	inbox := notification.NewInbox(repos.notifications)

	// Хэндлеры.
	healthHandler := handler.NewHealthHandler(pinger, cfg.StorageDriver)
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(createSkillUC, updateSkillUC, deleteSkillUC, getSkillUC, searchSkillsUC, categoryUC)
	requestHandler := handler.NewSkillRequestHandler(createRequestUC, acceptRequestUC, rejectRequestUC, completeRequestUC, cancelRequestUC, getRequestUC, listRequestsUC)
	messageHandler := handler.NewMessageHandler(postMessageUC, listMessagesUC, markReadUC, unreadMessagesUC)
	reviewHandler := handler.NewReviewHandler(submitReviewUC, canReviewUC, ratingUC, listReviewsUC, getProfileUC)
	profileHandler := handler.NewProfileHandler(getProfileUC, updateProfileUC, uploadAvatarUC, userSkillUC)
	notificationHandler := handler.NewNotificationHandler(inbox)
	dashboardHandler := handler.NewDashboardHandler(dashboardUC)
	wsHandler := handler.NewWSHandler(hub, tokenManager, cfg.AllowedOrigins)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, tokenManager, healthHandler, authHandler, catalogHandler, requestHandler,
		messageHandler, reviewHandler, profileHandler, notificationHandler, dashboardHandler, wsHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	})

	logger.Log.WithFields(logrus.Fields{
		"port":    cfg.HTTPPort,
		"env":     cfg.Env,
		"storage": cfg.StorageDriver,
	}).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

func postgresRepositories(conn *sqlx.DB) *repositories {
	r := persistence.NewRepositories(conn)
	return &repositories{
		users:         r.Users,
		userSkills:    r.UserSkills,
		categories:    r.Categories,
		skills:        r.Skills,
		requests:      r.SkillRequests,
		messages:      r.RequestMessages,
		reviews:       r.Reviews,
		notifications: r.Notifications,
	}
}

func memoryRepositories() *repositories {
	s := memory.NewStore()
	return &repositories{
		users:         s.Users(),
		userSkills:    s.UserSkills(),
		categories:    s.Categories(),
		skills:        s.Skills(),
		requests:      s.SkillRequests(),
		messages:      s.RequestMessages(),
		reviews:       s.Reviews(),
		notifications: s.Notifications(),
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.WithError(err).Error("main: ошибка закрытия базы")
	}
}
