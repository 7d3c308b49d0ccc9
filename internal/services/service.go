package services

import (
	"artistsite/config"
	"artistsite/internal/database"
	"artistsite/internal/repositories"
	"time"
)

type Service struct {
	Transaction *TransactionService
	Content     ContentStore
	Site        *SiteState
	Auth        AuthGate
	Sessions    *SessionService
	Scheduler   *SchedulerService
}

func New(db database.DB, cfg config.Config) (Service, error) {
	transactionService := NewTransactionService(db)
	repos := repositories.New(db)

	var store ContentStore
	if cfg.IsStatic() {
		staticStore, err := NewStaticContentService(cfg.ContentFile)
		if err != nil {
			return Service{}, err
		}
		store = staticStore
	} else {
		store = NewRemoteContentService(repos, transactionService)
	}

	var sessionStore SessionStore
	if db.Cache.Session != nil {
		sessionStore = NewValkeySessionStore(db.Cache.Session)
	} else {
		sessionStore = NewMemorySessionStore()
	}

	return Service{
		Transaction: transactionService,
		Content:     store,
		Site:        NewSiteState(store),
		Auth:        NewAuthGate(cfg, repos),
		Sessions: NewSessionService(
			sessionStore,
			cfg.SessionSigningKey,
			time.Duration(cfg.SessionTTLHours)*time.Hour,
		),
		Scheduler: NewSchedulerService(),
	}, nil
}
