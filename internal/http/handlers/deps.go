package handlers

import (
	"maktaba/internal/admin"
	"maktaba/internal/auth"
	"maktaba/internal/catalog"
	"maktaba/internal/config"
	"maktaba/internal/notify"
	"maktaba/internal/session"
)

type Deps struct {
	StoreHandler   *StoreHandler
	SearchHandler  *SearchHandler
	CartHandler    *CartHandler
	CompareHandler *CompareHandler
	OrderHandler   *OrderHandler
	AuthHandler    *AuthHandler
	AdminHandler   *AdminHandler
}

func NewDeps(cfg config.Config, cat *catalog.Store, sessions *session.Store,
	authSvc *auth.Service, gate *admin.Gate, notifier *notify.Service) *Deps {

	return &Deps{
		StoreHandler:   &StoreHandler{Catalog: cat, Sessions: sessions},
		SearchHandler:  &SearchHandler{Catalog: cat, Sessions: sessions},
		CartHandler:    &CartHandler{Catalog: cat, Sessions: sessions},
		CompareHandler: &CompareHandler{Catalog: cat, Sessions: sessions},
		OrderHandler: &OrderHandler{
			Catalog: cat, Sessions: sessions, Notifier: notifier,
			WhatsAppNumber: cfg.WhatsAppNumber,
			ReadyDelay:     cfg.ReadyDelay,
			CompleteDelay:  cfg.CompleteDelay,
		},
		AuthHandler:  &AuthHandler{Auth: authSvc, Sessions: sessions},
		AdminHandler: &AdminHandler{Gate: gate, Catalog: cat, AdminPath: cfg.AdminPath},
	}
}
