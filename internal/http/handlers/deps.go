package handlers

import (
	"servio/internal/config"
	"servio/internal/repos"
	"servio/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CategoryHandler *CategoryHandler
	SearchHandler   *SearchHandler
	ServiceHandler  *ServiceHandler
	BookingHandler  *BookingHandler
	RequestHandler  *RequestHandler
	PrivacyHandler  *PrivacyHandler
	ProfileHandler  *ProfileHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	svcRepo := repos.NewServiceRepo(db)
	userRepo := repos.NewUserRepo(db)
	bookRepo := repos.NewBookingRepo(db)
	reqRepo := repos.NewRequestRepo(db)
	privRepo := repos.NewPrivacyRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, svcRepo, userRepo)
	bookingSvc := services.NewBookingService(bookRepo, svcRepo, userRepo)
	requestSvc := services.NewRequestService(reqRepo, userRepo)
	privacySvc := services.NewPrivacyService(privRepo)
	profileSvc := services.NewProfileService(userRepo, svcRepo)

	return &Deps{
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		SearchHandler:   &SearchHandler{Catalog: catalogSvc},
		ServiceHandler:  &ServiceHandler{Catalog: catalogSvc},
		BookingHandler:  &BookingHandler{Bookings: bookingSvc},
		RequestHandler:  &RequestHandler{Requests: requestSvc},
		PrivacyHandler:  &PrivacyHandler{Privacy: privacySvc},
		ProfileHandler:  &ProfileHandler{Profiles: profileSvc},
		AdminHandler: &AdminHandler{
			Catalog:  catalogSvc,
			Services: svcRepo,
			Bookings: bookRepo,
			Requests: reqRepo,
			Users:    userRepo,
		},
	}
}
