package handlers

import (
	"buycycle/internal/auth"
	"buycycle/internal/config"
	"buycycle/internal/repos"
	"buycycle/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Policy *auth.Policy

	UserHandler     *UserHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	AdvertHandler   *AdvertHandler
	BookingHandler  *BookingHandler
	WishlistHandler *WishlistHandler
	ReportHandler   *ReportHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg *config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	advRepo := repos.NewAdvertRepo(db)
	bookRepo := repos.NewBookingRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	reportRepo := repos.NewReportRepo(db)

	resolver := services.NewResolver(userRepo, prodRepo, advRepo, bookRepo, wishRepo)
	resolver.HideUnavailableAds = cfg.HideUnavailableAds

	userSvc := services.NewUserService(userRepo)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo, bookRepo, advRepo)
	advSvc := services.NewAdvertService(advRepo, prodRepo)
	bookSvc := services.NewBookingService(bookRepo, prodRepo)
	bookSvc.MarkUnavailable = cfg.MarkUnavailableOnBooking
	wishSvc := services.NewWishlistService(wishRepo)
	reportSvc := services.NewReportService(reportRepo)

	policy := &auth.Policy{
		Verifier: auth.NewVerifier(cfg.JWTSecret),
		Roles:    auth.NewRoleResolver(userRepo),
	}

	return &Deps{
		Policy:          policy,
		UserHandler:     &UserHandler{Users: userSvc, Issuer: auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc, Resolver: resolver},
		AdvertHandler:   &AdvertHandler{Adverts: advSvc, Resolver: resolver},
		BookingHandler:  &BookingHandler{Bookings: bookSvc, Resolver: resolver},
		WishlistHandler: &WishlistHandler{Wish: wishSvc, Resolver: resolver},
		ReportHandler:   &ReportHandler{Reports: reportSvc},
		AdminHandler:    &AdminHandler{Users: userSvc},
	}
}
