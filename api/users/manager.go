package users

import (
	"fairfoul_server/api/middleware"
	"fairfoul_server/services"
	"fairfoul_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type UserRoutesManager struct {
	logger       *gecho.Logger
	authService  *services.AuthService
	userService  *services.UserService
	emailService *services.EmailService
	cfg          *structs.Config
	mw           *middleware.Middleware
}

func NewUserRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	userService *services.UserService,
	emailService *services.EmailService,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *UserRoutesManager {
	return &UserRoutesManager{
		logger:       logger,
		authService:  authService,
		userService:  userService,
		emailService: emailService,
		cfg:          cfg,
		mw:           mw,
	}
}

func (urm *UserRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		// Public routes
		r.Post("/register", urm.HandleRegister)
		r.Post("/login", urm.HandleLogin)
		r.Post("/refresh", urm.HandleRefresh)
		r.Get("/verify-email", urm.HandleVerifyEmail)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(urm.mw.UserAuthMiddleware)

			r.Post("/logout", urm.HandleLogout)
			r.Get("/me", urm.HandleGetProfile)
			r.Patch("/me", urm.HandleUpdateProfile)
			r.Post("/change-password", urm.HandleChangePassword)

			r.Get("/addresses", urm.HandleListAddresses)
			r.Post("/addresses", urm.HandleCreateAddress)
			r.Get("/addresses/default", urm.HandleGetDefaultAddress)
			r.Get("/addresses/{id}", urm.HandleGetAddress)
			r.Patch("/addresses/{id}", urm.HandleUpdateAddress)
			r.Delete("/addresses/{id}", urm.HandleDeleteAddress)
			r.Post("/addresses/{id}/default", urm.HandleSetDefaultAddress)
		})
	})
}
