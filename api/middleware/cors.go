package middleware

import (
	"github.com/rs/cors"
)

func (mw *Middleware) SetupCORS() *cors.Cors {
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   mw.cfg.Cors.AllowedOrigins,
		AllowedMethods:   mw.cfg.Cors.AllowedMethods,
		AllowedHeaders:   mw.cfg.Cors.AllowedHeaders,
		ExposedHeaders:   mw.cfg.Cors.ExposedHeaders,
		AllowCredentials: mw.cfg.Cors.AllowCredentials,
		MaxAge:           mw.cfg.Cors.MaxAge,
	})

	return corsMiddleware
}
