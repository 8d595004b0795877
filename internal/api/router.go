package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ona-ui/catalog/internal/api/handlers"
	mw "github.com/ona-ui/catalog/internal/api/middleware"
)

type Dependencies struct {
	Sessions             mw.SessionProvider
	RateLimitRPS         float64
	RateLimitBurst       int
	UploadDir            string
	AuthHandler          *handlers.AuthHandler
	ProductsHandler      *handlers.ProductsHandler
	CategoriesHandler    *handlers.CategoriesHandler
	SubcategoriesHandler *handlers.SubcategoriesHandler
	ComponentsHandler    *handlers.ComponentsHandler
	LicensesHandler      *handlers.LicensesHandler
	FavoritesHandler     *handlers.FavoritesHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	// Swagger documentation
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/docs/doc.json"),
	))

	// Uploaded preview images. DiskStore writes into this directory and
	// hands out URLs under /uploads/.
	if dep.UploadDir != "" {
		files := http.StripPrefix("/uploads/", http.FileServer(http.Dir(dep.UploadDir)))
		r.Get("/uploads/*", files.ServeHTTP)
	}

	r.Route("/api/v1", func(api chi.Router) {
		// Auth routes (public)
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", dep.AuthHandler.Register)
			ar.Post("/login", dep.AuthHandler.Login)
		})

		// Public catalog browsing
		api.Route("/catalog", func(cr chi.Router) {
			cr.Get("/products", dep.ProductsHandler.ListPublic)
			cr.Get("/products/{slug}/categories", dep.CategoriesHandler.ListByProductSlug)
			cr.Get("/categories/{categoryId}/subcategories", dep.SubcategoriesHandler.ListByCategory)
			cr.Get("/components", dep.ComponentsHandler.ListPublic)
			cr.Get("/components/{id}", dep.ComponentsHandler.Get)
			cr.Get("/components/{id}/variant", dep.ComponentsHandler.GetVariant)
			cr.Post("/components/{id}/view", dep.ComponentsHandler.RecordView)
			cr.Post("/components/{id}/copy", dep.ComponentsHandler.RecordCopy)
		})

		// Authenticated routes
		api.Group(func(protected chi.Router) {
			protected.Use(mw.Auth(dep.Sessions))

			// Licenses
			protected.Route("/licenses", func(lr chi.Router) {
				lr.Post("/checkout", dep.LicensesHandler.Checkout)
				lr.Get("/mine", dep.LicensesHandler.ListMine)
				lr.Get("/{id}", dep.LicensesHandler.Get)
				lr.Post("/{id}/claim", dep.LicensesHandler.ClaimSeat)
				lr.Post("/{id}/release", dep.LicensesHandler.ReleaseSeat)

				lr.With(mw.RequireAdmin).Get("/", dep.LicensesHandler.List)
				lr.With(mw.RequireAdmin).Post("/{id}/mark-paid", dep.LicensesHandler.MarkPaid)
			})

			// Favorites
			protected.Route("/favorites", func(fr chi.Router) {
				fr.Get("/", dep.FavoritesHandler.ListMine)
				fr.Put("/{componentId}", dep.FavoritesHandler.Add)
				fr.Delete("/{componentId}", dep.FavoritesHandler.Remove)
			})

			// Admin-only catalog management
			protected.Group(func(admin chi.Router) {
				admin.Use(mw.RequireAdmin)

				admin.Route("/products", func(pr chi.Router) {
					pr.Get("/", dep.ProductsHandler.List)
					pr.Post("/", dep.ProductsHandler.Create)
					pr.Post("/reorder", dep.ProductsHandler.Reorder)
					pr.Get("/{id}", dep.ProductsHandler.Get)
					pr.Put("/{id}", dep.ProductsHandler.Update)
					pr.Delete("/{id}", dep.ProductsHandler.Delete)
				})

				admin.Route("/categories", func(cr chi.Router) {
					cr.Get("/", dep.CategoriesHandler.List)
					cr.Post("/", dep.CategoriesHandler.Create)
					cr.Post("/reorder", dep.CategoriesHandler.Reorder)
					cr.Post("/check-slug", dep.CategoriesHandler.CheckSlug)
					cr.Post("/batch", dep.CategoriesHandler.Batch)
					cr.Get("/stats", dep.CategoriesHandler.Stats)
					cr.Get("/{id}", dep.CategoriesHandler.Get)
					cr.Put("/{id}", dep.CategoriesHandler.Update)
					cr.Delete("/{id}", dep.CategoriesHandler.Delete)
				})

				admin.Route("/subcategories", func(sr chi.Router) {
					sr.Get("/", dep.SubcategoriesHandler.List)
					sr.Post("/", dep.SubcategoriesHandler.Create)
					sr.Post("/reorder", dep.SubcategoriesHandler.Reorder)
					sr.Post("/check-slug", dep.SubcategoriesHandler.CheckSlug)
					sr.Post("/batch", dep.SubcategoriesHandler.Batch)
					sr.Get("/{id}", dep.SubcategoriesHandler.Get)
					sr.Put("/{id}", dep.SubcategoriesHandler.Update)
					sr.Delete("/{id}", dep.SubcategoriesHandler.Delete)
				})

				admin.Route("/components", func(cr chi.Router) {
					cr.Get("/", dep.ComponentsHandler.List)
					cr.Post("/", dep.ComponentsHandler.Create)
					cr.Post("/reorder", dep.ComponentsHandler.Reorder)
					cr.Post("/check-slug", dep.ComponentsHandler.CheckSlug)
					cr.Post("/batch", dep.ComponentsHandler.Batch)
					cr.Get("/{id}", dep.ComponentsHandler.Get)
					cr.Put("/{id}", dep.ComponentsHandler.Update)
					cr.Delete("/{id}", dep.ComponentsHandler.Delete)
					cr.Post("/{id}/preview-image", dep.ComponentsHandler.UploadPreview)

					cr.Get("/{id}/versions", dep.ComponentsHandler.ListVersions)
					cr.Post("/{id}/versions", dep.ComponentsHandler.CreateVersion)
					cr.Put("/{id}/versions/{versionId}/default", dep.ComponentsHandler.SetDefaultVersion)
					cr.Delete("/{id}/versions/{versionId}", dep.ComponentsHandler.DeleteVersion)
				})
			})
		})
	})

	return r
}
