package routes

import (
	"github.com/gofiber/fiber/v2"

	"mini-instagram/config"
	"mini-instagram/internal/controllers"
	"mini-instagram/internal/middleware"
	"mini-instagram/internal/models"
	"mini-instagram/internal/services"
	"mini-instagram/internal/storage"
)

type Deps struct {
	Config   config.Config
	Auth     *services.AuthService
	Users    *services.UserService
	Posts    *services.PostService
	Comments *services.CommentService
	Likes    *services.LikeService
	Store    *storage.Store
}

// Register mounts every API route plus media serving and the 404 fallback.
func Register(app *fiber.App, d Deps) {
	app.Get("/api/health", controllers.Health)

	upload := &controllers.UploadHandler{Store: d.Store}
	app.Get(d.mediaPrefix()+"/:filename", upload.Serve)

	api := app.Group("/api", middleware.JWTUidOnly(d.Config.JWTSecret))
	protect := middleware.Protect(d.Users)

	AuthRoutes(api, d, protect)
	PostRoutes(api, d, protect)
	CommentRoutes(api, d, protect)
	LikeRoutes(api, d, protect)
	UploadRoutes(api, upload, protect)

	app.Use(controllers.NotFound)
}

func (d Deps) mediaPrefix() string {
	if d.Config.PublicMediaPrefix == "" {
		return "/uploads"
	}
	return d.Config.PublicMediaPrefix
}

func AuthRoutes(api fiber.Router, d Deps, protect fiber.Handler) {
	h := &controllers.AuthHandler{Auth: d.Auth, Users: d.Users, Seed: d.Config}

	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/seed-creator", h.SeedCreator)
	auth.Get("/me", protect, h.Me)
	auth.Get("/search", protect, h.Search)
}

// PostRoutes: reads are public, writes need a creator account.
func PostRoutes(api fiber.Router, d Deps, protect fiber.Handler) {
	h := &controllers.PostHandler{Posts: d.Posts}
	creatorOnly := middleware.RequireRole(models.RoleCreator)

	posts := api.Group("/posts")
	// /search must be registered before /:id
	posts.Get("/search", h.Search)
	posts.Get("/", h.List)
	posts.Get("/:id", h.Get)
	posts.Post("/", protect, creatorOnly, h.Create)
	posts.Put("/:id", protect, creatorOnly, h.Update)
	posts.Delete("/:id", protect, creatorOnly, h.Delete)
}

func CommentRoutes(api fiber.Router, d Deps, protect fiber.Handler) {
	h := &controllers.CommentHandler{Comments: d.Comments}

	comments := api.Group("/comments")
	// GET /api/comments/post/:postId?limit=2&cursor=xxxx
	comments.Get("/post/:postId", h.List)
	comments.Post("/", protect, h.Create)
	comments.Put("/:id", protect, h.Update)
	comments.Delete("/:id", protect, h.Delete)
}

func LikeRoutes(api fiber.Router, d Deps, protect fiber.Handler) {
	h := &controllers.LikeHandler{Likes: d.Likes}

	likes := api.Group("/likes")
	likes.Get("/:postId", h.List)
	likes.Post("/:postId", protect, h.Toggle)
}

func UploadRoutes(api fiber.Router, h *controllers.UploadHandler, protect fiber.Handler) {
	upload := api.Group("/upload")
	upload.Post("/", protect, h.Upload)
	upload.Delete("/:uuid", protect, h.Delete)
}
