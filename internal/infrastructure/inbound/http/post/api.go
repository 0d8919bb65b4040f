package post_http

import (
	"github.com/labstack/echo/v4"

	post_service "blog-post-service/internal/domain/ports/input/post"
	ports "blog-post-service/internal/domain/ports/output"
)

// API groups the post handlers and knows where each one is mounted.
type API struct {
	listOwn *ListOwnPostsHandler
	forms   *PostFormHandler
	create  *CreatePostHandler
	get     *GetPostHandler
	update  *UpdatePostHandler
	delete  *DeletePostHandler
	public  *PublicPostsHandler
}

func NewAPI(management post_service.ManagementService, public post_service.PublicService, log ports.Logger) *API {
	return &API{
		listOwn: NewListOwnPostsHandler(management, log),
		forms:   NewPostFormHandler(management, log),
		create:  NewCreatePostHandler(management, log),
		get:     NewGetPostHandler(management, log),
		update:  NewUpdatePostHandler(management, log),
		delete:  NewDeletePostHandler(management, log),
		public:  NewPublicPostsHandler(public, log),
	}
}

// RegisterPublic mounts the anonymous read routes, e.g. under /api.
func (a *API) RegisterPublic(g *echo.Group) {
	g.GET("/posts", a.public.ListPublished)
	g.GET("/posts/:slug", a.public.GetBySlug)
}

// RegisterManagement mounts the owner routes. g must already require
// authentication.
func (a *API) RegisterManagement(g *echo.Group) {
	g.GET("/posts", a.listOwn.ListOwnPosts)
	g.GET("/posts/create", a.forms.CreateForm)
	g.POST("/posts", a.create.CreatePost)
	g.GET("/posts/:id", a.get.GetPost)
	g.GET("/posts/:id/edit", a.forms.EditForm)
	g.PUT("/posts/:id", a.update.UpdatePost)
	g.POST("/posts/:id", a.update.UpdatePost)
	g.DELETE("/posts/:id", a.delete.DeletePost)
}
