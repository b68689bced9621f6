package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/goblog/middleware"
	"github.com/cppla/goblog/repository"
	"github.com/cppla/goblog/utils"
)

// PostController manages CRUD and search operations for posts.
type PostController struct {
	posts repository.PostRepository
}

// NewPostController creates a new PostController instance.
func NewPostController(posts repository.PostRepository) *PostController {
	return &PostController{posts: posts}
}

// SearchPosts performs a case-insensitive substring search over title and content.
// An empty query is rejected instead of matching the full corpus.
func (p *PostController) SearchPosts(ctx *gin.Context) {
	q := strings.TrimSpace(ctx.Query("q"))
	if q == "" {
		utils.Error(ctx, http.StatusBadRequest, 40030, "search query is required")
		return
	}

	posts, err := p.posts.Search(ctx.Request.Context(), q)
	if err != nil {
		utils.Sugar.Errorf("search posts failed q=%q: %v", q, err)
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to search posts")
		return
	}

	utils.Success(ctx, gin.H{"posts": posts})
}

// ListPosts returns paginated posts including author information, newest first.
func (p *PostController) ListPosts(ctx *gin.Context) {
	page, limit := parsePagination(ctx.Query("page"), ctx.Query("limit"))

	cacheKey := fmt.Sprintf("cache:posts:list:page=%d:limit=%d", page, limit)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	result, err := p.posts.FindAll(ctx.Request.Context(), page, limit)
	if err != nil {
		utils.Sugar.Errorf("list posts failed page=%d limit=%d: %v", page, limit, err)
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to list posts")
		return
	}

	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: result}, time.Hour)
	utils.Success(ctx, result)
}

// GetPost returns a single enriched post.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}

	cacheKey := "cache:post:detail:" + strconv.FormatUint(uint64(id), 10)
	if b, okCache := utils.CacheGetBytes(cacheKey); okCache {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.posts.FindByID(ctx.Request.Context(), id)
	if err != nil {
		utils.Sugar.Errorf("load post %d failed: %v", id, err)
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load post")
		return
	}
	if post == nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}

	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: post}, time.Hour)
	utils.Success(ctx, post)
}

// ListUserPosts returns posts created by a specific user (public), newest first.
func (p *PostController) ListUserPosts(ctx *gin.Context) {
	authorID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid user id")
		return
	}

	posts, err := p.posts.FindByAuthor(ctx.Request.Context(), authorID)
	if err != nil {
		utils.Sugar.Errorf("list posts for author %d failed: %v", authorID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to list user posts")
		return
	}

	utils.Success(ctx, gin.H{"posts": posts})
}

// CreatePost allows authenticated users to create new posts. The author is
// always the authenticated caller, never a body field.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required,min=1"`
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "title and content are required")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "title cannot be empty")
		return
	}
	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40022, "content cannot be empty")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	postID, err := p.posts.Create(ctx.Request.Context(), title, content, userID)
	if err != nil {
		utils.Sugar.Errorf("create post for user %d failed: %v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")

	utils.Created(ctx, "post created successfully", gin.H{"post_id": postID})
}

// UpdatePost allows the author to update their post. Ownership is enforced by
// a single statement filtered on both post id and author id; a non-owner gets
// the same 404 as a missing post so existence is not leaked.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required,min=1"`
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "title and content are required")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "title cannot be empty")
		return
	}
	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40022, "content cannot be empty")
		return
	}

	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40402, "post not found or unauthorized")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return
	}

	updated, err := p.posts.Update(ctx.Request.Context(), id, userID, title, content)
	if err != nil {
		utils.Sugar.Errorf("update post %d by user %d failed: %v", id, userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to update post")
		return
	}
	if !updated {
		utils.Error(ctx, http.StatusNotFound, 40402, "post not found or unauthorized")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.InvalidateByPrefix("cache:post:detail:" + strconv.FormatUint(uint64(id), 10))

	utils.Success(ctx, gin.H{"message": "post updated successfully"})
}

// DeletePost allows the author to delete their post, with the same
// ownership-scoped single statement and ambiguous 404 as UpdatePost.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40403, "post not found or unauthorized")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "unauthorized")
		return
	}

	deleted, err := p.posts.Delete(ctx.Request.Context(), id, userID)
	if err != nil {
		utils.Sugar.Errorf("delete post %d by user %d failed: %v", id, userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to delete post")
		return
	}
	if !deleted {
		utils.Error(ctx, http.StatusNotFound, 40403, "post not found or unauthorized")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.InvalidateByPrefix("cache:post:detail:" + strconv.FormatUint(uint64(id), 10))

	utils.Success(ctx, gin.H{"message": "post deleted successfully"})
}

// parsePagination coerces query values; invalid or absent input falls back to
// the defaults, never to a negative offset.
func parsePagination(pageStr, limitStr string) (int, int) {
	page := repository.DefaultPage
	limit := repository.DefaultLimit
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= repository.MaxLimit {
		limit = l
	}
	return page, limit
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}
