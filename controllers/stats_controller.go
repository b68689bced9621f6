package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/goblog/repository"
	"github.com/cppla/goblog/utils"
)

// StatsController provides aggregate counts for the blog.
type StatsController struct {
	users repository.UserRepository
	posts repository.PostRepository
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(users repository.UserRepository, posts repository.PostRepository) *StatsController {
	return &StatsController{users: users, posts: posts}
}

// GetStats returns user and post totals. Failed counts fall back to zero
// instead of failing the whole endpoint.
func (s *StatsController) GetStats(ctx *gin.Context) {
	userCount, err := s.users.Count(ctx.Request.Context())
	if err != nil {
		userCount = 0
	}

	postCount, err := s.posts.Count(ctx.Request.Context())
	if err != nil {
		postCount = 0
	}

	utils.Success(ctx, gin.H{
		"user_count": userCount,
		"post_count": postCount,
	})
}
