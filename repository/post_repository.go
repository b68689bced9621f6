package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cppla/goblog/models"
)

const (
	// DefaultPage is used when the requested page is missing or invalid.
	DefaultPage = 1
	// DefaultLimit is used when the requested page size is missing or invalid.
	DefaultLimit = 10
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100

	// authorListCap bounds FindByAuthor so a prolific author cannot make the
	// endpoint return an unbounded result set.
	authorListCap = 100
)

// PostPage is the result of a paginated listing.
type PostPage struct {
	Posts       []models.PostWithAuthor `json:"posts"`
	CurrentPage int                     `json:"current_page"`
	TotalPages  int                     `json:"total_pages"`
	TotalPosts  int64                   `json:"total_posts"`
}

// PostRepository owns all data access for posts. It has no HTTP awareness;
// absence is reported as (nil, nil) or a false affected flag, never as an error.
type PostRepository interface {
	Create(ctx context.Context, title, content string, authorID uint) (uint, error)
	FindByID(ctx context.Context, id uint) (*models.PostWithAuthor, error)
	FindAll(ctx context.Context, page, limit int) (*PostPage, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]models.PostWithAuthor, error)
	Update(ctx context.Context, id, authorID uint, title, content string) (bool, error)
	Delete(ctx context.Context, id, authorID uint) (bool, error)
	Search(ctx context.Context, query string) ([]models.PostWithAuthor, error)
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a GORM backed PostRepository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// enriched builds the base query joining posts with their author's username.
func (r *postRepository) enriched(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.title, posts.content, posts.author_id, users.username AS author_name, posts.created_at, posts.updated_at").
		Joins("JOIN users ON users.id = posts.author_id")
}

func (r *postRepository) Create(ctx context.Context, title, content string, authorID uint) (uint, error) {
	post := models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	if err := r.db.WithContext(ctx).Create(&post).Error; err != nil {
		return 0, err
	}
	return post.ID, nil
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*models.PostWithAuthor, error) {
	var row models.PostWithAuthor
	err := r.enriched(ctx).Where("posts.id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *postRepository) FindAll(ctx context.Context, page, limit int) (*PostPage, error) {
	page, limit = NormalizePagination(page, limit)

	// Total is an independent count; it cannot be derived from the limited fetch.
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, err
	}

	rows := []models.PostWithAuthor{}
	err := r.enriched(ctx).
		Order("posts.created_at DESC, posts.id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:       rows,
		CurrentPage: page,
		TotalPages:  TotalPages(total, limit),
		TotalPosts:  total,
	}, nil
}

func (r *postRepository) FindByAuthor(ctx context.Context, authorID uint) ([]models.PostWithAuthor, error) {
	rows := []models.PostWithAuthor{}
	err := r.enriched(ctx).
		Where("posts.author_id = ?", authorID).
		Order("posts.created_at DESC, posts.id ASC").
		Limit(authorListCap).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update modifies title and content in a single statement filtered by both
// post id and author id, so a non-owner is indistinguishable from a missing row.
func (r *postRepository) Update(ctx context.Context, id, authorID uint, title, content string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Updates(map[string]interface{}{"title": title, "content": content})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the post in a single ownership-scoped statement, same
// contract as Update.
func (r *postRepository) Delete(ctx context.Context, id, authorID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&models.Post{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) Search(ctx context.Context, query string) ([]models.PostWithAuthor, error) {
	pattern := LikePattern(query)
	rows := []models.PostWithAuthor{}
	err := r.enriched(ctx).
		Where("posts.title LIKE ? OR posts.content LIKE ?", pattern, pattern).
		Order("posts.created_at DESC, posts.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error
	return total, err
}

// NormalizePagination coerces page and limit to positive values, falling back
// to the defaults and capping the page size.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return page, limit
}

// TotalPages computes ceil(total/limit) without floating point.
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// LikePattern wraps a search term for substring matching.
func LikePattern(query string) string {
	return "%" + query + "%"
}
