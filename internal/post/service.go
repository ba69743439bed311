// Package post は全ユーザーに公開される投稿のドメインロジックを提供する。
package post

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hitoshi/memoboard/internal/model"
	"github.com/hitoshi/memoboard/internal/repository"
	"github.com/hitoshi/memoboard/internal/security"
)

const resource = "post"

// CreateInput は投稿作成の入力値。
type CreateInput struct {
	Title   string
	Content string
	UserID  int64
}

// Service は投稿管理のサービス層。
// 投稿の作成・更新・削除に所有者検証は行わない。
type Service struct {
	repo      repository.PostRepository
	sanitizer security.ContentSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.PostRepository, sanitizer security.ContentSanitizerService) *Service {
	return &Service{repo: repo, sanitizer: sanitizer}
}

// List は全投稿を新しい順に投稿者名付きで返す。
func (s *Service) List(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.repo.FindMany(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Get は指定IDの投稿を返す。
func (s *Service) Get(ctx context.Context, id int64) (*model.Post, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if p == nil {
		return nil, model.NewNotFoundError(resource, id)
	}
	return p, nil
}

// Create は投稿を作成する。title、content、userIDは必須。
// 存在しないuserIDを指定した場合は検証エラーを返す。
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Post, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" || in.UserID <= 0 {
		return nil, model.NewValidationError("title, content and userId are required")
	}

	p := &model.Post{
		UserID:  in.UserID,
		Title:   s.sanitizer.SanitizeText(in.Title),
		Content: s.sanitizer.Sanitize(in.Content),
	}
	if p.Title == "" || strings.TrimSpace(p.Content) == "" {
		return nil, model.NewValidationError("title and content must contain text")
	}

	err := s.repo.Create(ctx, p)
	if repository.IsForeignKeyViolation(err) {
		return nil, model.NewValidationError(fmt.Sprintf("user does not exist: %d", in.UserID))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return p, nil
}

// Update は指定されたフィールドのみを更新する。少なくとも1フィールドの指定が必要。
func (s *Service) Update(ctx context.Context, id int64, patch model.PostPatch) (*model.Post, error) {
	if patch.IsEmpty() {
		return nil, model.NewValidationError("title or content is required")
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := s.sanitizer.SanitizeText(*patch.Title)
		if title == "" {
			return nil, model.NewValidationError("title must not be empty")
		}
		patch.Title = &title
	}
	if patch.Content != nil {
		content := s.sanitizer.Sanitize(*patch.Content)
		if strings.TrimSpace(content) == "" {
			return nil, model.NewValidationError("content must not be empty")
		}
		patch.Content = &content
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.NewNotFoundError(resource, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return updated, nil
}

// Delete は指定IDの投稿を削除する。
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.DeleteByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.NewNotFoundError(resource, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}
