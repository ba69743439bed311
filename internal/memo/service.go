// Package memo はユーザー個人のメモ管理のドメインロジックを提供する。
package memo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hitoshi/memoboard/internal/model"
	"github.com/hitoshi/memoboard/internal/ownership"
	"github.com/hitoshi/memoboard/internal/repository"
)

const resource = "memo"

// CreateInput はメモ作成の入力値。
type CreateInput struct {
	Title       string
	Type        string
	Items       string
	TextContent string
	Images      string
	URLs        string
}

// Service はメモ管理のサービス層。
// 全操作で所有者検証を行い、他ユーザーのメモは参照・変更できない。
type Service struct {
	repo repository.MemoRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.MemoRepository) *Service {
	return &Service{repo: repo}
}

// List はユーザーのメモ一覧を新しい順に返す。
func (s *Service) List(ctx context.Context, userID int64) ([]*model.Memo, error) {
	memos, err := s.repo.FindManyByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memos: %w", err)
	}
	return memos, nil
}

// Get は所有者検証のうえメモを返す。
func (s *Service) Get(ctx context.Context, id, userID int64) (*model.Memo, error) {
	return ownership.Load(ctx, id, userID, s.repo.FindByID, resource)
}

// Create はメモを作成する。
// typeに応じて有効な本文フィールドのみを保存し、もう一方は空文字にする。
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (*model.Memo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, model.NewValidationError("title is required")
	}
	memoType := model.MemoType(in.Type)
	if !memoType.Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("type must be %q or %q", model.MemoTypeChecklist, model.MemoTypeText))
	}

	memo := &model.Memo{
		UserID: userID,
		Title:  title,
		Type:   memoType,
		Images: in.Images,
		URLs:   in.URLs,
	}
	switch memoType {
	case model.MemoTypeChecklist:
		memo.Items = in.Items
	case model.MemoTypeText:
		memo.TextContent = in.TextContent
	}

	if err := s.repo.Create(ctx, memo); err != nil {
		return nil, fmt.Errorf("failed to create memo: %w", err)
	}
	return memo, nil
}

// Update は所有者検証のうえ、patchで指定されたフィールドのみを更新する。
// 更新後のtypeで無効になる本文フィールドは空文字に揃える。
func (s *Service) Update(ctx context.Context, id, userID int64, patch model.MemoPatch) (*model.Memo, error) {
	if patch.IsEmpty() {
		return nil, model.NewEmptyBodyError()
	}

	current, err := ownership.Load(ctx, id, userID, s.repo.FindByID, resource)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, model.NewValidationError("title must not be empty")
		}
		patch.Title = &title
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("type must be %q or %q", model.MemoTypeChecklist, model.MemoTypeText))
	}

	shapeContent(current.Type, &patch)

	updated, err := s.repo.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.NewNotFoundError(resource, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update memo: %w", err)
	}
	return updated, nil
}

// Delete は所有者検証のうえメモを削除する。
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if _, err := ownership.Load(ctx, id, userID, s.repo.FindByID, resource); err != nil {
		return err
	}

	err := s.repo.DeleteByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.NewNotFoundError(resource, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete memo: %w", err)
	}
	return nil
}

// shapeContent は更新後のtypeで無効になる本文フィールドを空文字にする。
// typeが変わる場合、またはpatchが無効側のフィールドを指定している場合に適用する。
func shapeContent(currentType model.MemoType, patch *model.MemoPatch) {
	effective := currentType
	if patch.Type != nil {
		effective = *patch.Type
	}
	typeChanged := effective != currentType

	empty := ""
	switch effective {
	case model.MemoTypeChecklist:
		if typeChanged || patch.TextContent != nil {
			patch.TextContent = &empty
		}
	case model.MemoTypeText:
		if typeChanged || patch.Items != nil {
			patch.Items = &empty
		}
	}
}
