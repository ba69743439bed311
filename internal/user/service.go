// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hitoshi/memoboard/internal/model"
	"github.com/hitoshi/memoboard/internal/repository"
)

const resource = "user"

// CreateInput はユーザー作成の入力値。
type CreateInput struct {
	Name  string
	Email string
}

// SessionDeleter はユーザーのセッション一括削除インターフェース。
type SessionDeleter interface {
	DeleteByUserID(ctx context.Context, userID int64) error
}

// Service はユーザー管理のサービス層。
type Service struct {
	userRepo       repository.UserRepository
	sessionDeleter SessionDeleter
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, sessionDeleter SessionDeleter) *Service {
	return &Service{
		userRepo:       userRepo,
		sessionDeleter: sessionDeleter,
	}
}

// List は全ユーザーを新しい順に返す。
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.FindMany(ctx)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	return users, nil
}

// Get は指定IDのユーザーを返す。
func (s *Service) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if u == nil {
		return nil, model.NewNotFoundError(resource, id)
	}
	return u, nil
}

// Create はユーザーを作成する。nameとemailは必須で、emailの重複は検証エラーになる。
// 作成されたユーザーは外部IdPと未連携（auth_idなし）で、初回ログイン時にemailで連携される。
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, model.NewValidationError("name and email are required")
	}

	u := &model.User{Name: &name, Email: email}
	err := s.userRepo.Create(ctx, u)
	if repository.IsUniqueViolation(err) {
		return nil, model.NewDuplicateEmailError()
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}
	return u, nil
}

// Withdraw はユーザーの退会処理を実行する。
// セッションを削除した後にユーザーを削除する。memos、todos、postsはCASCADE削除される。
func (s *Service) Withdraw(ctx context.Context, userID int64) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}

	slog.Info("退会処理を開始します",
		slog.Int64("user_id", userID),
	)

	if s.sessionDeleter != nil {
		if err := s.sessionDeleter.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("セッションの削除に失敗しました: %w", err)
		}
	}

	err := s.userRepo.DeleteByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.NewNotFoundError(resource, userID)
	}
	if err != nil {
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}

	slog.Info("退会処理が完了しました",
		slog.Int64("user_id", userID),
	)
	return nil
}
