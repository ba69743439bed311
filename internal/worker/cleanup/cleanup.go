// Package cleanup は期限切れセッションの自動削除ジョブを提供する。
// ワーカーモードで一定間隔ごとに実行する。
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ExpiredSessionDeleter は期限切れセッションの削除を抽象化するインターフェース。
// repository.SessionRepositoryの部分集合。
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Recorder はジョブの結果をメトリクスとして記録する。
type Recorder interface {
	RecordSessionsCleaned(count int64)
	RecordCleanupFailure()
}

// SessionCleanupJob は期限切れセッションの削除ジョブ。
// 削除対象がない場合もエラーにならず、何度実行しても結果は同じ。
type SessionCleanupJob struct {
	sessions ExpiredSessionDeleter
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewSessionCleanupJob は新しいSessionCleanupJobを生成する。
// recorderはnilでもよい。
func NewSessionCleanupJob(sessions ExpiredSessionDeleter, recorder Recorder, logger *slog.Logger) *SessionCleanupJob {
	return &SessionCleanupJob{
		sessions: sessions,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Run は現在時刻より前に期限が切れたセッションを削除する。
func (j *SessionCleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	deletedCount, err := j.sessions.DeleteExpired(ctx, j.now())
	if err != nil {
		if j.recorder != nil {
			j.recorder.RecordCleanupFailure()
		}
		j.logger.Error("セッションクリーンアップジョブの実行に失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("セッションクリーンアップの実行に失敗: %w", err)
	}

	if j.recorder != nil {
		j.recorder.RecordSessionsCleaned(deletedCount)
	}

	duration := time.Since(start)
	j.logger.Info("セッションクリーンアップジョブが完了しました",
		slog.Int64("deleted_count", deletedCount),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}

// Start は起動直後に1回、その後interval間隔でRunを実行する。
// ctxがキャンセルされるまでブロックする。Runの失敗はログに記録して継続する。
func (j *SessionCleanupJob) Start(ctx context.Context, interval time.Duration) {
	_ = j.Run(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = j.Run(ctx)
		}
	}
}
