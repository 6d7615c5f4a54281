package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yeisme/filevault/pkg/internal/storage/blob"
	"github.com/yeisme/filevault/pkg/internal/storage/docstore"
	nlog "github.com/yeisme/filevault/pkg/log"
	"github.com/yeisme/filevault/pkg/metrics"
)

// ReconcileReport 一次巡检的结果.
type ReconcileReport struct {
	Checked int `json:"checked"`
	Missing int `json:"missing"`
}

// ContentReconciler 巡检携带内容的记录，统计内容已丢失的数量.
type ContentReconciler struct {
	files   docstore.FileStore
	content blob.ContentStore
	batch   int
	logger  zerolog.Logger
}

// NewContentReconciler 创建巡检器，batch<=0 时使用 PageSize.
func NewContentReconciler(files docstore.FileStore, content blob.ContentStore, batch int) *ContentReconciler {
	if batch <= 0 {
		batch = PageSize
	}

	return &ContentReconciler{files: files, content: content, batch: batch, logger: nlog.Component("reconcile")}
}

// Run 分批遍历全部记录并更新 filevault_content_missing.
func (r *ContentReconciler) Run(ctx context.Context) (ReconcileReport, error) {
	var rep ReconcileReport

	for skip := 0; ; skip += r.batch {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		files, err := r.files.FindFiles(ctx, docstore.FileFilter{}, skip, r.batch)
		if err != nil {
			return rep, fmt.Errorf("page files at %d: %w", skip, err)
		}

		for i := range files {
			f := &files[i]
			if !f.Type.HasContent() {
				continue
			}

			rep.Checked++

			if f.LocalPath == "" {
				rep.Missing++
				continue
			}

			ok, err := r.content.Exists(ctx, f.LocalPath)
			if err != nil || !ok {
				rep.Missing++

				r.logger.Debug().Err(err).Str("file_id", f.ID.String()).Msg("content missing")
			}
		}

		if len(files) < r.batch {
			break
		}
	}

	metrics.ContentMissing.Set(float64(rep.Missing))
	r.logger.Info().Int("checked", rep.Checked).Int("missing", rep.Missing).Msg("content reconcile finished")

	return rep, nil
}
