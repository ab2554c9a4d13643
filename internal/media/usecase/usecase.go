package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/draftstudio/media-backend/internal/config"
	"github.com/draftstudio/media-backend/internal/media"
	"github.com/draftstudio/media-backend/internal/models"
	"github.com/draftstudio/media-backend/pkg/filetype"
	"github.com/draftstudio/media-backend/pkg/logger"
	"github.com/draftstudio/media-backend/pkg/utils"
)

type mediaUC struct {
	cfg       *config.Config
	mediaRepo media.Repository
	logger    logger.Logger
}

func NewMediaUseCase(cfg *config.Config, mediaRepo media.Repository, log logger.Logger) media.UseCase {
	return &mediaUC{
		cfg:       cfg,
		mediaRepo: mediaRepo,
		logger:    log,
	}
}

func (m *mediaUC) uploadsDir() string {
	dir := m.cfg.Uploads.Dir
	if filepath.IsAbs(dir) {
		return dir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return dir
	}
	return filepath.Join(cwd, dir)
}

// filePathFor rebuilds the on-disk path of a record from its id, type and
// the extension carried by its URL.
func (m *mediaUC) filePathFor(rec *models.MediaFile) string {
	fileName := rec.MediaID + filepath.Ext(rec.URL)
	return filepath.Join(m.uploadsDir(), rec.Type.DirName(), fileName)
}

func (m *mediaUC) Upload(ctx context.Context, input *models.UploadInput) (*models.MediaFile, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		m.logger.Errorf("Upload - ValidateStruct error: %v", err)
		return nil, fmt.Errorf("invalid input: %v", err)
	}
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", media.ErrInvalidType, input.Type)
	}
	if len(input.Data) == 0 {
		return nil, media.ErrMissingFile
	}

	ext := deriveExt(input.MimeType, input.FileName)

	// The classifier gate runs before anything is written, so a rejected
	// upload leaves no partial state behind.
	if !filetype.Matches(input.Data, ext, input.Type) {
		m.logger.Warnf("Upload - rejected %q as %s", input.FileName, input.Type)
		return nil, fmt.Errorf("%w: %s", media.ErrTypeMismatch, input.Type)
	}

	meta := map[string]interface{}{}
	if input.Metadata != "" {
		if err := json.Unmarshal([]byte(input.Metadata), &meta); err != nil {
			return nil, media.ErrInvalidMetadata
		}
	}

	mediaID := uuid.New().String()
	fileName := mediaID + ext
	baseDir := filepath.Join(m.uploadsDir(), input.Type.DirName())
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		m.logger.Errorf("Upload - MkdirAll error: %v", err)
		return nil, fmt.Errorf("failed to create upload directory: %v", err)
	}

	filePath := filepath.Join(baseDir, fileName)
	if err := os.WriteFile(filePath, input.Data, 0o644); err != nil {
		m.logger.Errorf("Upload - WriteFile error: %v", err)
		return nil, fmt.Errorf("failed to persist file: %v", err)
	}

	size := utils.FileSize(filePath)

	name := input.Name
	if name == "" {
		name = input.FileName
	}
	if name == "" {
		name = fileName
	}

	rec := &models.MediaFile{
		MediaID:       mediaID,
		Type:          input.Type,
		URL:           fmt.Sprintf("/uploads/%s/%s", input.Type.DirName(), fileName),
		Name:          name,
		Size:          size,
		SizeFormatted: utils.FormatFileSize(size),
		Metadata:      meta,
	}
	if err := m.mediaRepo.Save(ctx, mediaID, rec); err != nil {
		m.logger.Errorf("Upload - Save error: %v", err)
		return nil, err
	}
	m.logger.Infof("Uploaded %s media %s (%s)", input.Type, mediaID, rec.SizeFormatted)
	return rec, nil
}

func (m *mediaUC) GetByID(ctx context.Context, mediaID string) (*models.MediaFile, error) {
	if mediaID == "" {
		return nil, fmt.Errorf("invalid media id: cannot be empty")
	}
	return m.mediaRepo.GetByID(ctx, mediaID)
}

func (m *mediaUC) GetData(ctx context.Context) (map[string]*models.MediaFile, error) {
	return m.mediaRepo.GetAll(ctx)
}

func (m *mediaUC) ListByType(ctx context.Context, mediaType models.MediaType, pagination *utils.Pagination) (*models.MediaList, error) {
	if !mediaType.IsValid() {
		return nil, fmt.Errorf("%w: %q", media.ErrInvalidType, mediaType)
	}
	all, err := m.mediaRepo.GetAll(ctx)
	if err != nil {
		m.logger.Errorf("ListByType - GetAll error: %v", err)
		return nil, fmt.Errorf("failed to fetch media: %v", err)
	}

	var filtered []*models.MediaFile
	for _, rec := range all {
		if rec.Type == mediaType {
			filtered = append(filtered, rec)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].MediaID < filtered[j].MediaID
	})

	total := len(filtered)
	offset := pagination.GetOffset()
	if offset > total {
		offset = total
	}
	end := offset + pagination.GetLimit()
	if end > total {
		end = total
	}

	return &models.MediaList{
		Media:      filtered[offset:end],
		TotalCount: total,
		TotalPages: utils.GetTotalPages(total, pagination.GetSize()),
		Page:       pagination.GetPage(),
		PageSize:   pagination.GetSize(),
		HasMore:    utils.GetHasMore(pagination.GetPage(), total, pagination.GetSize()),
	}, nil
}

func (m *mediaUC) GetSize(ctx context.Context, mediaID string) (*models.MediaSizeInfo, error) {
	rec, err := m.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	size := utils.FileSize(m.filePathFor(rec))
	return &models.MediaSizeInfo{
		MediaID:       rec.MediaID,
		Size:          size,
		SizeFormatted: utils.FormatFileSize(size),
	}, nil
}

func (m *mediaUC) Stats(ctx context.Context) (*models.MediaStats, error) {
	all, err := m.mediaRepo.GetAll(ctx)
	if err != nil {
		m.logger.Errorf("Stats - GetAll error: %v", err)
		return nil, fmt.Errorf("failed to fetch media: %v", err)
	}

	stats := &models.MediaStats{
		Total:  models.MediaTypeStats{SizeFormatted: "0 B"},
		ByType: make(map[models.MediaType]models.MediaTypeStats),
	}
	for _, t := range models.MediaTypes() {
		stats.ByType[t] = models.MediaTypeStats{SizeFormatted: "0 B"}
	}

	for _, rec := range all {
		// Sizes come from disk, not from the record, so stats stay honest
		// when files change underneath the store.
		size := utils.FileSize(m.filePathFor(rec))

		stats.Total.Count++
		stats.Total.Size += size

		byType := stats.ByType[rec.Type]
		byType.Count++
		byType.Size += size
		stats.ByType[rec.Type] = byType
	}

	stats.Total.SizeFormatted = utils.FormatFileSize(stats.Total.Size)
	for t, s := range stats.ByType {
		s.SizeFormatted = utils.FormatFileSize(s.Size)
		stats.ByType[t] = s
	}
	return stats, nil
}

func (m *mediaUC) Sync(ctx context.Context) (*models.SyncResult, error) {
	existing, err := m.mediaRepo.GetAll(ctx)
	if err != nil {
		m.logger.Errorf("Sync - GetAll error: %v", err)
		return nil, fmt.Errorf("failed to fetch media: %v", err)
	}

	known := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		known[rec.URL] = struct{}{}
	}

	result := &models.SyncResult{
		Message: "Sync completed successfully",
		Details: make(map[models.MediaType]int),
	}
	for _, t := range models.MediaTypes() {
		result.Details[t] = 0
	}

	for _, t := range models.MediaTypes() {
		dir := filepath.Join(m.uploadsDir(), t.DirName())
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || name[0] == '.' {
				continue
			}
			ext := filepath.Ext(name)
			if _, ok := extByType[t][ext]; !ok {
				continue
			}

			url := fmt.Sprintf("/uploads/%s/%s", t.DirName(), name)
			if _, ok := known[url]; ok {
				continue
			}

			size := utils.FileSize(filepath.Join(dir, name))
			mediaID := uuid.New().String()
			rec := &models.MediaFile{
				MediaID:       mediaID,
				Type:          t,
				URL:           url,
				Name:          name,
				Size:          size,
				SizeFormatted: utils.FormatFileSize(size),
				Metadata:      map[string]interface{}{},
			}
			if err := m.mediaRepo.Save(ctx, mediaID, rec); err != nil {
				m.logger.Errorf("Sync - Save error: %v", err)
				return nil, err
			}
			known[url] = struct{}{}
			result.Added++
			result.Details[t]++
		}
	}
	m.logger.Infof("Sync added %d media records", result.Added)
	return result, nil
}

func (m *mediaUC) Delete(ctx context.Context, mediaID string) error {
	rec, err := m.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}
	if rec.URL != "" {
		if err := os.Remove(m.filePathFor(rec)); err != nil && !os.IsNotExist(err) {
			m.logger.Errorf("Delete - Remove error: %v", err)
			return fmt.Errorf("failed to delete media file: %v", err)
		}
	}
	if err := m.mediaRepo.Delete(ctx, mediaID); err != nil {
		m.logger.Errorf("Delete - repo delete error: %v", err)
		return err
	}
	return nil
}
