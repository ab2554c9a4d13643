package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/draftstudio/media-backend/internal/config"
	"github.com/draftstudio/media-backend/internal/media"
	"github.com/draftstudio/media-backend/internal/models"
	"github.com/draftstudio/media-backend/pkg/logger"
	"github.com/draftstudio/media-backend/pkg/utils"
)

type stubMediaRepo struct {
	data map[string]*models.MediaFile
}

func newStubMediaRepo() *stubMediaRepo {
	return &stubMediaRepo{data: make(map[string]*models.MediaFile)}
}

func (r *stubMediaRepo) GetByID(ctx context.Context, mediaID string) (*models.MediaFile, error) {
	rec, ok := r.data[mediaID]
	if !ok {
		return nil, media.ErrNotFound
	}
	return rec, nil
}

func (r *stubMediaRepo) GetAll(ctx context.Context) (map[string]*models.MediaFile, error) {
	return r.data, nil
}

func (r *stubMediaRepo) Save(ctx context.Context, mediaID string, rec *models.MediaFile) error {
	r.data[mediaID] = rec
	return nil
}

func (r *stubMediaRepo) Delete(ctx context.Context, mediaID string) error {
	delete(r.data, mediaID)
	return nil
}

func newTestMediaUC(t *testing.T, repo media.Repository) (media.UseCase, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "Development"},
		Logger:  config.Logger{Level: "error", Encoding: "console"},
		Uploads: config.UploadsConfig{Dir: dir, BaseURL: "http://localhost:3001"},
	}
	log := logger.NewApiLogger(cfg)
	log.InitLogger()
	return NewMediaUseCase(cfg, repo, log), dir
}

var pngData = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

func TestMediaUC_Upload(t *testing.T) {
	repo := newStubMediaRepo()
	uc, dir := newTestMediaUC(t, repo)

	rec, err := uc.Upload(context.Background(), &models.UploadInput{
		Type:     models.MediaTypeImage,
		FileName: "photo.png",
		MimeType: "image/png",
		Data:     pngData,
		Metadata: `{"caption":"sunset"}`,
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if rec.MediaID == "" {
		t.Error("media id not assigned")
	}
	wantURL := "/uploads/images/" + rec.MediaID + ".png"
	if rec.URL != wantURL {
		t.Errorf("url = %q, want %q", rec.URL, wantURL)
	}
	if rec.Name != "photo.png" {
		t.Errorf("name = %q, want photo.png", rec.Name)
	}
	if rec.Size != int64(len(pngData)) {
		t.Errorf("size = %d, want %d", rec.Size, len(pngData))
	}
	if rec.Metadata["caption"] != "sunset" {
		t.Errorf("metadata = %v, want caption=sunset", rec.Metadata)
	}

	onDisk := filepath.Join(dir, "images", rec.MediaID+".png")
	if _, err := os.Stat(onDisk); err != nil {
		t.Errorf("uploaded file missing on disk: %v", err)
	}
	if _, ok := repo.data[rec.MediaID]; !ok {
		t.Error("record not persisted")
	}
}

func TestMediaUC_Upload_DistinctIDs(t *testing.T) {
	repo := newStubMediaRepo()
	uc, _ := newTestMediaUC(t, repo)

	input := func() *models.UploadInput {
		return &models.UploadInput{
			Type:     models.MediaTypeImage,
			FileName: "photo.png",
			MimeType: "image/png",
			Data:     pngData,
		}
	}
	first, err := uc.Upload(context.Background(), input())
	if err != nil {
		t.Fatalf("first Upload() error = %v", err)
	}
	second, err := uc.Upload(context.Background(), input())
	if err != nil {
		t.Fatalf("second Upload() error = %v", err)
	}
	if first.MediaID == second.MediaID {
		t.Error("identical uploads share a media id")
	}
	if len(repo.data) != 2 {
		t.Errorf("records = %d, want 2", len(repo.data))
	}
}

func TestMediaUC_Upload_ExtFromFileName(t *testing.T) {
	uc, _ := newTestMediaUC(t, newStubMediaRepo())

	rec, err := uc.Upload(context.Background(), &models.UploadInput{
		Type:     models.MediaTypeText,
		FileName: "NOTES.TXT",
		MimeType: "application/octet-stream",
		Data:     []byte("plain notes\n"),
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !strings.HasSuffix(rec.URL, ".txt") {
		t.Errorf("url = %q, want lowercased .txt extension from file name", rec.URL)
	}
}

func TestMediaUC_Upload_RejectsOversizedFields(t *testing.T) {
	repo := newStubMediaRepo()
	uc, _ := newTestMediaUC(t, repo)

	_, err := uc.Upload(context.Background(), &models.UploadInput{
		Type:     models.MediaTypeImage,
		FileName: strings.Repeat("a", 300) + ".png",
		MimeType: "image/png",
		Data:     pngData,
	})
	if err == nil {
		t.Fatal("Upload() with a 300-char file name expected an error")
	}
	if len(repo.data) != 0 {
		t.Error("rejected upload left a record behind")
	}
}

func TestMediaUC_Upload_InvalidType(t *testing.T) {
	uc, _ := newTestMediaUC(t, newStubMediaRepo())

	_, err := uc.Upload(context.Background(), &models.UploadInput{
		Type: "document",
		Data: []byte("x"),
	})
	if !errors.Is(err, media.ErrInvalidType) {
		t.Fatalf("Upload() error = %v, want ErrInvalidType", err)
	}
}

func TestMediaUC_Upload_MissingFile(t *testing.T) {
	uc, _ := newTestMediaUC(t, newStubMediaRepo())

	_, err := uc.Upload(context.Background(), &models.UploadInput{
		Type: models.MediaTypeImage,
	})
	if !errors.Is(err, media.ErrMissingFile) {
		t.Fatalf("Upload() error = %v, want ErrMissingFile", err)
	}
}

func TestMediaUC_Upload_TypeMismatchLeavesNoFile(t *testing.T) {
	repo := newStubMediaRepo()
	uc, dir := newTestMediaUC(t, repo)

	_, err := uc.Upload(context.Background(), &models.UploadInput{
		Type:     models.MediaTypeAudio,
		FileName: "track.mp3",
		MimeType: "audio/mpeg",
		Data:     pngData,
	})
	if !errors.Is(err, media.ErrTypeMismatch) {
		t.Fatalf("Upload() error = %v, want ErrTypeMismatch", err)
	}

	if entries, err := os.ReadDir(filepath.Join(dir, "audios")); err == nil && len(entries) > 0 {
		t.Error("rejected upload left a file behind")
	}
	if len(repo.data) != 0 {
		t.Error("rejected upload left a record behind")
	}
}

func TestMediaUC_Upload_InvalidMetadata(t *testing.T) {
	uc, _ := newTestMediaUC(t, newStubMediaRepo())

	_, err := uc.Upload(context.Background(), &models.UploadInput{
		Type:     models.MediaTypeImage,
		FileName: "photo.png",
		MimeType: "image/png",
		Data:     pngData,
		Metadata: "{not json",
	})
	if !errors.Is(err, media.ErrInvalidMetadata) {
		t.Fatalf("Upload() error = %v, want ErrInvalidMetadata", err)
	}
}

func TestMediaUC_GetByID(t *testing.T) {
	repo := newStubMediaRepo()
	repo.data["m1"] = &models.MediaFile{MediaID: "m1", Type: models.MediaTypeImage, URL: "/uploads/images/m1.png", Name: "x"}
	uc, _ := newTestMediaUC(t, repo)

	rec, err := uc.GetByID(context.Background(), "m1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if rec.MediaID != "m1" {
		t.Errorf("media id = %q, want m1", rec.MediaID)
	}

	if _, err := uc.GetByID(context.Background(), "missing"); !errors.Is(err, media.ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := uc.GetByID(context.Background(), ""); err == nil {
		t.Error("GetByID(\"\") expected an error")
	}
}

func TestMediaUC_ListByType(t *testing.T) {
	repo := newStubMediaRepo()
	repo.data["a"] = &models.MediaFile{MediaID: "a", Type: models.MediaTypeImage, URL: "/uploads/images/a.png", Name: "a"}
	repo.data["b"] = &models.MediaFile{MediaID: "b", Type: models.MediaTypeAudio, URL: "/uploads/audios/b.mp3", Name: "b"}
	repo.data["c"] = &models.MediaFile{MediaID: "c", Type: models.MediaTypeImage, URL: "/uploads/images/c.png", Name: "c"}
	uc, _ := newTestMediaUC(t, repo)

	list, err := uc.ListByType(context.Background(), models.MediaTypeImage, &utils.Pagination{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("ListByType() error = %v", err)
	}
	if list.TotalCount != 2 {
		t.Errorf("total = %d, want 2", list.TotalCount)
	}
	if list.TotalPages != 1 {
		t.Errorf("totalPages = %d, want 1", list.TotalPages)
	}
	if list.Media[0].MediaID != "a" || list.Media[1].MediaID != "c" {
		t.Errorf("media not ordered by id: %v, %v", list.Media[0].MediaID, list.Media[1].MediaID)
	}

	if _, err := uc.ListByType(context.Background(), "document", &utils.Pagination{Page: 1, Size: 10}); !errors.Is(err, media.ErrInvalidType) {
		t.Errorf("ListByType(invalid) error = %v, want ErrInvalidType", err)
	}
}

func TestMediaUC_GetSizeReadsDisk(t *testing.T) {
	repo := newStubMediaRepo()
	uc, dir := newTestMediaUC(t, repo)

	payload := []byte("0123456789")
	if err := os.MkdirAll(filepath.Join(dir, "texts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "texts", "m1.txt"), payload, 0o644); err != nil {
		t.Fatal(err)
	}
	// Record claims a stale size; the reported one comes from disk.
	repo.data["m1"] = &models.MediaFile{MediaID: "m1", Type: models.MediaTypeText, URL: "/uploads/texts/m1.txt", Name: "m1", Size: 999}

	info, err := uc.GetSize(context.Background(), "m1")
	if err != nil {
		t.Fatalf("GetSize() error = %v", err)
	}
	if info.Size != int64(len(payload)) {
		t.Errorf("size = %d, want %d", info.Size, len(payload))
	}
}

func TestMediaUC_Stats(t *testing.T) {
	repo := newStubMediaRepo()
	uc, dir := newTestMediaUC(t, repo)

	if err := os.MkdirAll(filepath.Join(dir, "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "images", "m1.png"), pngData, 0o644); err != nil {
		t.Fatal(err)
	}
	repo.data["m1"] = &models.MediaFile{MediaID: "m1", Type: models.MediaTypeImage, URL: "/uploads/images/m1.png", Name: "m1"}

	stats, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total.Count != 1 {
		t.Errorf("total count = %d, want 1", stats.Total.Count)
	}
	if stats.Total.Size != int64(len(pngData)) {
		t.Errorf("total size = %d, want %d", stats.Total.Size, len(pngData))
	}
	if stats.ByType[models.MediaTypeImage].Count != 1 {
		t.Errorf("image count = %d, want 1", stats.ByType[models.MediaTypeImage].Count)
	}
	// Every category appears even when empty.
	for _, mt := range models.MediaTypes() {
		if _, ok := stats.ByType[mt]; !ok {
			t.Errorf("stats missing category %s", mt)
		}
	}
	if stats.ByType[models.MediaTypeVideo].SizeFormatted != "0 B" {
		t.Errorf("empty category formatted size = %q, want 0 B", stats.ByType[models.MediaTypeVideo].SizeFormatted)
	}
}

func TestMediaUC_Sync(t *testing.T) {
	repo := newStubMediaRepo()
	uc, dir := newTestMediaUC(t, repo)

	if err := os.MkdirAll(filepath.Join(dir, "videos"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "videos", "orphan.mp4"), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Unknown extensions are ignored during reconciliation.
	if err := os.WriteFile(filepath.Join(dir, "videos", "junk.tmp"), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := uc.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if result.Added != 1 {
		t.Fatalf("added = %d, want 1", result.Added)
	}
	if result.Details[models.MediaTypeVideo] != 1 {
		t.Errorf("video detail = %d, want 1", result.Details[models.MediaTypeVideo])
	}
	if len(repo.data) != 1 {
		t.Fatalf("records = %d, want 1", len(repo.data))
	}

	again, err := uc.Sync(context.Background())
	if err != nil {
		t.Fatalf("second Sync() error = %v", err)
	}
	if again.Added != 0 {
		t.Errorf("second sync added = %d, want 0", again.Added)
	}
}

func TestMediaUC_Delete(t *testing.T) {
	repo := newStubMediaRepo()
	uc, dir := newTestMediaUC(t, repo)

	filePath := filepath.Join(dir, "texts", "m1.txt")
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	repo.data["m1"] = &models.MediaFile{MediaID: "m1", Type: models.MediaTypeText, URL: "/uploads/texts/m1.txt", Name: "m1"}

	if err := uc.Delete(context.Background(), "m1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filePath); !os.IsNotExist(err) {
		t.Error("file still on disk after delete")
	}
	if _, ok := repo.data["m1"]; ok {
		t.Error("record still present after delete")
	}

	if err := uc.Delete(context.Background(), "m1"); !errors.Is(err, media.ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMediaUC_Delete_FileAlreadyGone(t *testing.T) {
	repo := newStubMediaRepo()
	uc, _ := newTestMediaUC(t, repo)
	repo.data["m1"] = &models.MediaFile{MediaID: "m1", Type: models.MediaTypeText, URL: "/uploads/texts/m1.txt", Name: "m1"}

	if err := uc.Delete(context.Background(), "m1"); err != nil {
		t.Fatalf("Delete() with missing file error = %v", err)
	}
	if _, ok := repo.data["m1"]; ok {
		t.Error("record still present after delete")
	}
}
