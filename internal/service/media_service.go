package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaService handles course and lesson media uploads on behalf of the
// owning instructor.
type MediaService struct {
	Storage        *StorageService
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	CurriculumRepo *repository.CurriculumRepository
	InstructorRepo *repository.InstructorRepository
	Cfg            *config.Config
}

func NewMediaService(
	storage *StorageService,
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	curriculumRepo *repository.CurriculumRepository,
	instructorRepo *repository.InstructorRepository,
	cfg *config.Config,
) *MediaService {
	return &MediaService{
		Storage:        storage,
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		CurriculumRepo: curriculumRepo,
		InstructorRepo: instructorRepo,
		Cfg:            cfg,
	}
}

// UploadCourseImage replaces the course cover image.
func (s *MediaService) UploadCourseImage(ctx context.Context, userID, courseID uint, file *multipart.FileHeader) (string, error) {
	if _, err := s.requireCourseOwnership(userID, courseID); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := util.DetectMimeType(src)
	if err != nil {
		return "", err
	}
	if !util.IsImage(mimeType) {
		return "", fmt.Errorf("cover must be an image, got %s", mimeType)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := "courses/" + time.Now().Format("20060102150405") + "-" + uuid.New().String()[:8] + ext

	url, err := s.Storage.Upload(ctx, objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	if err := s.CourseRepo.Updates(courseID, map[string]interface{}{"image_url": url}); err != nil {
		return "", err
	}
	return url, nil
}

// UploadLessonVideo stores the video, probes it for duration, grabs a
// thumbnail frame, and updates the lesson.
func (s *MediaService) UploadLessonVideo(ctx context.Context, userID, lessonID uint, file *multipart.FileHeader) (*model.Lesson, error) {
	own, err := s.LessonRepo.ResolveOwnership(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}
	if _, err := s.requireCourseOwnership(userID, own.CourseID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("unsupported video extension %q", ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.DetectMimeType(src)
	if err != nil {
		return nil, err
	}
	if !util.IsVideo(mimeType) {
		return nil, fmt.Errorf("file content is not a video, got %s", mimeType)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	// ffmpeg needs a path, so buffer to local disk first.
	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}
	videoPath := filepath.Join(tempDir, fmt.Sprintf("lesson_video_%d%s", time.Now().UnixNano(), ext))
	defer os.Remove(videoPath)

	dst, err := os.Create(videoPath)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, err
	}
	dst.Close()

	stamp := time.Now().Format("20060102150405") + "-" + uuid.New().String()[:8]
	videoURL, err := s.Storage.UploadFile(ctx, "videos/"+stamp+ext, videoPath, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	var thumbnailURL string
	thumbnailPath := filepath.Join(tempDir, stamp+".jpg")
	defer os.Remove(thumbnailPath)
	if err := util.GenerateThumbnail(videoPath, thumbnailPath, "3"); err != nil {
		logger.Log.Warn("Thumbnail generation failed", zap.Uint("lessonId", lessonID), zap.Error(err))
	} else {
		thumbnailURL, err = s.Storage.UploadFile(ctx, "thumbnails/"+stamp+".jpg", thumbnailPath, "image/jpeg")
		if err != nil {
			logger.Log.Warn("Thumbnail upload failed", zap.Uint("lessonId", lessonID), zap.Error(err))
			thumbnailURL = ""
		}
	}

	duration := 0
	if info, err := util.GetVideoInfo(videoPath); err == nil {
		duration = int(math.Round(info.Duration))
	} else {
		logger.Log.Warn("Video probe failed", zap.Uint("lessonId", lessonID), zap.Error(err))
	}

	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, util.ErrLessonNotFound
	}
	lesson.VideoURL = videoURL
	lesson.Duration = duration
	if thumbnailURL != "" {
		lesson.Thumbnail = thumbnailURL
	}
	if err := s.CurriculumRepo.UpdateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *MediaService) requireCourseOwnership(userID, courseID uint) (*model.Course, error) {
	instructor, err := s.InstructorRepo.FindByUserID(userID)
	if err != nil {
		return nil, util.ErrInstructorNotFound
	}
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if course.InstructorID != instructor.ID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}
