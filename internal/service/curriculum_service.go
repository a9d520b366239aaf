package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
)

// LessonInput is one lesson in a submitted curriculum, either existing (ID
// set) or new.
type LessonInput struct {
	ID          uint   `json:"id"`
	Key         string `json:"key"`
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	EmbedURL    string `json:"embedUrl"`
	Content     string `json:"content"`
	IsNew       bool   `json:"isNew"`
}

// ModuleInput is one module in a submitted curriculum, in client order.
type ModuleInput struct {
	ID      uint          `json:"id"`
	Key     string        `json:"key"`
	Title   string        `json:"title" binding:"required"`
	IsNew   bool          `json:"isNew"`
	Lessons []LessonInput `json:"lessons"`
}

// CurriculumStore is the slice of the curriculum repository the reconciler
// needs. Satisfied by *repository.CurriculumRepository.
type CurriculumStore interface {
	ModulesByCourse(courseID uint) ([]model.CourseModule, error)
	LessonsByModule(moduleID uint) ([]model.Lesson, error)
	CreateModule(m *model.CourseModule) error
	UpdateModule(m *model.CourseModule) error
	CreateLesson(l *model.Lesson) error
	UpdateLesson(l *model.Lesson) error
	DeleteModules(ids []uint) error
	DeleteLessons(ids []uint) error
	DeleteCompletionsByLessons(lessonIDs []uint) error
}

type CurriculumService struct {
	Repo           *repository.CurriculumRepository
	CourseRepo     *repository.CourseRepository
	InstructorRepo *repository.InstructorRepository
}

func NewCurriculumService(
	repo *repository.CurriculumRepository,
	courseRepo *repository.CourseRepository,
	instructorRepo *repository.InstructorRepository,
) *CurriculumService {
	return &CurriculumService{
		Repo:           repo,
		CourseRepo:     courseRepo,
		InstructorRepo: instructorRepo,
	}
}

// UpdateCurriculum reconciles the submitted module/lesson tree against the
// stored one for the instructor's own course. The whole reconciliation runs
// in a single transaction; on error no partial writes survive.
func (s *CurriculumService) UpdateCurriculum(userID, courseID uint, modules []ModuleInput) error {
	instructor, err := s.InstructorRepo.FindByUserID(userID)
	if err != nil {
		return util.ErrInstructorNotFound
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return util.ErrCourseNotFound
	}
	if course.InstructorID != instructor.ID {
		return util.ErrPermissionDenied
	}

	return s.Repo.InTx(func(tx *repository.CurriculumRepository) error {
		return reconcileCurriculum(tx, courseID, modules)
	})
}

// reconcileCurriculum applies the create-or-patch rule to every submitted
// module and lesson, rewrites positions from the submitted order, and removes
// anything no longer referenced. Module and lesson orphans are cleaned up
// symmetrically, completions of dropped lessons included. Reference keys are
// assigned once on creation and never regenerated, so reconciling the same
// input twice is a no-op.
func reconcileCurriculum(store CurriculumStore, courseID uint, modules []ModuleInput) error {
	// Snapshot the stored tree before touching it: updates work on loaded
	// rows so keys and timestamps survive, and the orphan diff is computed
	// against the pre-reconcile state.
	existingModules, err := store.ModulesByCourse(courseID)
	if err != nil {
		return err
	}
	moduleByID := make(map[uint]*model.CourseModule, len(existingModules))
	lessonByID := make(map[uint]*model.Lesson)
	for i := range existingModules {
		m := &existingModules[i]
		moduleByID[m.ID] = m

		lessons, err := store.LessonsByModule(m.ID)
		if err != nil {
			return err
		}
		for j := range lessons {
			lessonByID[lessons[j].ID] = &lessons[j]
		}
	}

	keptModules := make(map[uint]bool, len(modules))
	keptLessons := make(map[uint]bool)

	for pos, mi := range modules {
		var moduleID uint

		if mi.IsNew || mi.ID == 0 {
			module := &model.CourseModule{
				CourseID: courseID,
				Key:      model.NewRefKey(),
				Title:    mi.Title,
				Position: pos,
			}
			if err := store.CreateModule(module); err != nil {
				return err
			}
			moduleID = module.ID
		} else {
			module, ok := moduleByID[mi.ID]
			if !ok {
				return util.ErrModuleNotFound
			}
			module.Title = mi.Title
			module.Position = pos
			if err := store.UpdateModule(module); err != nil {
				return err
			}
			moduleID = module.ID
		}
		keptModules[moduleID] = true

		for lpos, li := range mi.Lessons {
			slug := li.Slug
			if slug == "" {
				slug = util.Slugify(li.Title)
			}

			if li.IsNew || li.ID == 0 {
				lesson := &model.Lesson{
					ModuleID:    moduleID,
					Key:         model.NewRefKey(),
					Title:       li.Title,
					Slug:        slug,
					Description: li.Description,
					VideoURL:    li.VideoURL,
					EmbedURL:    li.EmbedURL,
					Content:     li.Content,
					Position:    lpos,
				}
				if err := store.CreateLesson(lesson); err != nil {
					return err
				}
				keptLessons[lesson.ID] = true
				continue
			}

			lesson, ok := lessonByID[li.ID]
			if !ok {
				return util.ErrLessonNotFound
			}
			// ModuleID follows the submitted tree, so dragging a lesson into
			// another module re-homes the row.
			lesson.ModuleID = moduleID
			lesson.Title = li.Title
			lesson.Slug = slug
			lesson.Description = li.Description
			lesson.VideoURL = li.VideoURL
			lesson.EmbedURL = li.EmbedURL
			lesson.Content = li.Content
			lesson.Position = lpos
			if err := store.UpdateLesson(lesson); err != nil {
				return err
			}
			keptLessons[lesson.ID] = true
		}
	}

	// Anything in the snapshot the client no longer references is dropped.
	var orphanLessons []uint
	for id := range lessonByID {
		if !keptLessons[id] {
			orphanLessons = append(orphanLessons, id)
		}
	}
	var orphanModules []uint
	for id := range moduleByID {
		if !keptModules[id] {
			orphanModules = append(orphanModules, id)
		}
	}

	if err := store.DeleteCompletionsByLessons(orphanLessons); err != nil {
		return err
	}
	if err := store.DeleteLessons(orphanLessons); err != nil {
		return err
	}
	return store.DeleteModules(orphanModules)
}

// GetCurriculum loads the editable tree for the instructor's own course.
func (s *CurriculumService) GetCurriculum(userID, courseID uint) (*model.Course, error) {
	instructor, err := s.InstructorRepo.FindByUserID(userID)
	if err != nil {
		return nil, util.ErrInstructorNotFound
	}

	course, err := s.CourseRepo.FindByIDWithCurriculum(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if course.InstructorID != instructor.ID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}
