package service

import (
	"os"
	"testing"

	"calm_learning_hub/internal/model"
	"calm_learning_hub/internal/repository"
	"calm_learning_hub/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.TeacherLearner{},
		&model.ParentChild{},
		&model.Lesson{},
		&model.LessonAssignment{},
		&model.HelpRequest{},
		&model.Encouragement{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, role model.UserRole) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: string(hashed),
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func linkTeacher(t *testing.T, db *gorm.DB, teacherID, learnerID uint) {
	t.Helper()
	require.NoError(t, db.Create(&model.TeacherLearner{TeacherID: teacherID, LearnerID: learnerID}).Error)
}

func linkParent(t *testing.T, db *gorm.DB, parentID, learnerID uint) {
	t.Helper()
	require.NoError(t, db.Create(&model.ParentChild{ParentID: parentID, LearnerID: learnerID}).Error)
}

func createLesson(t *testing.T, db *gorm.DB, owner *model.User, friendlyText string) *model.Lesson {
	t.Helper()

	lesson := &model.Lesson{
		OwnerID:      owner.ID,
		OwnerRole:    owner.Role,
		Title:        "The Quiet Garden",
		Kind:         model.LessonStory,
		OriginalText: "A long story about a garden.",
		FriendlyText: friendlyText,
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

func createAssignment(t *testing.T, db *gorm.DB, lessonID, learnerID uint) *model.LessonAssignment {
	t.Helper()

	a := &model.LessonAssignment{
		LessonID:  lessonID,
		LearnerID: learnerID,
		Status:    model.AssignmentAssigned,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func newAssignmentService(db *gorm.DB) *AssignmentService {
	return NewAssignmentService(repository.NewAssignmentRepository(db), repository.NewRosterRepository(db))
}
