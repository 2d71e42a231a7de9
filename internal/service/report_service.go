package service

import (
	"bytes"
	"fmt"

	"calm_learning_hub/internal/model"
	"calm_learning_hub/internal/repository"
	"calm_learning_hub/internal/util"

	"github.com/xuri/excelize/v2"
)

// ReportService renders a grown-up's progress overview as an Excel
// workbook.
type ReportService struct {
	AssignmentRepo *repository.AssignmentRepository
	RosterRepo     *repository.RosterRepository
}

func NewReportService(assignmentRepo *repository.AssignmentRepository, rosterRepo *repository.RosterRepository) *ReportService {
	return &ReportService{
		AssignmentRepo: assignmentRepo,
		RosterRepo:     rosterRepo,
	}
}

const progressSheet = "Progress"

// ProgressWorkbook builds an xlsx with one row per assignment of the
// caller's linked learners.
func (s *ReportService) ProgressWorkbook(userID uint, role model.UserRole) (*bytes.Buffer, error) {
	learnerIDs, err := s.RosterRepo.LinkedLearnerIDs(userID, role)
	if err != nil {
		return nil, err
	}

	rows, err := s.AssignmentRepo.ProgressForLearners(learnerIDs)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(progressSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Learner", "Lesson", "Status", "Step", "Completed at"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(progressSheet, cell, h)
	}

	for i, row := range rows {
		completed := ""
		if row.CompletedAt != nil {
			completed = row.CompletedAt.Format(util.TimeFormat)
		}
		values := []interface{}{
			row.LearnerName,
			row.LessonTitle,
			string(row.Status),
			row.ProgressStep,
			completed,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(progressSheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
